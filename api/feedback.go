package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/transitline/internal/domain"
	"github.com/zvrva/transitline/internal/middleware"
	"github.com/zvrva/transitline/internal/service/feedback"
)

type FeedbackHandler struct {
	service *feedback.FeedbackService
}

type feedbackRequest struct {
	RouteID     *int64 `json:"route_id"`
	TripID      *int64 `json:"trip_id"`
	Category    string `json:"category"`
	Description string `json:"description" binding:"required"`
}

func NewFeedbackHandler(service *feedback.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

func (h *FeedbackHandler) Register(router, staff *gin.RouterGroup) {
	router.POST("/feedback", h.submit)
	staff.GET("/feedback", h.list)
	staff.PUT("/feedback/:id/resolve", h.resolve)
	staff.GET("/analytics", h.analytics)
}

func (h *FeedbackHandler) submit(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	fb := &domain.Feedback{
		UserID:      &userID,
		RouteID:     req.RouteID,
		TripID:      req.TripID,
		Category:    domain.FeedbackCategory(req.Category),
		Description: req.Description,
	}
	if err := h.service.Submit(c.Request.Context(), fb); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

func (h *FeedbackHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	feedbacks, err := h.service.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedbacks)
}

func (h *FeedbackHandler) resolve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Resolve(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FeedbackHandler) analytics(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/transitline/internal/domain"
	"github.com/zvrva/transitline/internal/service/trips"
)

type TripHandler struct {
	service trips.TripUseCase
}

type tripRequest struct {
	RouteID            int64      `json:"route_id" binding:"required"`
	VehicleID          *int64     `json:"vehicle_id"`
	TimetableID        *int64     `json:"timetable_id"`
	ScheduledDeparture time.Time  `json:"scheduled_departure" binding:"required"`
	ScheduledArrival   time.Time  `json:"scheduled_arrival" binding:"required"`
	ActualDeparture    *time.Time `json:"actual_departure"`
	ActualArrival      *time.Time `json:"actual_arrival"`
	AvailableSeats     *int       `json:"available_seats"`
}

type tripResponse struct {
	ID                 int64      `json:"id"`
	RouteID            int64      `json:"route_id"`
	VehicleID          *int64     `json:"vehicle_id"`
	TimetableID        *int64     `json:"timetable_id"`
	ScheduledDeparture time.Time  `json:"scheduled_departure"`
	ScheduledArrival   time.Time  `json:"scheduled_arrival"`
	ActualDeparture    *time.Time `json:"actual_departure"`
	ActualArrival      *time.Time `json:"actual_arrival"`
	AvailableSeats     int        `json:"available_seats"`
	SeatsOverridden    bool       `json:"seats_overridden"`
}

func NewTripHandler(service trips.TripUseCase) *TripHandler {
	return &TripHandler{service: service}
}

// Register mounts the read endpoints for any authenticated user; staff
// mutation endpoints go on their own group.
func (h *TripHandler) Register(router, staff *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.GET("/:id/seatmap", h.seatMap)
	staff.POST("/", h.create)
	staff.PUT("/:id", h.update)
	staff.DELETE("/:id", h.delete)
}

func (h *TripHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]tripResponse, 0, len(list))
	for i := range list {
		out = append(out, toTripResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *TripHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	trip, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTripResponse(trip))
}

func (h *TripHandler) seatMap(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sm, err := h.service.SeatMap(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sm)
}

func (h *TripHandler) create(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.service.Create(c.Request.Context(), toTripInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTripResponse(trip))
}

func (h *TripHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.service.Update(c.Request.Context(), id, toTripInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTripResponse(trip))
}

func (h *TripHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toTripInput(req tripRequest) trips.TripInput {
	return trips.TripInput{
		RouteID:            req.RouteID,
		VehicleID:          req.VehicleID,
		TimetableID:        req.TimetableID,
		ScheduledDeparture: req.ScheduledDeparture,
		ScheduledArrival:   req.ScheduledArrival,
		ActualDeparture:    req.ActualDeparture,
		ActualArrival:      req.ActualArrival,
		AvailableSeats:     req.AvailableSeats,
	}
}

func toTripResponse(t *domain.Trip) tripResponse {
	return tripResponse{
		ID:                 t.ID,
		RouteID:            t.RouteID,
		VehicleID:          t.VehicleID,
		TimetableID:        t.TimetableID,
		ScheduledDeparture: t.ScheduledDeparture,
		ScheduledArrival:   t.ScheduledArrival,
		ActualDeparture:    t.ActualDeparture,
		ActualArrival:      t.ActualArrival,
		AvailableSeats:     t.AvailableSeats,
		SeatsOverridden:    t.SeatsOverridden,
	}
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/transitline/internal/domain"
	"github.com/zvrva/transitline/internal/service/catalog"
)

type CatalogHandler struct {
	service *catalog.CatalogService
}

func NewCatalogHandler(service *catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router, staff *gin.RouterGroup) {
	router.GET("/routes", h.listRoutes)
	router.GET("/routes/:id", h.getRoute)
	router.GET("/routes/:id/stops", h.listStops)
	router.GET("/routes/:id/timetables", h.listTimetables)
	router.GET("/vehicles", h.listVehicles)
	router.GET("/vehicles/:id", h.getVehicle)

	staff.POST("/routes", h.createRoute)
	staff.PUT("/routes/:id", h.updateRoute)
	staff.DELETE("/routes/:id", h.deleteRoute)
	staff.POST("/stops", h.createStop)
	staff.DELETE("/stops/:id", h.deleteStop)
	staff.POST("/timetables", h.createTimetable)
	staff.DELETE("/timetables/:id", h.deleteTimetable)
	staff.POST("/vehicles", h.createVehicle)
	staff.PUT("/vehicles/:id", h.updateVehicle)
	staff.DELETE("/vehicles/:id", h.deleteVehicle)
}

type routeRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type stopRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Location string `json:"location"`
	RouteID  int64  `json:"route_id" binding:"required"`
}

type timetableRequest struct {
	RouteID       int64     `json:"route_id" binding:"required"`
	StopID        int64     `json:"stop_id" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
}

type vehicleRequest struct {
	Code     string  `json:"code" binding:"required"`
	Type     string  `json:"vehicle_type" binding:"required"`
	Capacity int     `json:"capacity" binding:"required"`
	Active   bool    `json:"active"`
	RouteIDs []int64 `json:"route_ids"`
}

func (h *CatalogHandler) listRoutes(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	routes, err := h.service.ListRoutes(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *CatalogHandler) getRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *CatalogHandler) createRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	route := &domain.Route{Name: req.Name, Code: req.Code, Description: req.Description, Active: req.Active}
	if err := h.service.CreateRoute(c.Request.Context(), route); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *CatalogHandler) updateRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	route := &domain.Route{ID: id, Name: req.Name, Code: req.Code, Description: req.Description, Active: req.Active}
	if err := h.service.UpdateRoute(c.Request.Context(), route); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *CatalogHandler) deleteRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRoute(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) listStops(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	stops, err := h.service.ListStops(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stops)
}

func (h *CatalogHandler) createStop(c *gin.Context) {
	var req stopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stop := &domain.Stop{Name: req.Name, Code: req.Code, Location: req.Location, RouteID: req.RouteID}
	if err := h.service.CreateStop(c.Request.Context(), stop); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stop)
}

func (h *CatalogHandler) deleteStop(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteStop(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) listTimetables(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	timetables, err := h.service.ListTimetables(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, timetables)
}

func (h *CatalogHandler) createTimetable(c *gin.Context) {
	var req timetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tt := &domain.Timetable{RouteID: req.RouteID, StopID: req.StopID, ArrivalTime: req.ArrivalTime, DepartureTime: req.DepartureTime}
	if err := h.service.CreateTimetable(c.Request.Context(), tt); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tt)
}

func (h *CatalogHandler) deleteTimetable(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTimetable(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) listVehicles(c *gin.Context) {
	vehicles, err := h.service.ListVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *CatalogHandler) getVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	vehicle, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *CatalogHandler) createVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle := &domain.Vehicle{Code: req.Code, Type: domain.VehicleType(req.Type), Capacity: req.Capacity, Active: req.Active, RouteIDs: req.RouteIDs}
	if err := h.service.CreateVehicle(c.Request.Context(), vehicle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *CatalogHandler) updateVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle := &domain.Vehicle{ID: id, Code: req.Code, Type: domain.VehicleType(req.Type), Capacity: req.Capacity, Active: req.Active, RouteIDs: req.RouteIDs}
	if err := h.service.UpdateVehicle(c.Request.Context(), vehicle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *CatalogHandler) deleteVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteVehicle(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

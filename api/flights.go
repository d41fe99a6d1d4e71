package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/repository"
	"github.com/Nikolay2099/airtickets/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	RouteID       int64     `json:"route"`
	AirplaneID    int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []int64   `json:"crews"`
}

type flightListResponse struct {
	ID            int64  `json:"id"`
	Route         string `json:"route"`
	DepartureTime string `json:"departure_time"`
}

type flightResponse struct {
	ID            int64            `json:"id"`
	Route         routeResponse    `json:"route"`
	Airplane      airplaneResponse `json:"airplane"`
	DepartureTime string           `json:"departure_time"`
	ArrivalTime   string           `json:"arrival_time"`
	Crews         []string         `json:"crews"`
}

func toFlightResponse(f *domain.Flight) flightResponse {
	resp := flightResponse{
		ID:            f.ID,
		DepartureTime: f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:   f.ArrivalTime.Format(time.RFC3339),
		Crews:         make([]string, 0, len(f.Crews)),
	}
	if f.Route != nil {
		resp.Route = toRouteResponse(f.Route)
	}
	if f.Airplane != nil {
		resp.Airplane = toAirplaneResponse(f.Airplane)
	}
	for i := range f.Crews {
		resp.Crews = append(resp.Crews, f.Crews[i].FullName())
	}
	return resp
}

func routeLabel(f *domain.Flight) string {
	if f.Route == nil || f.Route.Source == nil || f.Route.Destination == nil {
		return ""
	}
	return f.Route.Source.ClosestBigCity + "-" + f.Route.Destination.ClosestBigCity
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", RequireAdmin(), h.create)
	router.PUT("/:id", RequireAdmin(), h.update)
}

func (h *FlightHandler) list(c *gin.Context) {
	limit, offset := pageParams(c)
	filter := repository.FlightFilter{Limit: limit, Offset: offset}

	// ?route=Kyiv-Lviv filters by both endpoint cities at once.
	if route := c.Query("route"); route != "" {
		if src, dst, ok := strings.Cut(route, "-"); ok {
			filter.SourceCity = src
			filter.DestinationCity = dst
		}
	}

	flights, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]flightListResponse, 0, len(flights))
	for i := range flights {
		f := &flights[i]
		resp = append(resp, flightListResponse{
			ID:            f.ID,
			Route:         routeLabel(f),
			DepartureTime: f.DepartureTime.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := &domain.Flight{
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	if err := flight.Validate(); err != nil {
		writeError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), flight, req.CrewIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(created))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := &domain.Flight{
		ID:            id,
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	if err := flight.Validate(); err != nil {
		writeError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), flight, req.CrewIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(updated))
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/repository"
	"github.com/Nikolay2099/airtickets/internal/service/catalog"
)

type RouteHandler struct {
	service catalog.CatalogUseCase
}

type routeRequest struct {
	SourceID      int64 `json:"source"`
	DestinationID int64 `json:"destination"`
	Distance      int   `json:"distance"`
}

type routeResponse struct {
	ID          int64           `json:"id"`
	Source      airportResponse `json:"source"`
	Destination airportResponse `json:"destination"`
	Distance    int             `json:"distance"`
}

func toRouteResponse(r *domain.Route) routeResponse {
	resp := routeResponse{ID: r.ID, Distance: r.Distance}
	if r.Source != nil {
		resp.Source = airportResponse{ID: r.Source.ID, Name: r.Source.Name, ClosestBigCity: r.Source.ClosestBigCity}
	}
	if r.Destination != nil {
		resp.Destination = airportResponse{ID: r.Destination.ID, Name: r.Destination.Name, ClosestBigCity: r.Destination.ClosestBigCity}
	}
	return resp
}

func NewRouteHandler(service catalog.CatalogUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", RequireAdmin(), h.create)
	router.PUT("/:id", RequireAdmin(), h.update)
}

func (h *RouteHandler) list(c *gin.Context) {
	limit, offset := pageParams(c)
	filter := repository.RouteFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
		Limit:       limit,
		Offset:      offset,
	}

	routes, err := h.service.ListRoutes(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]routeResponse, 0, len(routes))
	for i := range routes {
		resp = append(resp, toRouteResponse(&routes[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RouteHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRouteResponse(route))
}

func (h *RouteHandler) create(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route := &domain.Route{SourceID: req.SourceID, DestinationID: req.DestinationID, Distance: req.Distance}
	if err := route.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.CreateRoute(c.Request.Context(), route); err != nil {
		writeError(c, err)
		return
	}

	created, err := h.service.GetRoute(c.Request.Context(), route.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRouteResponse(created))
}

func (h *RouteHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route := &domain.Route{ID: id, SourceID: req.SourceID, DestinationID: req.DestinationID, Distance: req.Distance}
	if err := route.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.UpdateRoute(c.Request.Context(), route); err != nil {
		writeError(c, err)
		return
	}

	updated, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRouteResponse(updated))
}

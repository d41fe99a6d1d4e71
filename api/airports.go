package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/service/catalog"
)

type AirportHandler struct {
	service catalog.CatalogUseCase
}

type airportRequest struct {
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

type airportResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

func NewAirportHandler(service catalog.CatalogUseCase) *AirportHandler {
	return &AirportHandler{service: service}
}

func (h *AirportHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", RequireAdmin(), h.create)
	router.PUT("/:id", RequireAdmin(), h.update)
}

func (h *AirportHandler) list(c *gin.Context) {
	limit, offset := pageParams(c)
	airports, err := h.service.ListAirports(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]airportResponse, 0, len(airports))
	for _, a := range airports {
		resp = append(resp, airportResponse{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AirportHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	a, err := h.service.GetAirport(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airportResponse{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity})
}

func (h *AirportHandler) create(c *gin.Context) {
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a := &domain.Airport{Name: req.Name, ClosestBigCity: req.ClosestBigCity}
	if err := a.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.CreateAirport(c.Request.Context(), a); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airportResponse{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity})
}

func (h *AirportHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a := &domain.Airport{ID: id, Name: req.Name, ClosestBigCity: req.ClosestBigCity}
	if err := a.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.UpdateAirport(c.Request.Context(), a); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airportResponse{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/service/catalog"
)

type AirplaneTypeHandler struct {
	service catalog.CatalogUseCase
}

type airplaneTypeRequest struct {
	Name string `json:"name"`
}

type airplaneTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewAirplaneTypeHandler(service catalog.CatalogUseCase) *AirplaneTypeHandler {
	return &AirplaneTypeHandler{service: service}
}

func (h *AirplaneTypeHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", RequireAdmin(), h.create)
	router.PUT("/:id", RequireAdmin(), h.update)
}

func (h *AirplaneTypeHandler) list(c *gin.Context) {
	limit, offset := pageParams(c)
	types, err := h.service.ListAirplaneTypes(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]airplaneTypeResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, airplaneTypeResponse{ID: t.ID, Name: t.Name})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AirplaneTypeHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	t, err := h.service.GetAirplaneType(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneTypeResponse{ID: t.ID, Name: t.Name})
}

func (h *AirplaneTypeHandler) create(c *gin.Context) {
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := &domain.AirplaneType{Name: req.Name}
	if err := t.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.CreateAirplaneType(c.Request.Context(), t); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplaneTypeResponse{ID: t.ID, Name: t.Name})
}

func (h *AirplaneTypeHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := &domain.AirplaneType{ID: id, Name: req.Name}
	if err := t.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.UpdateAirplaneType(c.Request.Context(), t); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneTypeResponse{ID: t.ID, Name: t.Name})
}

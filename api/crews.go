package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/service/catalog"
)

type CrewHandler struct {
	service catalog.CatalogUseCase
}

type crewRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func toCrewResponse(crew *domain.Crew) crewResponse {
	return crewResponse{
		ID:        crew.ID,
		FirstName: crew.FirstName,
		LastName:  crew.LastName,
		FullName:  crew.FullName(),
	}
}

func NewCrewHandler(service catalog.CatalogUseCase) *CrewHandler {
	return &CrewHandler{service: service}
}

func (h *CrewHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", RequireAdmin(), h.create)
	router.PUT("/:id", RequireAdmin(), h.update)
}

func (h *CrewHandler) list(c *gin.Context) {
	limit, offset := pageParams(c)
	crews, err := h.service.ListCrews(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]crewResponse, 0, len(crews))
	for i := range crews {
		resp = append(resp, toCrewResponse(&crews[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CrewHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	crew, err := h.service.GetCrew(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCrewResponse(crew))
}

func (h *CrewHandler) create(c *gin.Context) {
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crew := &domain.Crew{FirstName: req.FirstName, LastName: req.LastName}
	if err := crew.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.CreateCrew(c.Request.Context(), crew); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCrewResponse(crew))
}

func (h *CrewHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crew := &domain.Crew{ID: id, FirstName: req.FirstName, LastName: req.LastName}
	if err := crew.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.UpdateCrew(c.Request.Context(), crew); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCrewResponse(crew))
}

package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/repository"
	"github.com/Nikolay2099/airtickets/internal/service/catalog"
)

type AirplaneHandler struct {
	service  catalog.CatalogUseCase
	mediaDir string
}

type airplaneRequest struct {
	Name           string `json:"name"`
	Rows           int    `json:"rows"`
	SeatsInRow     int    `json:"seats_in_row"`
	AirplaneTypeID int64  `json:"airplane_type"`
}

type airplaneResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	Capacity     int    `json:"capacity"`
	AirplaneType string `json:"airplane_type"`
	Image        string `json:"image,omitempty"`
}

func toAirplaneResponse(a *domain.Airplane) airplaneResponse {
	return airplaneResponse{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		AirplaneType: a.TypeName,
		Image:        a.ImagePath,
	}
}

func NewAirplaneHandler(service catalog.CatalogUseCase, mediaDir string) *AirplaneHandler {
	return &AirplaneHandler{service: service, mediaDir: mediaDir}
}

func (h *AirplaneHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", RequireAdmin(), h.create)
	router.PUT("/:id", RequireAdmin(), h.update)
	router.POST("/:id/image", RequireAdmin(), h.uploadImage)
}

func (h *AirplaneHandler) list(c *gin.Context) {
	limit, offset := pageParams(c)
	filter := repository.AirplaneFilter{
		TypeIDs: idListParam(c.Query("airplane_types")),
		Limit:   limit,
		Offset:  offset,
	}

	airplanes, err := h.service.ListAirplanes(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]airplaneResponse, 0, len(airplanes))
	for i := range airplanes {
		resp = append(resp, toAirplaneResponse(&airplanes[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AirplaneHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneResponse(airplane))
}

func (h *AirplaneHandler) create(c *gin.Context) {
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airplane := &domain.Airplane{
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneTypeID,
	}
	if err := airplane.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.CreateAirplane(c.Request.Context(), airplane); err != nil {
		writeError(c, err)
		return
	}

	created, err := h.service.GetAirplane(c.Request.Context(), airplane.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAirplaneResponse(created))
}

func (h *AirplaneHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airplane := &domain.Airplane{
		ID:             id,
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneTypeID,
	}
	if err := airplane.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.UpdateAirplane(c.Request.Context(), airplane); err != nil {
		writeError(c, err)
		return
	}

	updated, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneResponse(updated))
}

// uploadImage stores the file under the media dir and records its relative
// path on the airplane.
func (h *AirplaneHandler) uploadImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	if _, err := h.service.GetAirplane(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	name := fmt.Sprintf("airplane_%d_%s%s", id, uuid.NewString(), filepath.Ext(file.Filename))
	dir := filepath.Join(h.mediaDir, "airplanes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		writeError(c, err)
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		writeError(c, err)
		return
	}

	relPath := filepath.Join("airplanes", name)
	if err := h.service.SetAirplaneImage(c.Request.Context(), id, relPath); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "image": relPath})
}

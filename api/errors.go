package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/service/auth"
)

// writeError translates the domain error taxonomy into HTTP status codes.
// Validation failures are client errors, seat races are conflicts, and
// infrastructure errors never leak their details.
func writeError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSeatTaken), errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

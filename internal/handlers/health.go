package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loop-backend/internal/models"
)

// HealthHandler reports liveness. No auth, no dependencies.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}

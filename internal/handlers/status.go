package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"loop-backend/internal/models"
)

// timeNow is a variable so tests can pin the clock.
var timeNow = time.Now

// Status endpoints exist twice: at the root for legacy clients and under
// /api for namespaced ones.

func StatusRoot(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: "running"})
}

func StatusHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{
		Status:    "healthy",
		Timestamp: models.FormatTimestamp(timeNow()),
	})
}

func APIStatus(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{
		Status:    "ok",
		Timestamp: models.FormatTimestamp(timeNow()),
	})
}

func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, models.WelcomeResponse{
		Message: "Welcome to the Loop API Service!",
	})
}

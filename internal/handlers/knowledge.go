package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loop-backend/internal/services"
)

type KnowledgeHandler struct {
	service *services.KnowledgeService
}

func NewKnowledgeHandler(service *services.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{service: service}
}

func (h *KnowledgeHandler) GetKnowledge(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Load())
}

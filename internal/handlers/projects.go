package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loop-backend/internal/models"
	"loop-backend/internal/services"
)

type ProjectsHandler struct {
	service *services.ProjectService
}

func NewProjectsHandler(service *services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: service}
}

func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	projects, err := h.service.ListProjects()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: projects})
}

func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	payload, err := documentBody(c)
	if err != nil {
		respondError(c, err)
		return
	}

	project, err := h.service.CreateProject(payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectsHandler) GetProject(c *gin.Context) {
	project, err := h.service.GetProject(c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	patch, err := documentBody(c)
	if err != nil {
		respondError(c, err)
		return
	}

	project, err := h.service.UpdateProject(c.Param("project_id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	if err := h.service.DeleteProject(c.Param("project_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectsHandler) ListAssets(c *gin.Context) {
	assets, err := h.service.ListAssets(c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AssetListResponse{Assets: assets})
}

func (h *ProjectsHandler) CreateAsset(c *gin.Context) {
	payload, err := documentBody(c)
	if err != nil {
		respondError(c, err)
		return
	}

	asset, err := h.service.AddAsset(c.Param("project_id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

func (h *ProjectsHandler) GetAsset(c *gin.Context) {
	asset, err := h.service.GetAsset(c.Param("project_id"), c.Param("asset_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (h *ProjectsHandler) UpdateAsset(c *gin.Context) {
	patch, err := documentBody(c)
	if err != nil {
		respondError(c, err)
		return
	}

	asset, err := h.service.UpdateAsset(c.Param("project_id"), c.Param("asset_id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (h *ProjectsHandler) DeleteAsset(c *gin.Context) {
	if err := h.service.DeleteAsset(c.Param("project_id"), c.Param("asset_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectsHandler) ReplaceTimeline(c *gin.Context) {
	payload, err := documentBody(c)
	if err != nil {
		respondError(c, err)
		return
	}

	timeline, err := h.service.ReplaceTimeline(c.Param("project_id"), c.Param("timeline_name"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, timeline)
}

func (h *ProjectsHandler) GenerateOutline(c *gin.Context) {
	payload, err := documentBody(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.service.GenerateOutline(c.Param("project_id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"loop-backend/internal/models"
	"loop-backend/internal/vectorstore"
)

// CollectionsHandler exposes the embedded vector database over the same
// collection-oriented REST surface the frontend already speaks. Errors here
// are client errors (bad collection name, mismatched payload lengths) and
// map to 400 rather than the domain taxonomy.
type CollectionsHandler struct {
	store *vectorstore.Service
}

func NewCollectionsHandler(store *vectorstore.Service) *CollectionsHandler {
	return &CollectionsHandler{store: store}
}

func (h *CollectionsHandler) CreateCollection(c *gin.Context) {
	name := c.Param("collection_name")
	if err := h.store.CreateCollection(name); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Collection '%s' created successfully", name),
	})
}

func (h *CollectionsHandler) ListCollections(c *gin.Context) {
	names := h.store.ListCollections()
	summaries := make([]models.CollectionSummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, models.CollectionSummary{Name: name})
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *CollectionsHandler) GetCollectionInfo(c *gin.Context) {
	name := c.Param("collection_name")
	count, err := h.store.Count(name)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CollectionInfoResponse{Name: name, Count: count})
}

func (h *CollectionsHandler) AddDocuments(c *gin.Context) {
	var req models.AddDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	name := c.Param("collection_name")
	if err := h.store.AddDocuments(c.Request.Context(), name, req.Documents, req.Metadatas, req.IDs); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Added %d documents to collection '%s'", len(req.Documents), name),
	})
}

func (h *CollectionsHandler) QueryDocuments(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.store.Query(c.Request.Context(), c.Param("collection_name"), req.QueryTexts, req.NResults)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Message: err.Error(), Code: "bad_request"},
	})
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"loop-backend/internal/apierr"
	"loop-backend/internal/models"
)

// respondError maps the domain error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is an internal failure (disk corruption,
// permissions) and is logged rather than leaked to the client.
func respondError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		c.JSON(statusFor(apiErr.Kind), models.ErrorResponse{
			Error: models.ErrorDetail{Message: apiErr.Message, Code: string(apiErr.Kind)},
		})
		return
	}

	log.Printf("Unhandled error: %v", err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{Message: "Internal server error", Code: "internal_error"},
	})
}

func statusFor(kind apierr.Kind) int {
	switch kind {
	case apierr.KindNotFound:
		return http.StatusNotFound
	case apierr.KindConflict:
		return http.StatusConflict
	case apierr.KindValidation:
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// documentBody reads the request body as an open JSON object. An absent body
// is an empty document (creation endpoints fall back to defaults); anything
// that is not a JSON object is a validation failure.
func documentBody(c *gin.Context) (map[string]interface{}, error) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return map[string]interface{}{}, nil
	}

	var doc map[string]interface{}
	if err := c.ShouldBindJSON(&doc); err != nil {
		return nil, apierr.Validation("Request body must be a JSON object.")
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, nil
}

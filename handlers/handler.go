// Package handlers exposes the REST surface over gin. Each handler binds the
// request, delegates to models or the compliance engine, and translates
// errors into status codes; no business logic lives here.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/practice_backend/compliance"
	"github.com/mmdatafocus/practice_backend/utils"
)

// Handler carries the compliance engine; everything else goes through the
// package-level model functions.
type Handler struct {
	Engine *compliance.Engine
}

func New(engine *compliance.Engine) *Handler {
	return &Handler{Engine: engine}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

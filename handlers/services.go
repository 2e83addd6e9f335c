package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/models"
)

func (h *Handler) CreateService(c *gin.Context) {
	var input models.NewService
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	svc, err := models.CreateService(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.ensureCompliance(c, svc)
	c.JSON(http.StatusCreated, svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
	var input models.NewService
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	svc, err := models.UpdateService(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.ensureCompliance(c, svc)
	c.JSON(http.StatusOK, svc)
}

// ensureCompliance derives obligations for a changed service inline.
// Failures are logged, not surfaced: the service write already succeeded
// and the next reconciliation sweep will catch up.
func (h *Handler) ensureCompliance(c *gin.Context, svc *models.Service) {
	ctx := c.Request.Context()
	client, err := h.Engine.Clients.Resolve(ctx, svc.ClientId)
	if err != nil {
		config.LogError(config.GetLogger(), "services.go", "ensureCompliance", "resolve client", svc.ClientId, err)
		return
	}
	if _, err := h.Engine.EnsureComplianceForService(ctx, client, svc); err != nil {
		config.LogError(config.GetLogger(), "services.go", "ensureCompliance", "derive obligations", svc.ID, err)
	}
}

func (h *Handler) DeleteService(c *gin.Context) {
	svc, err := models.DeleteService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *Handler) GetService(c *gin.Context) {
	svc, err := models.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *Handler) ListServices(c *gin.Context) {
	var clientId *string
	var status *models.ServiceStatus
	if v := c.Query("client_id"); v != "" {
		clientId = &v
	}
	if v := c.Query("status"); v != "" {
		parsed, err := models.ParseServiceStatus(v)
		if err != nil {
			respondBindError(c, err)
			return
		}
		status = &parsed
	}
	services, err := models.GetServices(c.Request.Context(), clientId, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

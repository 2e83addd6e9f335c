package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/practice_backend/models"
)

func (h *Handler) CreateClient(c *gin.Context) {
	var input models.NewClient
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	client, err := models.CreateClient(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) GetClient(c *gin.Context) {
	client, err := models.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) UpdateClient(c *gin.Context) {
	var input models.NewClient
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	client, err := models.UpdateClient(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) DeleteClient(c *gin.Context) {
	client, err := models.DeleteClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) ListClients(c *gin.Context) {
	var name, portfolio *string
	var status *models.ClientStatus
	if v := c.Query("name"); v != "" {
		name = &v
	}
	if v := c.Query("portfolio"); v != "" {
		portfolio = &v
	}
	if v := c.Query("status"); v != "" {
		parsed, err := models.ParseClientStatus(v)
		if err != nil {
			respondBindError(c, err)
			return
		}
		status = &parsed
	}
	clients, err := models.GetClients(c.Request.Context(), name, portfolio, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

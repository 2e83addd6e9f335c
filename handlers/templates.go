package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/practice_backend/models"
)

func (h *Handler) CreateLetterTemplate(c *gin.Context) {
	var input models.NewLetterTemplate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	tpl, err := models.CreateLetterTemplate(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *Handler) UpdateLetterTemplate(c *gin.Context) {
	var input models.NewLetterTemplate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	tpl, err := models.UpdateLetterTemplate(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *Handler) DeleteLetterTemplate(c *gin.Context) {
	tpl, err := models.DeleteLetterTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *Handler) GetLetterTemplate(c *gin.Context) {
	tpl, err := models.GetLetterTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *Handler) ListLetterTemplates(c *gin.Context) {
	var letterType *string
	if v := c.Query("type"); v != "" {
		letterType = &v
	}
	templates, err := models.GetLetterTemplates(c.Request.Context(), letterType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

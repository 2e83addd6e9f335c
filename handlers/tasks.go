package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/practice_backend/models"
)

func (h *Handler) CreateTask(c *gin.Context) {
	var input models.NewTask
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	task, err := models.CreateTask(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	var input models.NewTask
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	task, err := models.UpdateTask(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	task, err := models.DeleteTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) GetTask(c *gin.Context) {
	task, err := models.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c *gin.Context) {
	var assigneeId *string
	var status *models.TaskStatus
	if v := c.Query("assignee_id"); v != "" {
		assigneeId = &v
	}
	if v := c.Query("status"); v != "" {
		parsed, err := models.ParseTaskStatus(v)
		if err != nil {
			respondBindError(c, err)
			return
		}
		status = &parsed
	}
	tasks, err := models.GetTasks(c.Request.Context(), assigneeId, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

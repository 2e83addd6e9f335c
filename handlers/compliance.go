package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/models"
)

func (h *Handler) CreateComplianceItem(c *gin.Context) {
	var input models.NewComplianceItem
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.Engine.CreateComplianceItem(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) GetComplianceItem(c *gin.Context) {
	item, err := h.Engine.GetComplianceItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) UpdateComplianceItem(c *gin.Context) {
	var input models.UpdateComplianceItem
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.Engine.UpdateComplianceItem(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteComplianceItem(c *gin.Context) {
	item, err := h.Engine.DeleteComplianceItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) ListComplianceItems(c *gin.Context) {
	filter, err := complianceFilterFromQuery(c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	items, err := h.Engine.ListComplianceItems(c.Request.Context(), *filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func complianceFilterFromQuery(c *gin.Context) (*models.ComplianceFilter, error) {
	filter := &models.ComplianceFilter{
		ClientId:  c.Query("client_id"),
		ServiceId: c.Query("service_id"),
		Type:      models.ComplianceType(c.Query("type")),
		Portfolio: c.Query("portfolio"),
	}
	if v := c.Query("status"); v != "" {
		status, err := models.ParseComplianceStatus(v)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	if v := c.Query("source"); v != "" {
		source, err := models.ParseComplianceSource(v)
		if err != nil {
			return nil, err
		}
		filter.Source = source
	}
	if v := c.Query("due_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
		filter.DueFrom = &t
	}
	if v := c.Query("due_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
		filter.DueTo = &t
	}
	return filter, nil
}

type markFiledRequest struct {
	FiledAt *time.Time `json:"filed_at"`
}

func (h *Handler) MarkFiled(c *gin.Context) {
	var input markFiledRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
	}
	item, err := h.Engine.MarkFiled(c.Request.Context(), c.Param("id"), input.FiledAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) MarkOverdue(c *gin.Context) {
	item, err := h.Engine.MarkOverdue(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type bulkStatusRequest struct {
	Ids    []string                `json:"ids" binding:"required"`
	Status models.ComplianceStatus `json:"status" binding:"required"`
}

func (h *Handler) BulkUpdateStatus(c *gin.Context) {
	var input bulkStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	result := h.Engine.BulkUpdateStatus(c.Request.Context(), input.Ids, input.Status)
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetOverdueComplianceItems(c *gin.Context) {
	items, err := h.Engine.GetOverdueComplianceItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetUpcomingComplianceItems(c *gin.Context) {
	days := config.UpcomingWindowDays()
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondBindError(c, fmt.Errorf("invalid days %q", v))
			return
		}
		days = n
	}
	items, err := h.Engine.GetUpcomingComplianceItems(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ComplianceStatistics(c *gin.Context) {
	stats, err := h.Engine.ComplianceStatistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type createTaskRequest struct {
	AssigneeId string `json:"assignee_id"`
}

func (h *Handler) CreateTaskFromComplianceItem(c *gin.Context) {
	var input createTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
	}
	task, err := h.Engine.CreateTaskFromComplianceItem(c.Request.Context(), c.Param("id"), input.AssigneeId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTasksForComplianceItem(c *gin.Context) {
	tasks, err := h.Engine.FindTasksForComplianceItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) CreateTasksForOverdue(c *gin.Context) {
	result, err := h.Engine.CreateTasksForOverdueCompliance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) CreateTasksForUpcoming(c *gin.Context) {
	days := config.UpcomingWindowDays()
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondBindError(c, fmt.Errorf("invalid days %q", v))
			return
		}
		days = n
	}
	result, err := h.Engine.CreateTasksForUpcomingCompliance(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) EscalateOverdueCompliance(c *gin.Context) {
	result, err := h.Engine.EscalateOverdueCompliance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ReconcileFromServices(c *gin.Context) {
	result, err := h.Engine.ReconcileFromServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) CleanupInvalidClients(c *gin.Context) {
	result, err := h.Engine.CleanupInvalidClients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) CleanupDuplicates(c *gin.Context) {
	result, err := h.Engine.CleanupDuplicates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ExportDeadlines(c *gin.Context) {
	filter, err := complianceFilterFromQuery(c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	f, err := h.Engine.ExportDeadlines(c.Request.Context(), *filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=deadlines.xlsx")
	if err := f.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}

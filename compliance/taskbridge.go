package compliance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/models"
)

// complianceTagPrefix is the legacy correlation convention. New tasks carry
// the item id in the structured ComplianceItemId column; the tag is still
// written for compatibility with consumers of the old scheme.
const complianceTagPrefix = "compliance:"

// TaskGenerationResult summarizes a bulk task-generation pass.
type TaskGenerationResult struct {
	ItemsScanned int      `json:"items_scanned"`
	TasksCreated int      `json:"tasks_created"`
	Skipped      int      `json:"skipped"`
	Errors       []string `json:"errors"`
}

// PriorityForCompliance maps an item's urgency to a task priority. OVERDUE
// or already past due is URGENT; within a week HIGH; within a month MEDIUM;
// further out, or no due date at all, LOW.
func PriorityForCompliance(status models.ComplianceStatus, dueDate *time.Time, now time.Time) models.TaskPriority {
	if status == models.ComplianceStatusOverdue {
		return models.TaskPriorityUrgent
	}
	if dueDate == nil {
		return models.TaskPriorityLow
	}
	days := int(dueDate.Sub(now).Hours() / 24)
	switch {
	case days <= 0:
		return models.TaskPriorityUrgent
	case days <= 7:
		return models.TaskPriorityHigh
	case days <= 30:
		return models.TaskPriorityMedium
	default:
		return models.TaskPriorityLow
	}
}

// CreateTaskFromComplianceItem materializes a staff task for the item. The
// task mirrors the item's due date, derives its priority from the item's
// urgency, and is correlated through ComplianceItemId plus the legacy tag.
func (e *Engine) CreateTaskFromComplianceItem(ctx context.Context, itemId, assigneeId string) (*models.Task, error) {

	item, err := e.Items.Get(ctx, itemId)
	if err != nil {
		return nil, err
	}

	now := e.Now().UTC()
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       fmt.Sprintf("[%s] %s", item.Type, item.Description),
		Description: fmt.Sprintf("Complete the %s filing. Compliance item %s.", item.Type, item.ID),
		AssigneeId:  assigneeId,
		DueDate:     item.DueDate,
		Status:      models.TaskStatusOpen,
		Priority:    PriorityForCompliance(item.Status, item.DueDate, now),
		Tags: models.StringList{
			complianceTagPrefix + item.ID,
			"type:" + strings.ToLower(string(item.Type)),
			"source:" + strings.ToLower(string(item.Source)),
		},
		ComplianceItemId: item.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := e.Tasks.Put(ctx, &task); err != nil {
		config.LogError(e.Logger, "taskbridge.go", "CreateTaskFromComplianceItem", "put task", itemId, err)
		return nil, err
	}
	return &task, nil
}

// FindTasksForComplianceItem returns every task correlated with the item.
// The structured column is the primary match; when the legacy fallback is
// enabled, tasks carrying the old tag or the raw id in their title or
// description also count. Correlation is a predicate scan, not a join.
func (e *Engine) FindTasksForComplianceItem(ctx context.Context, itemId string) ([]*models.Task, error) {

	legacy := config.LegacyTaskMatchEnabled()
	return e.Tasks.Scan(ctx, func(task *models.Task) bool {
		if task.ComplianceItemId == itemId {
			return true
		}
		if !legacy {
			return false
		}
		if task.Tags.Contains(complianceTagPrefix + itemId) {
			return true
		}
		return strings.Contains(task.Title, itemId) || strings.Contains(task.Description, itemId)
	})
}

// CreateTasksForOverdueCompliance creates a task for every overdue item that
// has none yet. Idempotent: already-correlated items are counted as skipped.
func (e *Engine) CreateTasksForOverdueCompliance(ctx context.Context) (*TaskGenerationResult, error) {

	items, err := e.GetOverdueComplianceItems(ctx)
	if err != nil {
		return nil, err
	}
	return e.createTasksForItems(ctx, items), nil
}

// CreateTasksForUpcomingCompliance does the same for items due within
// daysAhead days.
func (e *Engine) CreateTasksForUpcomingCompliance(ctx context.Context, daysAhead int) (*TaskGenerationResult, error) {

	items, err := e.GetUpcomingComplianceItems(ctx, daysAhead)
	if err != nil {
		return nil, err
	}
	return e.createTasksForItems(ctx, items), nil
}

func (e *Engine) createTasksForItems(ctx context.Context, items []*models.ComplianceItem) *TaskGenerationResult {

	result := &TaskGenerationResult{ItemsScanned: len(items)}
	for _, item := range items {
		existing, err := e.FindTasksForComplianceItem(ctx, item.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("item %s: %v", item.ID, err))
			continue
		}
		if len(existing) > 0 {
			result.Skipped++
			continue
		}
		if _, err := e.CreateTaskFromComplianceItem(ctx, item.ID, ""); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("item %s: %v", item.ID, err))
			continue
		}
		result.TasksCreated++
	}
	return result
}

package compliance

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/practice_backend/models"
)

// EscalationResult summarizes one escalation pass.
type EscalationResult struct {
	Escalated      int      `json:"escalated"`
	TasksCreated   int      `json:"tasks_created"`
	TasksEscalated int      `json:"tasks_escalated"`
	Errors         []string `json:"errors"`
}

// EscalateOverdueCompliance scans for overdue items and, for each one,
// transitions it to OVERDUE if still PENDING, creates a correlated task if
// none exists, and bumps any open correlated task below URGENT to URGENT.
// Individual failures are recorded and do not abort the pass.
func (e *Engine) EscalateOverdueCompliance(ctx context.Context) (*EscalationResult, error) {

	items, err := e.GetOverdueComplianceItems(ctx)
	if err != nil {
		return nil, err
	}

	result := &EscalationResult{}
	for _, item := range items {
		if item.Status == models.ComplianceStatusPending {
			item.Status = models.ComplianceStatusOverdue
			item.UpdatedAt = e.Now().UTC()
			if err := e.Items.Put(ctx, item); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("item %s: %v", item.ID, err))
				continue
			}
			result.Escalated++
		}

		tasks, err := e.FindTasksForComplianceItem(ctx, item.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("item %s: %v", item.ID, err))
			continue
		}
		if len(tasks) == 0 {
			if _, err := e.CreateTaskFromComplianceItem(ctx, item.ID, ""); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("item %s: %v", item.ID, err))
				continue
			}
			result.TasksCreated++
			continue
		}

		for _, task := range tasks {
			if !task.Status.Open() || task.Priority.Rank() >= models.TaskPriorityUrgent.Rank() {
				continue
			}
			task.Priority = models.TaskPriorityUrgent
			task.UpdatedAt = e.Now().UTC()
			if err := e.Tasks.Put(ctx, task); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("task %s: %v", task.ID, err))
				continue
			}
			result.TasksEscalated++
		}
	}
	return result, nil
}

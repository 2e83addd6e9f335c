package compliance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/models"
	"github.com/mmdatafocus/practice_backend/utils"
)

// BulkStatusResult reports a bulk transition: counts plus per-item errors so
// callers can see partial success instead of a bare boolean.
type BulkStatusResult struct {
	Requested int      `json:"requested"`
	Updated   int      `json:"updated"`
	Errors    []string `json:"errors"`
}

func (e *Engine) CreateComplianceItem(ctx context.Context, input *models.NewComplianceItem) (*models.ComplianceItem, error) {

	source := input.Source
	if source == "" {
		source = models.ComplianceSourceManual
	} else if _, err := models.ParseComplianceSource(string(source)); err != nil {
		return nil, err
	}

	now := e.Now().UTC()
	item := models.ComplianceItem{
		ID:          uuid.NewString(),
		ClientId:    input.ClientId,
		ServiceId:   input.ServiceId,
		Type:        input.Type,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      models.ComplianceStatusPending,
		Source:      source,
		Reference:   input.Reference,
		Period:      input.Period,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.Items.Put(ctx, &item); err != nil {
		config.LogError(e.Logger, "registry.go", "CreateComplianceItem", "put item", input, err)
		return nil, err
	}
	return &item, nil
}

func (e *Engine) GetComplianceItem(ctx context.Context, id string) (*models.ComplianceItem, error) {
	return e.Items.Get(ctx, id)
}

// UpdateComplianceItem applies the partial payload. Nil fields are left
// untouched; updated_at is always refreshed. This is the single mutation
// path every status transition goes through, and the only one allowed to
// overwrite a FILED or EXEMPT item (operator override).
func (e *Engine) UpdateComplianceItem(ctx context.Context, id string, input *models.UpdateComplianceItem) (*models.ComplianceItem, error) {

	item, err := e.Items.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.DueDate != nil {
		item.DueDate = input.DueDate
	}
	if input.Status != nil {
		status, err := models.ParseComplianceStatus(string(*input.Status))
		if err != nil {
			return nil, err
		}
		item.Status = status
	}
	if input.Source != nil {
		source, err := models.ParseComplianceSource(string(*input.Source))
		if err != nil {
			return nil, err
		}
		item.Source = source
	}
	if input.Reference != nil {
		item.Reference = *input.Reference
	}
	if input.Period != nil {
		item.Period = *input.Period
	}
	item.UpdatedAt = e.Now().UTC()

	if err := e.Items.Put(ctx, item); err != nil {
		config.LogError(e.Logger, "registry.go", "UpdateComplianceItem", "put item", id, err)
		return nil, err
	}
	return item, nil
}

func (e *Engine) DeleteComplianceItem(ctx context.Context, id string) (*models.ComplianceItem, error) {

	item, err := e.Items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.Items.Delete(ctx, id); err != nil {
		return nil, err
	}
	return item, nil
}

// ListComplianceItems returns items matching the filter, sorted by due date
// ascending; items without a due date always sort after items that have one.
func (e *Engine) ListComplianceItems(ctx context.Context, filter models.ComplianceFilter) ([]*models.ComplianceItem, error) {

	var portfolioClients map[string]bool
	if filter.Portfolio != "" {
		clients, err := e.Clients.ListActiveByPortfolio(ctx, filter.Portfolio)
		if err != nil {
			return nil, err
		}
		portfolioClients = make(map[string]bool, len(clients))
		for _, c := range clients {
			portfolioClients[c.ID] = true
		}
	}

	items, err := e.Items.Scan(ctx, func(item *models.ComplianceItem) bool {
		if filter.ClientId != "" && item.ClientId != filter.ClientId {
			return false
		}
		if filter.ServiceId != "" && item.ServiceId != filter.ServiceId {
			return false
		}
		if filter.Type != "" && item.Type != filter.Type {
			return false
		}
		if filter.Status != "" && item.Status != filter.Status {
			return false
		}
		if filter.Source != "" && item.Source != filter.Source {
			return false
		}
		if portfolioClients != nil && !portfolioClients[item.ClientId] {
			return false
		}
		if filter.DueFrom != nil && (item.DueDate == nil || item.DueDate.Before(*filter.DueFrom)) {
			return false
		}
		if filter.DueTo != nil && (item.DueDate == nil || item.DueDate.After(*filter.DueTo)) {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	sortByDueDate(items)
	return items, nil
}

// sortByDueDate orders items by due date ascending with nil due dates last.
// The sort is stable so same-day items keep their scan order.
func sortByDueDate(items []*models.ComplianceItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].DueDate, items[j].DueDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
}

// MarkFiled transitions PENDING or OVERDUE to FILED. An explicit filed
// timestamp, when given, overwrites updated_at so the register records when
// the filing actually happened.
func (e *Engine) MarkFiled(ctx context.Context, id string, filedAt *time.Time) (*models.ComplianceItem, error) {

	item, err := e.Items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Status != models.ComplianceStatusPending && item.Status != models.ComplianceStatusOverdue {
		return nil, fmt.Errorf("%w: %s cannot be marked filed", utils.ErrorInvalidTransition, item.Status)
	}

	item.Status = models.ComplianceStatusFiled
	if filedAt != nil {
		item.UpdatedAt = filedAt.UTC()
	} else {
		item.UpdatedAt = e.Now().UTC()
	}
	if err := e.Items.Put(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// MarkOverdue transitions PENDING to OVERDUE.
func (e *Engine) MarkOverdue(ctx context.Context, id string) (*models.ComplianceItem, error) {

	item, err := e.Items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Status != models.ComplianceStatusPending {
		return nil, fmt.Errorf("%w: %s cannot be marked overdue", utils.ErrorInvalidTransition, item.Status)
	}

	item.Status = models.ComplianceStatusOverdue
	item.UpdatedAt = e.Now().UTC()
	if err := e.Items.Put(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// BulkUpdateStatus applies one status to many items. Individual failures are
// collected and never abort the batch.
func (e *Engine) BulkUpdateStatus(ctx context.Context, ids []string, status models.ComplianceStatus) *BulkStatusResult {

	result := &BulkStatusResult{Requested: len(ids)}
	if _, err := models.ParseComplianceStatus(string(status)); err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	for _, id := range ids {
		item, err := e.Items.Get(ctx, id)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("item %s: %v", id, err))
			continue
		}
		item.Status = status
		item.UpdatedAt = e.Now().UTC()
		if err := e.Items.Put(ctx, item); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("item %s: %v", id, err))
			continue
		}
		result.Updated++
	}
	return result
}

// itemOverdue is the single definition of overdue, shared by the overdue
// query and the statistics counter: past due and still PENDING or OVERDUE.
// Items without a due date never qualify.
func itemOverdue(item *models.ComplianceItem, now time.Time) bool {
	if item.DueDate == nil || !item.DueDate.Before(now) {
		return false
	}
	return item.Status == models.ComplianceStatusPending || item.Status == models.ComplianceStatusOverdue
}

// GetOverdueComplianceItems returns items past their due date that are still
// PENDING or already OVERDUE.
func (e *Engine) GetOverdueComplianceItems(ctx context.Context) ([]*models.ComplianceItem, error) {

	now := e.Now().UTC()
	items, err := e.Items.Scan(ctx, func(item *models.ComplianceItem) bool {
		return itemOverdue(item, now)
	})
	if err != nil {
		return nil, err
	}
	sortByDueDate(items)
	return items, nil
}

// GetUpcomingComplianceItems returns PENDING items due within daysAhead days
// from now, soonest first.
func (e *Engine) GetUpcomingComplianceItems(ctx context.Context, daysAhead int) ([]*models.ComplianceItem, error) {

	now := e.Now().UTC()
	horizon := now.AddDate(0, 0, daysAhead)
	items, err := e.Items.Scan(ctx, func(item *models.ComplianceItem) bool {
		if item.Status != models.ComplianceStatusPending || item.DueDate == nil {
			return false
		}
		return !item.DueDate.Before(now) && !item.DueDate.After(horizon)
	})
	if err != nil {
		return nil, err
	}
	sortByDueDate(items)
	return items, nil
}

// ComplianceStatistics summarizes the register: totals by status, type and
// source plus overdue and due-this-month counts.
func (e *Engine) ComplianceStatistics(ctx context.Context) (*models.ComplianceStatistics, error) {

	items, err := e.Items.Scan(ctx, nil)
	if err != nil {
		return nil, err
	}

	now := e.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	stats := &models.ComplianceStatistics{
		Total:    len(items),
		ByStatus: make(map[models.ComplianceStatus]int),
		ByType:   make(map[models.ComplianceType]int),
		BySource: make(map[models.ComplianceSource]int),
	}
	for _, item := range items {
		stats.ByStatus[item.Status]++
		stats.ByType[item.Type]++
		stats.BySource[item.Source]++
		if item.DueDate != nil {
			if itemOverdue(item, now) {
				stats.Overdue++
			}
			if !item.DueDate.Before(monthStart) && item.DueDate.Before(monthEnd) {
				stats.DueThisMonth++
			}
		}
	}
	return stats, nil
}

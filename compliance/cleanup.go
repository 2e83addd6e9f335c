package compliance

import (
	"context"
	"fmt"
	"sort"

	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/models"
)

// CleanupResult reports a repair pass over the register.
type CleanupResult struct {
	TotalItems   int      `json:"total_items"`
	InvalidItems int      `json:"invalid_items"`
	RemovedItems int      `json:"removed_items"`
	Errors       []string `json:"errors"`
}

// CleanupInvalidClients deletes items whose client id no longer names a
// known client. Dangling references are tolerated between runs because
// client ids can be rewritten independently of the register; this job is
// the repair, not the prevention.
func (e *Engine) CleanupInvalidClients(ctx context.Context) (*CleanupResult, error) {

	clientIds, err := e.Clients.ListIds(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(clientIds))
	for _, id := range clientIds {
		known[id] = true
	}

	items, err := e.Items.Scan(ctx, nil)
	if err != nil {
		return nil, err
	}

	result := &CleanupResult{TotalItems: len(items)}
	for _, item := range items {
		if known[item.ClientId] {
			continue
		}
		result.InvalidItems++
		if err := e.Items.Delete(ctx, item.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("item %s: %v", item.ID, err))
			continue
		}
		result.RemovedItems++
	}
	if result.RemovedItems > 0 {
		config.LogWarn(e.Logger, "cleanup.go", "CleanupInvalidClients",
			fmt.Sprintf("removed %d of %d items", result.RemovedItems, result.TotalItems),
			"register referenced unknown clients")
	}
	return result, nil
}

// CleanupDuplicates restores the at-most-one-live-item invariant after it
// has been violated, e.g. by concurrent reconciliation runs. Items are
// grouped by (client, service-or-placeholder, type); within each group only
// the most recently created member survives.
func (e *Engine) CleanupDuplicates(ctx context.Context) (*CleanupResult, error) {

	items, err := e.Items.Scan(ctx, nil)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]*models.ComplianceItem)
	for _, item := range items {
		serviceKey := item.ServiceId
		if serviceKey == "" {
			serviceKey = "manual"
		}
		key := fmt.Sprintf("%s|%s|%s", item.ClientId, serviceKey, item.Type)
		groups[key] = append(groups[key], item)
	}

	result := &CleanupResult{TotalItems: len(items)}
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})
		for _, dup := range group[1:] {
			result.InvalidItems++
			if err := e.Items.Delete(ctx, dup.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("item %s: %v", dup.ID, err))
				continue
			}
			result.RemovedItems++
		}
	}
	return result, nil
}

package compliance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/models"
)

// ReconcileResult is the diagnostic summary of one reconciliation run. The
// counters exist so a run that generates nothing is explainable: everything
// skipped, clients missing, or errors.
type ReconcileResult struct {
	ServicesScanned int      `json:"services_scanned"`
	Generated       int      `json:"generated"`
	Skipped         int      `json:"skipped"`
	ClientsNotFound int      `json:"clients_not_found"`
	Errors          []string `json:"errors"`

	// MappingTable records which revision of the kind catalogue derived
	// this run's items, so backfills can be traced to a rule set.
	MappingTable int `json:"mapping_table"`
}

// ReconcileFromServices derives compliance items from every active service.
// Safe to re-run arbitrarily often: a live (non-FILED) item for the same
// (client, service, type) blocks regeneration. Individual failures are
// recorded and never abort the sweep.
func (e *Engine) ReconcileFromServices(ctx context.Context) (*ReconcileResult, error) {

	services, err := e.Services.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &ReconcileResult{MappingTable: mappingTableVersion}

	byClient := make(map[string][]*models.Service)
	var clientOrder []string
	for _, svc := range services {
		if svc.Status != models.ServiceStatusActive {
			continue
		}
		result.ServicesScanned++
		if _, seen := byClient[svc.ClientId]; !seen {
			clientOrder = append(clientOrder, svc.ClientId)
		}
		byClient[svc.ClientId] = append(byClient[svc.ClientId], svc)
	}

	for _, clientId := range clientOrder {
		client, err := e.Clients.Resolve(ctx, clientId)
		if err != nil {
			result.ClientsNotFound++
			config.LogWarn(e.Logger, "reconciliation.go", "ReconcileFromServices", clientId,
				"client not found, skipping its services")
			continue
		}
		if client.Status != models.ClientStatusActive {
			continue
		}

		for _, svc := range byClient[clientId] {
			e.reconcileService(ctx, client, svc, result)
		}
	}
	return result, nil
}

// EnsureComplianceForService runs the check-then-create pass for a single
// service, used when a service is created or edited interactively.
func (e *Engine) EnsureComplianceForService(ctx context.Context, client *models.Client, svc *models.Service) (*ReconcileResult, error) {

	result := &ReconcileResult{MappingTable: mappingTableVersion}
	if svc.Status != models.ServiceStatusActive || client.Status != models.ClientStatusActive {
		return result, nil
	}
	result.ServicesScanned = 1
	e.reconcileService(ctx, client, svc, result)
	return result, nil
}

func (e *Engine) reconcileService(ctx context.Context, client *models.Client, svc *models.Service, result *ReconcileResult) {

	for _, rule := range ComplianceTypesForService(svc.Kind) {
		exists, err := e.liveItemExists(ctx, client.ID, svc.ID, rule.Type)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("service %s type %s: %v", svc.ID, rule.Type, err))
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		now := e.Now().UTC()
		item := models.ComplianceItem{
			ID:          uuid.NewString(),
			ClientId:    client.ID,
			ServiceId:   svc.ID,
			Type:        rule.Type,
			Description: fmt.Sprintf("%s - %s", client.Name, rule.Description),
			DueDate:     DefaultDueDate(svc, rule.Type, now),
			Status:      models.ComplianceStatusPending,
			Source:      rule.Source,
			Reference:   client.RegistrationRef,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := e.Items.Put(ctx, &item); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("service %s type %s: %v", svc.ID, rule.Type, err))
			continue
		}
		result.Generated++
	}
}

// liveItemExists checks the at-most-one-live-item invariant for one
// (client, service, type) key. This check-then-create sequence can race a
// concurrent run; duplicate cleanup repairs what slips through.
func (e *Engine) liveItemExists(ctx context.Context, clientId, serviceId string, itemType models.ComplianceType) (bool, error) {
	matches, err := e.Items.Scan(ctx, func(item *models.ComplianceItem) bool {
		return item.ClientId == clientId &&
			item.ServiceId == serviceId &&
			item.Type == itemType &&
			item.Status.Live()
	})
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

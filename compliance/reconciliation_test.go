package compliance

import (
	"context"
	"testing"

	"github.com/mmdatafocus/practice_backend/models"
)

func TestReconcileFromServices_GeneratesItems(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addClient("c1", "Acme Ltd", models.ClientStatusActive)
	env.addService("s1", "c1", "VAT Returns", models.ServiceStatusActive)

	result, err := env.engine.ReconcileFromServices(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if result.ServicesScanned != 1 || result.Generated != 1 || result.Skipped != 0 {
		t.Fatalf("unexpected counters: %+v", result)
	}

	items, _ := env.engine.ListComplianceItems(ctx, models.ComplianceFilter{ClientId: "c1"})
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.Type != models.ComplianceTypeVATReturn {
		t.Fatalf("expected VAT_RETURN, got %s", item.Type)
	}
	if item.Status != models.ComplianceStatusPending {
		t.Fatalf("expected PENDING, got %s", item.Status)
	}
	if item.Reference != "REG-c1" {
		t.Fatalf("expected client registration ref, got %q", item.Reference)
	}
	if item.Description != "Acme Ltd - VAT return" {
		t.Fatalf("unexpected description %q", item.Description)
	}
	if item.DueDate == nil {
		t.Fatal("expected a computed due date")
	}
}

func TestReconcileFromServices_Idempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addClient("c1", "Acme Ltd", models.ClientStatusActive)
	env.addService("s1", "c1", "Annual Accounts", models.ServiceStatusActive)

	if _, err := env.engine.ReconcileFromServices(ctx); err != nil {
		t.Fatalf("first reconcile: %v", err)
	}
	second, err := env.engine.ReconcileFromServices(ctx)
	if err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if second.Generated != 0 || second.Skipped != 1 {
		t.Fatalf("second run must skip, got %+v", second)
	}

	ids, _ := env.engine.Items.ListIds(ctx)
	if len(ids) != 1 {
		t.Fatalf("expected 1 item after two runs, got %d", len(ids))
	}
}

func TestReconcileFromServices_FiledItemDoesNotBlockRegeneration(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addClient("c1", "Acme Ltd", models.ClientStatusActive)
	env.addService("s1", "c1", "Annual Accounts", models.ServiceStatusActive)
	env.putItem(models.ComplianceItem{
		ID: "filed", ClientId: "c1", ServiceId: "s1",
		Type: models.ComplianceTypeAnnualAccounts, Status: models.ComplianceStatusFiled,
	})

	result, err := env.engine.ReconcileFromServices(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if result.Generated != 1 {
		t.Fatalf("a FILED item must not block the next period, got %+v", result)
	}
}

func TestReconcileFromServices_SkipsInactiveServicesAndClients(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addClient("c1", "Dormant Ltd", models.ClientStatusDormant)
	env.addService("s1", "c1", "VAT Returns", models.ServiceStatusActive)
	env.addClient("c2", "Active Ltd", models.ClientStatusActive)
	env.addService("s2", "c2", "VAT Returns", models.ServiceStatusPaused)

	result, err := env.engine.ReconcileFromServices(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if result.Generated != 0 {
		t.Fatalf("expected nothing generated, got %+v", result)
	}
	// The paused service never enters the scan; the dormant client's does
	// but is skipped without counting as an error.
	if result.ServicesScanned != 1 {
		t.Fatalf("expected 1 service scanned, got %d", result.ServicesScanned)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("inactive records are not errors: %v", result.Errors)
	}
}

func TestReconcileFromServices_CountsMissingClients(t *testing.T) {
	env := newTestEnv()
	env.addService("s1", "ghost", "VAT Returns", models.ServiceStatusActive)

	result, err := env.engine.ReconcileFromServices(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if result.ClientsNotFound != 1 || result.Generated != 0 {
		t.Fatalf("expected 1 client not found, got %+v", result)
	}
}

func TestReconcileFromServices_UnmappedKindGeneratesNothing(t *testing.T) {
	env := newTestEnv()
	env.addClient("c1", "Acme Ltd", models.ClientStatusActive)
	env.addService("s1", "c1", "Business coaching", models.ServiceStatusActive)

	result, err := env.engine.ReconcileFromServices(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if result.Generated != 0 || result.Skipped != 0 {
		t.Fatalf("unmapped kind must produce nothing, got %+v", result)
	}
}

func TestEnsureComplianceForService(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	client := env.addClient("c1", "Acme Ltd", models.ClientStatusActive)
	svc := env.addService("s1", "c1", "Limited Company Package", models.ServiceStatusActive)

	result, err := env.engine.EnsureComplianceForService(ctx, client, svc)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if result.Generated != 3 {
		t.Fatalf("expected 3 items for the package, got %+v", result)
	}

	again, err := env.engine.EnsureComplianceForService(ctx, client, svc)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if again.Generated != 0 || again.Skipped != 3 {
		t.Fatalf("second ensure must skip, got %+v", again)
	}
}

func TestEnsureComplianceForService_InactiveIsNoop(t *testing.T) {
	env := newTestEnv()
	client := env.addClient("c1", "Acme Ltd", models.ClientStatusArchived)
	svc := env.addService("s1", "c1", "VAT Returns", models.ServiceStatusActive)

	result, err := env.engine.EnsureComplianceForService(context.Background(), client, svc)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if result.ServicesScanned != 0 || result.Generated != 0 {
		t.Fatalf("archived client must be a no-op, got %+v", result)
	}
}

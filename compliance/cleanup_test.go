package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/mmdatafocus/practice_backend/models"
)

func TestCleanupInvalidClients_RemovesGhosts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addClient("c1", "Acme Ltd", models.ClientStatusActive)
	env.putItem(models.ComplianceItem{ID: "kept", ClientId: "c1", Type: "T"})
	env.putItem(models.ComplianceItem{ID: "orphan", ClientId: "ghost", Type: "T"})

	result, err := env.engine.CleanupInvalidClients(ctx)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if result.TotalItems != 2 || result.InvalidItems != 1 || result.RemovedItems != 1 {
		t.Fatalf("unexpected counters: %+v", result)
	}

	if _, err := env.engine.GetComplianceItem(ctx, "orphan"); !isNotFound(err) {
		t.Fatalf("orphan must be removed, got %v", err)
	}
	if _, err := env.engine.GetComplianceItem(ctx, "kept"); err != nil {
		t.Fatalf("valid item must survive: %v", err)
	}
}

func TestCleanupInvalidClients_CleanRegisterIsNoop(t *testing.T) {
	env := newTestEnv()
	env.addClient("c1", "Acme Ltd", models.ClientStatusActive)
	env.putItem(models.ComplianceItem{ID: "a", ClientId: "c1", Type: "T"})

	result, err := env.engine.CleanupInvalidClients(context.Background())
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if result.RemovedItems != 0 || result.InvalidItems != 0 {
		t.Fatalf("expected no-op, got %+v", result)
	}
}

func TestCleanupDuplicates_KeepsNewest(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.putItem(models.ComplianceItem{
		ID: "older", ClientId: "C1", ServiceId: "S1",
		Type: models.ComplianceTypeAnnualAccounts, CreatedAt: env.now.Add(-48 * time.Hour),
	})
	env.putItem(models.ComplianceItem{
		ID: "newer", ClientId: "C1", ServiceId: "S1",
		Type: models.ComplianceTypeAnnualAccounts, CreatedAt: env.now.Add(-time.Hour),
	})

	result, err := env.engine.CleanupDuplicates(ctx)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if result.RemovedItems != 1 {
		t.Fatalf("expected 1 removed, got %+v", result)
	}
	if _, err := env.engine.GetComplianceItem(ctx, "older"); !isNotFound(err) {
		t.Fatalf("older duplicate must be deleted, got %v", err)
	}
	if _, err := env.engine.GetComplianceItem(ctx, "newer"); err != nil {
		t.Fatalf("newest duplicate must survive: %v", err)
	}
}

func TestCleanupDuplicates_GroupsManualItemsTogether(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	// Two manual items (no service id) for the same client and type are
	// duplicates of each other.
	env.putItem(models.ComplianceItem{ID: "m1", ClientId: "c1", Type: "T", CreatedAt: env.now.Add(-2 * time.Hour)})
	env.putItem(models.ComplianceItem{ID: "m2", ClientId: "c1", Type: "T", CreatedAt: env.now.Add(-time.Hour)})
	// A service-derived item of the same type is a different group.
	env.putItem(models.ComplianceItem{ID: "svc", ClientId: "c1", ServiceId: "s1", Type: "T", CreatedAt: env.now.Add(-3 * time.Hour)})

	result, err := env.engine.CleanupDuplicates(ctx)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if result.RemovedItems != 1 {
		t.Fatalf("expected only the older manual item removed, got %+v", result)
	}
	if _, err := env.engine.GetComplianceItem(ctx, "svc"); err != nil {
		t.Fatalf("service-derived item must survive: %v", err)
	}
	if _, err := env.engine.GetComplianceItem(ctx, "m2"); err != nil {
		t.Fatalf("newer manual item must survive: %v", err)
	}
}

func TestCleanupDuplicates_DistinctTriplesUntouched(t *testing.T) {
	env := newTestEnv()
	env.putItem(models.ComplianceItem{ID: "a", ClientId: "c1", ServiceId: "s1", Type: "A"})
	env.putItem(models.ComplianceItem{ID: "b", ClientId: "c1", ServiceId: "s1", Type: "B"})
	env.putItem(models.ComplianceItem{ID: "c", ClientId: "c2", ServiceId: "s1", Type: "A"})

	result, err := env.engine.CleanupDuplicates(context.Background())
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if result.RemovedItems != 0 {
		t.Fatalf("distinct triples are not duplicates, got %+v", result)
	}
}

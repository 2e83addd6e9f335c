package compliance

import (
	"context"
	"testing"

	"github.com/mmdatafocus/practice_backend/models"
)

func TestEscalateOverdueCompliance_PendingItemGetsUrgentTask(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.putItem(models.ComplianceItem{
		ID: "i1", ClientId: "c1", Type: models.ComplianceTypeVATReturn,
		Source: models.ComplianceSourceHMRC, DueDate: env.daysFromNow(-1),
	})

	result, err := env.engine.EscalateOverdueCompliance(ctx)
	if err != nil {
		t.Fatalf("escalate: %v", err)
	}
	if result.Escalated != 1 || result.TasksCreated != 1 {
		t.Fatalf("expected 1 escalated / 1 task created, got %+v", result)
	}

	item, err := env.engine.GetComplianceItem(ctx, "i1")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if item.Status != models.ComplianceStatusOverdue {
		t.Fatalf("expected OVERDUE, got %s", item.Status)
	}

	tasks, err := env.engine.FindTasksForComplianceItem(ctx, "i1")
	if err != nil {
		t.Fatalf("find tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected exactly one correlated task, got %d", len(tasks))
	}
	if tasks[0].Priority != models.TaskPriorityUrgent {
		t.Fatalf("expected URGENT, got %s", tasks[0].Priority)
	}
}

func TestEscalateOverdueCompliance_BumpsOpenTasks(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.putItem(models.ComplianceItem{
		ID: "i1", ClientId: "c1", Type: "T",
		DueDate: env.daysFromNow(-3), Status: models.ComplianceStatusOverdue,
	})
	env.engine.Tasks.Put(ctx, &models.Task{
		ID: "open", Title: "File it", Status: models.TaskStatusOpen,
		Priority: models.TaskPriorityMedium, ComplianceItemId: "i1",
	})
	env.engine.Tasks.Put(ctx, &models.Task{
		ID: "done", Title: "Old task", Status: models.TaskStatusDone,
		Priority: models.TaskPriorityLow, ComplianceItemId: "i1",
	})

	result, err := env.engine.EscalateOverdueCompliance(ctx)
	if err != nil {
		t.Fatalf("escalate: %v", err)
	}
	if result.Escalated != 0 {
		t.Fatalf("already OVERDUE, expected 0 newly escalated, got %d", result.Escalated)
	}
	if result.TasksCreated != 0 || result.TasksEscalated != 1 {
		t.Fatalf("expected only the open task bumped, got %+v", result)
	}

	open, _ := env.engine.Tasks.Get(ctx, "open")
	if open.Priority != models.TaskPriorityUrgent {
		t.Fatalf("open task not bumped: %s", open.Priority)
	}
	done, _ := env.engine.Tasks.Get(ctx, "done")
	if done.Priority != models.TaskPriorityLow {
		t.Fatalf("closed task must stay untouched: %s", done.Priority)
	}
}

func TestEscalateOverdueCompliance_IdempotentAcrossRuns(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.putItem(models.ComplianceItem{ID: "i1", ClientId: "c1", Type: "T", DueDate: env.daysFromNow(-1)})

	if _, err := env.engine.EscalateOverdueCompliance(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := env.engine.EscalateOverdueCompliance(ctx)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Escalated != 0 || second.TasksCreated != 0 || second.TasksEscalated != 0 {
		t.Fatalf("second run must be a no-op, got %+v", second)
	}

	tasks, _ := env.engine.FindTasksForComplianceItem(ctx, "i1")
	if len(tasks) != 1 {
		t.Fatalf("expected a single task after two runs, got %d", len(tasks))
	}
}

func TestEscalateOverdueCompliance_IgnoresFutureAndFiled(t *testing.T) {
	env := newTestEnv()
	env.putItem(models.ComplianceItem{ID: "future", ClientId: "c1", Type: "T", DueDate: env.daysFromNow(5)})
	env.putItem(models.ComplianceItem{ID: "filed", ClientId: "c1", Type: "T", DueDate: env.daysFromNow(-5), Status: models.ComplianceStatusFiled})

	result, err := env.engine.EscalateOverdueCompliance(context.Background())
	if err != nil {
		t.Fatalf("escalate: %v", err)
	}
	if result.Escalated != 0 || result.TasksCreated != 0 {
		t.Fatalf("nothing qualifies, got %+v", result)
	}
}

package compliance

import (
	"context"
	"testing"

	"github.com/mmdatafocus/practice_backend/models"
)

func TestPriorityForCompliance_LiteralMapping(t *testing.T) {
	env := newTestEnv()
	cases := []struct {
		name     string
		status   models.ComplianceStatus
		daysOut  *int
		expected models.TaskPriority
	}{
		{"overdue status", models.ComplianceStatusOverdue, intPtr(90), models.TaskPriorityUrgent},
		{"due today", models.ComplianceStatusPending, intPtr(0), models.TaskPriorityUrgent},
		{"3 days out", models.ComplianceStatusPending, intPtr(3), models.TaskPriorityHigh},
		{"20 days out", models.ComplianceStatusPending, intPtr(20), models.TaskPriorityMedium},
		{"90 days out", models.ComplianceStatusPending, intPtr(90), models.TaskPriorityLow},
		{"no due date", models.ComplianceStatusPending, nil, models.TaskPriorityLow},
	}
	for _, tc := range cases {
		var got models.TaskPriority
		if tc.daysOut == nil {
			got = PriorityForCompliance(tc.status, nil, env.now)
		} else {
			got = PriorityForCompliance(tc.status, env.daysFromNow(*tc.daysOut), env.now)
		}
		if got != tc.expected {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestCreateTaskFromComplianceItem(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	item := env.putItem(models.ComplianceItem{
		ID:          "i1",
		ClientId:    "c1",
		Type:        models.ComplianceTypeVATReturn,
		Description: "Acme Ltd - VAT return",
		Source:      models.ComplianceSourceHMRC,
		DueDate:     env.daysFromNow(5),
	})

	task, err := env.engine.CreateTaskFromComplianceItem(ctx, item.ID, "u7")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.ComplianceItemId != "i1" {
		t.Fatalf("expected structured correlation id, got %q", task.ComplianceItemId)
	}
	if !task.Tags.Contains("compliance:i1") {
		t.Fatalf("expected legacy correlation tag, got %v", task.Tags)
	}
	if !task.Tags.Contains("type:vat_return") || !task.Tags.Contains("source:hmrc") {
		t.Fatalf("expected normalized type/source tags, got %v", task.Tags)
	}
	if task.Priority != models.TaskPriorityHigh {
		t.Fatalf("5 days out must be HIGH, got %s", task.Priority)
	}
	if task.DueDate == nil || !task.DueDate.Equal(*item.DueDate) {
		t.Fatalf("task due date must mirror the item's")
	}
	if task.AssigneeId != "u7" {
		t.Fatalf("expected assignee u7, got %q", task.AssigneeId)
	}
}

func TestCreateTaskFromComplianceItem_UnknownItem(t *testing.T) {
	env := newTestEnv()
	if _, err := env.engine.CreateTaskFromComplianceItem(context.Background(), "missing", ""); !isNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestFindTasksForComplianceItem_StructuredColumn(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.engine.Tasks.Put(ctx, &models.Task{ID: "t1", Title: "File VAT", ComplianceItemId: "i1"})
	env.engine.Tasks.Put(ctx, &models.Task{ID: "t2", Title: "Other work"})

	tasks, err := env.engine.FindTasksForComplianceItem(ctx, "i1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Fatalf("expected only t1, got %d tasks", len(tasks))
	}
}

func TestFindTasksForComplianceItem_LegacyFallback(t *testing.T) {
	t.Setenv("LEGACY_TASK_MATCH", "true")
	env := newTestEnv()
	ctx := context.Background()
	env.engine.Tasks.Put(ctx, &models.Task{ID: "tagged", Title: "File VAT", Tags: models.StringList{"compliance:i1"}})
	env.engine.Tasks.Put(ctx, &models.Task{ID: "texty", Title: "Chase item i1 with client"})
	env.engine.Tasks.Put(ctx, &models.Task{ID: "unrelated", Title: "Other work"})

	tasks, err := env.engine.FindTasksForComplianceItem(ctx, "i1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected tagged + text matches, got %d tasks", len(tasks))
	}
}

func TestFindTasksForComplianceItem_LegacyDisabledIgnoresTags(t *testing.T) {
	t.Setenv("LEGACY_TASK_MATCH", "false")
	env := newTestEnv()
	ctx := context.Background()
	env.engine.Tasks.Put(ctx, &models.Task{ID: "tagged", Title: "File VAT", Tags: models.StringList{"compliance:i1"}})

	tasks, err := env.engine.FindTasksForComplianceItem(ctx, "i1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("legacy match disabled, expected no tasks, got %d", len(tasks))
	}
}

func TestCreateTasksForOverdueCompliance_Idempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.putItem(models.ComplianceItem{ID: "i1", ClientId: "c1", Type: "T", DueDate: env.daysFromNow(-1)})

	first, err := env.engine.CreateTasksForOverdueCompliance(ctx)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if first.TasksCreated != 1 {
		t.Fatalf("expected 1 task created, got %+v", first)
	}

	second, err := env.engine.CreateTasksForOverdueCompliance(ctx)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if second.TasksCreated != 0 || second.Skipped != 1 {
		t.Fatalf("second pass must skip, got %+v", second)
	}
}

func TestCreateTasksForUpcomingCompliance_WindowBound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.putItem(models.ComplianceItem{ID: "in", ClientId: "c1", Type: "T", DueDate: env.daysFromNow(10)})
	env.putItem(models.ComplianceItem{ID: "out", ClientId: "c1", Type: "T", DueDate: env.daysFromNow(45)})

	result, err := env.engine.CreateTasksForUpcomingCompliance(ctx, 30)
	if err != nil {
		t.Fatalf("upcoming pass: %v", err)
	}
	if result.ItemsScanned != 1 || result.TasksCreated != 1 {
		t.Fatalf("expected 1 item in the window, got %+v", result)
	}
}

func intPtr(v int) *int { return &v }

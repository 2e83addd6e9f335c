package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/mmdatafocus/practice_backend/models"
)

func newTestScheduler(env *testEnv) *Scheduler {
	return NewScheduler(env.engine, env.engine.Logger, nil)
}

func TestSchedulerRun_FiresDailyPassAtStartup(t *testing.T) {
	env := newTestEnv()
	env.putItem(models.ComplianceItem{
		ID: "due-soon", ClientId: "c1", Type: models.ComplianceTypeVATReturn,
		DueDate: env.daysFromNow(5),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	newTestScheduler(env).Run(ctx)

	tasks, err := env.engine.FindTasksForComplianceItem(context.Background(), "due-soon")
	if err != nil {
		t.Fatalf("find tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected the startup pass to create one task, got %d", len(tasks))
	}
}

func TestSchedulerHourly_SkipsOutsideBusinessHours(t *testing.T) {
	env := newTestEnv()
	env.engine.Now = func() time.Time {
		return time.Date(2026, time.March, 10, 6, 0, 0, 0, time.UTC)
	}
	env.putItem(models.ComplianceItem{
		ID: "late", ClientId: "c1", Type: "T", DueDate: env.daysFromNow(-1),
	})

	newTestScheduler(env).runHourly(context.Background())

	item, err := env.engine.GetComplianceItem(context.Background(), "late")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if item.Status != models.ComplianceStatusPending {
		t.Fatalf("expected no escalation at 06:00, got %s", item.Status)
	}
	tasks, err := env.engine.FindTasksForComplianceItem(context.Background(), "late")
	if err != nil {
		t.Fatalf("find tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks outside business hours, got %d", len(tasks))
	}
}

func TestSchedulerHourly_EscalatesDuringBusinessHours(t *testing.T) {
	env := newTestEnv() // frozen clock is 12:00
	env.putItem(models.ComplianceItem{
		ID: "late", ClientId: "c1", Type: "T", DueDate: env.daysFromNow(-1),
	})

	newTestScheduler(env).runHourly(context.Background())

	item, err := env.engine.GetComplianceItem(context.Background(), "late")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if item.Status != models.ComplianceStatusOverdue {
		t.Fatalf("expected OVERDUE after the hourly pass, got %s", item.Status)
	}
	tasks, err := env.engine.FindTasksForComplianceItem(context.Background(), "late")
	if err != nil {
		t.Fatalf("find tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Priority != models.TaskPriorityUrgent {
		t.Fatalf("expected one URGENT task, got %+v", tasks)
	}
}

func TestSchedulerTryLock_RunsWithoutRedis(t *testing.T) {
	s := newTestScheduler(newTestEnv())
	if !s.tryLock(context.Background(), "compliance:scheduler:daily") {
		t.Fatalf("expected tryLock to allow the tick when no locker is configured")
	}
}

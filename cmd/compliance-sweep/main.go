// compliance-sweep runs the compliance maintenance passes from the command
// line: reconciliation from services, overdue escalation, and the cleanup
// jobs. Useful as a cron job where the in-process scheduler is disabled, and
// for one-off repairs.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//     go run ./cmd/compliance-sweep --reconcile --escalate
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mmdatafocus/practice_backend/compliance"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/models"
	"github.com/mmdatafocus/practice_backend/storage"
)

func main() {
	reconcile := flag.Bool("reconcile", false, "derive compliance items from active services")
	escalate := flag.Bool("escalate", false, "transition overdue items and create/escalate tasks")
	cleanupClients := flag.Bool("cleanup-invalid-clients", false, "remove items referencing unknown clients")
	cleanupDuplicates := flag.Bool("cleanup-duplicates", false, "remove duplicate items, keeping the newest")
	dryRun := flag.Bool("dry-run", false, "run against an in-memory copy and report what would change")
	flag.Parse()

	if !*reconcile && !*escalate && !*cleanupClients && !*cleanupDuplicates {
		fmt.Fprintln(os.Stderr, "nothing to do: pass at least one of --reconcile --escalate --cleanup-invalid-clients --cleanup-duplicates")
		os.Exit(1)
	}

	ctx := context.Background()
	logger := config.GetLogger()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	engine := compliance.NewEngine(
		storage.NewGormStore[models.ComplianceItem](db, logger),
		storage.NewGormStore[models.Task](db, logger),
		models.GormClientDirectory{},
		models.GormServiceDirectory{},
		logger,
	)

	if *dryRun {
		var err error
		engine, err = copyToMemory(ctx, engine)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to snapshot data for dry run: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("dry run: no changes will be written")
	}

	exitCode := 0
	if *reconcile {
		result, err := engine.ReconcileFromServices(ctx)
		exitCode = report("reconcile", result, err, exitCode)
	}
	if *escalate {
		result, err := engine.EscalateOverdueCompliance(ctx)
		exitCode = report("escalate", result, err, exitCode)
	}
	if *cleanupClients {
		result, err := engine.CleanupInvalidClients(ctx)
		exitCode = report("cleanup-invalid-clients", result, err, exitCode)
	}
	if *cleanupDuplicates {
		result, err := engine.CleanupDuplicates(ctx)
		exitCode = report("cleanup-duplicates", result, err, exitCode)
	}
	os.Exit(exitCode)
}

// copyToMemory snapshots items and tasks into in-memory stores so a dry run
// exercises the real passes without writing back. Directories stay live;
// they are read-only to the engine.
func copyToMemory(ctx context.Context, live *compliance.Engine) (*compliance.Engine, error) {
	items := storage.NewMemStore[models.ComplianceItem]()
	tasks := storage.NewMemStore[models.Task]()
	items.Logger = live.Logger
	tasks.Logger = live.Logger

	liveItems, err := live.Items.Scan(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, item := range liveItems {
		if err := items.Put(ctx, item); err != nil {
			return nil, err
		}
	}

	liveTasks, err := live.Tasks.Scan(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, task := range liveTasks {
		if err := tasks.Put(ctx, task); err != nil {
			return nil, err
		}
	}

	return compliance.NewEngine(items, tasks, live.Clients, live.Services, live.Logger), nil
}

func report(pass string, result interface{}, err error, exitCode int) int {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", pass, err)
		return 1
	}
	out, _ := json.Marshal(result)
	fmt.Printf("%s: %s\n", pass, out)
	return exitCode
}

// Package compliance implements the deadline and task orchestration engine:
// it derives filing obligations from a client's active services, tracks each
// obligation through its lifecycle, keeps staff tasks in sync with obligation
// urgency, and repairs referential/uniqueness invariants after the fact.
//
// The engine talks to storage and the client/service directories through
// narrow interfaces so its semantics are testable without a database.
package compliance

import (
	"context"
	"time"

	"github.com/mmdatafocus/practice_backend/models"
	"github.com/mmdatafocus/practice_backend/storage"
	"github.com/sirupsen/logrus"
)

type ClientDirectory interface {
	Resolve(ctx context.Context, clientId string) (*models.Client, error)
	ListActiveByPortfolio(ctx context.Context, code string) ([]*models.Client, error)
	ListIds(ctx context.Context) ([]string, error)
}

type ServiceDirectory interface {
	ListAll(ctx context.Context) ([]*models.Service, error)
}

type Engine struct {
	Items    storage.Store[models.ComplianceItem]
	Tasks    storage.Store[models.Task]
	Clients  ClientDirectory
	Services ServiceDirectory
	Logger   *logrus.Logger

	// Now is the clock; tests override it.
	Now func() time.Time
}

func NewEngine(
	items storage.Store[models.ComplianceItem],
	tasks storage.Store[models.Task],
	clients ClientDirectory,
	services ServiceDirectory,
	logger *logrus.Logger,
) *Engine {
	return &Engine{
		Items:    items,
		Tasks:    tasks,
		Clients:  clients,
		Services: services,
		Logger:   logger,
		Now:      time.Now,
	}
}

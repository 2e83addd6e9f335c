package compliance

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/practice_backend/models"
	"github.com/mmdatafocus/practice_backend/storage"
	"github.com/mmdatafocus/practice_backend/utils"
	"github.com/sirupsen/logrus"
)

type fakeClientDirectory struct {
	clients map[string]*models.Client
}

func (d *fakeClientDirectory) Resolve(ctx context.Context, clientId string) (*models.Client, error) {
	c, ok := d.clients[clientId]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return c, nil
}

func (d *fakeClientDirectory) ListActiveByPortfolio(ctx context.Context, code string) ([]*models.Client, error) {
	var out []*models.Client
	for _, c := range d.clients {
		if c.Status == models.ClientStatusActive && c.PortfolioCode == code {
			out = append(out, c)
		}
	}
	return out, nil
}

func (d *fakeClientDirectory) ListIds(ctx context.Context) ([]string, error) {
	var ids []string
	for id := range d.clients {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeServiceDirectory struct {
	services []*models.Service
}

func (d *fakeServiceDirectory) ListAll(ctx context.Context) ([]*models.Service, error) {
	return d.services, nil
}

// testEnv is the DB-free harness: in-memory stores, fake directories and a
// frozen clock.
type testEnv struct {
	engine   *Engine
	clients  *fakeClientDirectory
	services *fakeServiceDirectory
	now      time.Time
}

func newTestEnv() *testEnv {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	clients := &fakeClientDirectory{clients: make(map[string]*models.Client)}
	services := &fakeServiceDirectory{}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	engine := NewEngine(
		storage.NewMemStore[models.ComplianceItem](),
		storage.NewMemStore[models.Task](),
		clients, services, logger,
	)
	engine.Now = func() time.Time { return now }
	return &testEnv{engine: engine, clients: clients, services: services, now: now}
}

func (env *testEnv) addClient(id, name string, status models.ClientStatus) *models.Client {
	c := &models.Client{ID: id, Name: name, Status: status, RegistrationRef: "REG-" + id}
	env.clients.clients[id] = c
	return c
}

func (env *testEnv) addService(id, clientId, kind string, status models.ServiceStatus) *models.Service {
	s := &models.Service{ID: id, ClientId: clientId, Kind: kind, Status: status}
	env.services.services = append(env.services.services, s)
	return s
}

func (env *testEnv) putItem(item models.ComplianceItem) *models.ComplianceItem {
	if item.Status == "" {
		item.Status = models.ComplianceStatusPending
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = env.now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = env.now
	}
	if err := env.engine.Items.Put(context.Background(), &item); err != nil {
		panic(err)
	}
	return &item
}

func (env *testEnv) daysFromNow(days int) *time.Time {
	t := env.now.AddDate(0, 0, days)
	return &t
}

func isNotFound(err error) bool {
	return errors.Is(err, utils.ErrorRecordNotFound)
}

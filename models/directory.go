package models

import (
	"context"

	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/utils"
)

// ClientDirectory and ServiceDirectory are the narrow read surfaces the
// compliance engine consumes. Backing them with GORM here keeps the engine
// free of database imports, so its semantics can be tested with fakes.

type GormClientDirectory struct{}

// Resolve returns the client, preferring the redis cache. The cache is
// best-effort; a redis failure falls through to the database.
func (GormClientDirectory) Resolve(ctx context.Context, clientId string) (*Client, error) {
	if cached, err := utils.RetrieveRedis[Client](clientId); err == nil && cached != nil {
		return cached, nil
	}

	client, err := GetClient(ctx, clientId)
	if err != nil {
		return nil, err
	}
	_ = utils.StoreRedis[Client](client, clientId)
	return client, nil
}

// ListActiveByPortfolio caches per-portfolio lists under
// ClientList:$portfolioCode; client mutations invalidate the scope (see
// Client.RemoveInstanceRedis). The unscoped list is never cached because no
// mutation could invalidate it.
func (GormClientDirectory) ListActiveByPortfolio(ctx context.Context, code string) ([]*Client, error) {
	if code != "" {
		if cached, err := utils.RetrieveRedisList[Client](code); err == nil && cached != nil {
			return cached, nil
		}
	}

	db := config.GetDB()
	var results []*Client
	dbCtx := db.WithContext(ctx).Where("status = ?", ClientStatusActive)
	if code != "" {
		dbCtx = dbCtx.Where("portfolio_code = ?", code)
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	if code != "" {
		_ = utils.StoreRedisList[Client](results, code)
	}
	return results, nil
}

func (GormClientDirectory) ListIds(ctx context.Context) ([]string, error) {
	db := config.GetDB()
	var ids []string
	if err := db.WithContext(ctx).Model(&Client{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

type GormServiceDirectory struct{}

func (GormServiceDirectory) ListAll(ctx context.Context) ([]*Service, error) {
	db := config.GetDB()
	var results []*Service
	if err := db.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

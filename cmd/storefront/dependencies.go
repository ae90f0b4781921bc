package main

import (
	"context"
	"io"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	cartmodel "storefront/pkg/cart/domain/model"
	cartservice "storefront/pkg/cart/domain/service"
	"storefront/pkg/cart/infrastructure/repository"
	"storefront/pkg/catalog/infrastructure/client"
	"storefront/pkg/common/infrastructure/event"
	"storefront/pkg/storefront/application/service"
)

type dependencies struct {
	cart       cartservice.CartService
	storefront service.StorefrontService
	closers    []io.Closer
}

func (d *dependencies) Close() {
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			log.WithError(err).Error("failed to close dependency")
		}
	}
}

// newDependencies builds the single cart owned by this process and restores
// it from the configured snapshot store.
func newDependencies(ctx context.Context, c *config) (*dependencies, error) {
	deps := &dependencies{}

	repo, err := newSnapshotRepository(c, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}

	catalog, err := client.New(c.CatalogBaseURL,
		client.WithTimeout(c.CatalogTimeout),
		client.WithRateLimit(c.CatalogRPS, c.CatalogBurst),
	)
	if err != nil {
		deps.Close()
		return nil, err
	}

	dispatcher := event.NewDispatcher(log.WithField("component", "events"))
	deps.cart = cartservice.NewCartService(repo, dispatcher, c.SnapshotName)
	if err := deps.cart.Restore(ctx); err != nil {
		log.WithError(err).WithField("snapshot", c.SnapshotName).Error("failed to restore cart, starting empty")
	}
	deps.storefront = service.NewStorefrontService(catalog, deps.cart)

	return deps, nil
}

func newSnapshotRepository(c *config, deps *dependencies) (cartmodel.SnapshotRepository, error) {
	switch c.SnapshotDriver {
	case snapshotDriverMySQL:
		db, err := sqlx.Open("mysql", c.MySQLDSN)
		if err != nil {
			return nil, errors.Wrap(err, "open mysql")
		}
		deps.closers = append(deps.closers, db)
		return repository.NewMySQLRepository(db), nil
	case snapshotDriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddress,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		deps.closers = append(deps.closers, rdb)
		return repository.NewRedisRepository(rdb,
			repository.WithKeyPrefix(c.RedisPrefix),
			repository.WithTTL(c.RedisTTL),
		), nil
	default:
		return repository.NewFileRepository(c.SnapshotDir), nil
	}
}

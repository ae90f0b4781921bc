package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const appID = "storefront"

const (
	snapshotDriverFile  = "file"
	snapshotDriverMySQL = "mysql"
	snapshotDriverRedis = "redis"
)

type config struct {
	ServeHTTPAddress string `envconfig:"serve_http_address" default:":8080"`
	ServeGRPCAddress string `envconfig:"serve_grpc_address" default:":8081"`
	LogLevel         string `envconfig:"log_level" default:"info"`

	CatalogBaseURL string        `envconfig:"catalog_base_url" default:"http://localhost:5000"`
	CatalogTimeout time.Duration `envconfig:"catalog_timeout" default:"5s"`
	CatalogRPS     float64       `envconfig:"catalog_rps" default:"20"`
	CatalogBurst   int           `envconfig:"catalog_burst" default:"10"`

	SnapshotName   string `envconfig:"snapshot_name" default:"ecommerce-store"`
	SnapshotDriver string `envconfig:"snapshot_driver" default:"file"`
	SnapshotDir    string `envconfig:"snapshot_dir" default:"./data"`

	MySQLDSN string `envconfig:"mysql_dsn"`

	RedisAddress  string        `envconfig:"redis_address" default:"localhost:6379"`
	RedisPassword string        `envconfig:"redis_password"`
	RedisDB       int           `envconfig:"redis_db" default:"0"`
	RedisTTL      time.Duration `envconfig:"redis_ttl" default:"0s"`
	RedisPrefix   string        `envconfig:"redis_prefix" default:"storefront:cart"`
}

func parseEnv() (*config, error) {
	c := new(config)
	if err := envconfig.Process(appID, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse env")
	}

	switch c.SnapshotDriver {
	case snapshotDriverFile, snapshotDriverRedis:
	case snapshotDriverMySQL:
		if c.MySQLDSN == "" {
			return nil, errors.New("STOREFRONT_MYSQL_DSN is required for the mysql snapshot driver")
		}
	default:
		return nil, errors.Errorf("unknown snapshot driver %q", c.SnapshotDriver)
	}
	return c, nil
}

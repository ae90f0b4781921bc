package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmodel "storefront/pkg/cart/domain/model"
	"storefront/pkg/storefront/application/service"
)

func TestParseEnvDefaults(t *testing.T) {
	c, err := parseEnv()

	require.NoError(t, err)
	assert.Equal(t, ":8080", c.ServeHTTPAddress)
	assert.Equal(t, snapshotDriverFile, c.SnapshotDriver)
	assert.Equal(t, cartmodel.DefaultSnapshotName, c.SnapshotName)
	assert.Equal(t, 5*time.Second, c.CatalogTimeout)
	assert.Equal(t, "storefront:cart", c.RedisPrefix)
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_SNAPSHOT_DRIVER", "redis")
	t.Setenv("STOREFRONT_REDIS_TTL", "24h")
	t.Setenv("STOREFRONT_CATALOG_RPS", "2.5")
	t.Setenv("STOREFRONT_REDIS_PREFIX", "kiosk:cart")

	c, err := parseEnv()

	require.NoError(t, err)
	assert.Equal(t, snapshotDriverRedis, c.SnapshotDriver)
	assert.Equal(t, 24*time.Hour, c.RedisTTL)
	assert.Equal(t, 2.5, c.CatalogRPS)
	assert.Equal(t, "kiosk:cart", c.RedisPrefix)
}

func TestParseEnvValidation(t *testing.T) {
	t.Run("MySQL without DSN", func(t *testing.T) {
		t.Setenv("STOREFRONT_SNAPSHOT_DRIVER", "mysql")
		_, err := parseEnv()
		assert.Error(t, err)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		t.Setenv("STOREFRONT_SNAPSHOT_DRIVER", "etcd")
		_, err := parseEnv()
		assert.Error(t, err)
	})
}

func TestPrintCart(t *testing.T) {
	items := []cartmodel.LineItem{
		{ProductID: "1", Name: "Mug", Price: decimal.RequireFromString("10.00"), Size: cartmodel.DefaultSize, Color: cartmodel.DefaultColor, Quantity: 1},
	}
	view := service.CartView{Items: items, ItemCount: 1, Totals: cartmodel.DeriveTotals(items)}

	var buf bytes.Buffer
	require.NoError(t, printCart(&buf, view))

	var summary cartSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summary))
	assert.Equal(t, 1, summary.ItemCount)
	assert.Equal(t, "20.79", summary.Total)
	assert.Equal(t, "0.80", summary.Tax)
}

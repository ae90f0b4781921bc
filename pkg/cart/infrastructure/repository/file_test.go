package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/cart/domain/model"
)

func TestFileRepository(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "carts")
	repo := NewFileRepository(dir)

	t.Run("Missing snapshot", func(t *testing.T) {
		_, err := repo.Load(ctx, model.DefaultSnapshotName)
		assert.ErrorIs(t, err, model.ErrSnapshotNotFound)
	})

	snapshot := model.Snapshot{
		Items: []model.LineItem{
			{
				ProductID: "12",
				Name:      "Running Shoes",
				Price:     decimal.RequireFromString("89.90"),
				Size:      "42",
				Color:     "Black",
				Quantity:  2,
				Brand:     "Stride",
			},
		},
		ItemCount: 2,
	}

	t.Run("Save and load", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, model.DefaultSnapshotName, snapshot))

		loaded, err := repo.Load(ctx, model.DefaultSnapshotName)

		require.NoError(t, err)
		assert.Equal(t, snapshot.ItemCount, loaded.ItemCount)
		require.Len(t, loaded.Items, 1)
		assert.Equal(t, "Running Shoes", loaded.Items[0].Name)
		assert.True(t, loaded.Items[0].Price.Equal(snapshot.Items[0].Price))

		_, err = os.Stat(filepath.Join(dir, "ecommerce-store.json"))
		assert.NoError(t, err)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, model.DefaultSnapshotName, model.Snapshot{}))

		loaded, err := repo.Load(ctx, model.DefaultSnapshotName)

		require.NoError(t, err)
		assert.Equal(t, 0, loaded.ItemCount)
		assert.NotNil(t, loaded.Items)
		assert.Empty(t, loaded.Items)

		data, err := os.ReadFile(filepath.Join(dir, "ecommerce-store.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"items": []`)
	})

	t.Run("Sanitizes names", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "../outside/cart", snapshot))

		_, err := os.Stat(filepath.Join(dir, ".._outside_cart.json"))
		assert.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".snapshot-")
		}
	})

	t.Run("Fail on corrupt file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

		_, err := repo.Load(ctx, "broken")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrSnapshotNotFound)
	})
}

package repository

import (
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrations, "migrations")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	up, _, err := src.ReadUp(version)
	require.NoError(t, err)
	defer up.Close()
	ddl, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Contains(t, string(ddl), "CREATE TABLE IF NOT EXISTS cart_snapshot")

	down, _, err := src.ReadDown(version)
	require.NoError(t, err)
	down.Close()
}

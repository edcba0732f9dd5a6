package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zai-proxy/internal/database"
)

func TestInitDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "usage.db")

	db, err := database.InitDB(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='usage_records'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "usage_records", name)

	// Running migrations again is a no-op.
	assert.NoError(t, database.Migrate(db))
}

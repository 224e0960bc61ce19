package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUpIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickets.db")

	require.NoError(t, MigrateUp(path))
	// Second run with no pending migrations is a no-op.
	require.NoError(t, MigrateUp(path))

	db, err := Open(path)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("tickets"))
	assert.True(t, db.Migrator().HasColumn("tickets", "ticket_id"))
}

func TestOpenCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")

	require.NoError(t, MigrateUp(path))
	db, err := Open(path)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("tickets").Count(&count).Error)
	assert.Zero(t, count)
}

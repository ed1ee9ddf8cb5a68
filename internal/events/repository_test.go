package events

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestLockEventOnPostgres(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=gallery dbname=gallery sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	var statements []string
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		statements = append(statements, tx.Statement.SQL.String())
	}))

	require.NoError(t, lockEvent(db, uuid.New()))
	require.Len(t, statements, 1)
	assert.Contains(t, statements[0], `FROM "events"`)
	assert.Contains(t, statements[0], "FOR UPDATE")
}

func TestLockEventSkippedOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory"), &gorm.Config{})
	require.NoError(t, err)

	var queried bool
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("test:capture", func(*gorm.DB) {
		queried = true
	}))

	// no events table exists, so any query would fail
	assert.NoError(t, lockEvent(db, uuid.New()))
	assert.False(t, queried)
}

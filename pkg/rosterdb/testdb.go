package rosterdb

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type NullLogger struct{}

func (l *NullLogger) Printf(_ string, _ ...interface{}) {
}

// NewTestDB opens an in memory sqlite database unique to the test, runs the
// migrations on it, and returns the connection. The connection pool is
// limited to 1 connection to get around sqlite table lock issues from
// multiple threads.
func NewTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	gormLogger := logger.New(&NullLogger{},
		logger.Config{
			SlowThreshold:             time.Second * 5,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		})

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger, TranslateError: true})
	require.NoErrorf(t, err, "gorm.Open failed: %s", err)

	sqlitedb, err := db.DB()
	require.NoError(t, err)
	sqlitedb.SetMaxOpenConns(1)

	err = RunMigrations(db)
	require.NoErrorf(t, err, "Migration failed with: %s", err)

	return db
}

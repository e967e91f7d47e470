package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMock(t *testing.T) (*GormDatabase, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Discard, DisableAutomaticPing: true})
	require.NoError(t, err)

	return NewGormDatabase(gdb), mock
}

func TestGormDatabasePingAndClose(t *testing.T) {
	database, mock := openMock(t)

	mock.ExpectPing()
	require.NoError(t, database.Ping(context.Background()))

	mock.ExpectClose()
	require.NoError(t, database.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDatabasePingFailure(t *testing.T) {
	database, mock := openMock(t)

	mock.ExpectPing().WillReturnError(assert.AnError)
	assert.ErrorIs(t, database.Ping(context.Background()), assert.AnError)
}

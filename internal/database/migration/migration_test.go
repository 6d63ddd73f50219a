package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solidgo/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.New(logging.LevelInfo, logging.NewConsoleSink(&bytes.Buffer{}))
}

func TestEnsureMigrated_SchemaExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	assert.NoError(t, EnsureMigrated(context.Background(), db, testLogger()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_RunsAllSteps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_users_email").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_users_created_at").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, EnsureMigrated(context.Background(), db, testLogger()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_StepFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnError(errors.New("permission denied"))

	err = EnsureMigrated(context.Background(), db, testLogger())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "create_table_users")
}

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hudsor01/tenant-flow-sub002/internal/database"
	"github.com/hudsor01/tenant-flow-sub002/internal/seeds"
	"github.com/hudsor01/tenant-flow-sub002/internal/testutil"
)

func newRoot() *cobra.Command {
	root := VerifyCmd()
	root.AddCommand(TiersCmd(), HistoryCmd(), StampCmd(), InitCmd())
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// sqliteURL points DATABASE_URL at a fresh file database and returns its path.
func sqliteURL(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "seeds.db")
	t.Setenv("DATABASE_URL", "sqlite://"+path)
	return path
}

// mockPostgres routes openDB to a sqlmock-backed postgres connection.
func mockPostgres(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://app@localhost/tenantflow")

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	original := openDB
	openDB = func(string, bool) (*gorm.DB, error) {
		dialector := postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"})
		return gorm.Open(dialector, &gorm.Config{Logger: logger.Discard})
	}
	t.Cleanup(func() { openDB = original })
	return mock
}

func TestVerifyCmd(t *testing.T) {
	cmd := VerifyCmd()
	assert.Equal(t, "verify-seeds [tier]", cmd.Use)
	assert.Equal(t, "Verify TenantFlow seed data", cmd.Short)

	assert.NotNil(t, cmd.Flags().Lookup("strict"))
	assert.NotNil(t, cmd.Flags().Lookup("format"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("schema"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestSubcommands(t *testing.T) {
	assert.Equal(t, "tiers", TiersCmd().Use)
	assert.Equal(t, "history [tier]", HistoryCmd().Use)
	assert.Equal(t, "stamp <tier> <version>", StampCmd().Use)
	assert.Equal(t, "init", InitCmd().Use)
}

func TestUnknownTierFailsBeforeConnecting(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app@localhost/tenantflow")

	called := false
	original := openDB
	openDB = func(string, bool) (*gorm.DB, error) {
		called = true
		return nil, assert.AnError
	}
	t.Cleanup(func() { openDB = original })

	_, err := execute(t, "staging")
	require.ErrorIs(t, err, seeds.ErrUnknownTier)
	assert.False(t, called)
}

func TestMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("VERIFY_SEEDS_DATABASE_URL", "")

	out, err := execute(t, "smoke")
	require.ErrorIs(t, err, database.ErrMissingDatabaseURL)
	assert.Empty(t, out)
}

func TestVerifySmokeEndToEnd(t *testing.T) {
	path := sqliteURL(t)

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "seed_versions")

	db, err := database.Open(path, false)
	require.NoError(t, err)
	fixture := testutil.SeedSmoke(t, db)

	out, err = execute(t, "stamp", "smoke", "2025.01.0")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded seed version 2025.01.0 for tier smoke")

	out, err = execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Verifying smoke seed data")
	assert.Contains(t, out, "[PASS] Seed Version: 2025.01.0")
	assert.Contains(t, out, "ALL CHECKS PASSED")

	require.NoError(t, db.Exec("DELETE FROM units WHERE id = ?", fixture.Leases[0].UnitID).Error)
	require.NoError(t, database.Close(db))

	out, err = execute(t, "smoke")
	require.ErrorIs(t, err, ErrChecksFailed)
	assert.Contains(t, out, "Found 1 leases with invalid unit_id")
	assert.Contains(t, out, "SOME CHECKS FAILED")
}

func TestVerifyJSONAndStrict(t *testing.T) {
	path := sqliteURL(t)
	_, err := execute(t, "init")
	require.NoError(t, err)

	db, err := database.Open(path, false)
	require.NoError(t, err)
	testutil.SeedSmoke(t, db)
	require.NoError(t, database.Close(db))

	out, err := execute(t, "smoke", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"passed": true`)
	assert.NotContains(t, out, "Verifying")

	out, err = execute(t, "smoke", "--format", "json", "--debug")
	require.NoError(t, err)
	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &report), "debug SQL log stays off the report stream")
	assert.Equal(t, true, report["passed"])

	_, err = execute(t, "smoke", "--strict")
	require.ErrorIs(t, err, ErrChecksFailed, "missing seed version fails in strict mode")
}

func TestHistoryCmd(t *testing.T) {
	sqliteURL(t)
	_, err := execute(t, "init")
	require.NoError(t, err)

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No seed versions have been recorded yet.")

	_, err = execute(t, "stamp", "development", "2025.04.0")
	require.NoError(t, err)
	_, err = execute(t, "stamp", "performance", "2025.04.1")
	require.NoError(t, err)

	out, err = execute(t, "history", "development")
	require.NoError(t, err)
	assert.Contains(t, out, "2025.04.0")
	assert.NotContains(t, out, "2025.04.1")

	_, err = execute(t, "stamp", "qa", "x")
	assert.ErrorIs(t, err, seeds.ErrUnknownTier)
}

func TestTiersCmd(t *testing.T) {
	t.Setenv("VERIFY_SEEDS_TIERS_SMOKE_USERS", "7")

	out, err := execute(t, "tiers")
	require.NoError(t, err)
	assert.Contains(t, out, "Maintenance")
	assert.Regexp(t, `smoke\s+7\s+4\s+8\s+2\s+3`, out)
	assert.Regexp(t, `performance\s+500\s+200\s+1000\s+800\s+5000`, out)
}

func TestStampUsesSchema(t *testing.T) {
	mock := mockPostgres(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "tenantflow"."seed_versions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectClose()

	out, err := execute(t, "stamp", "smoke", "v1", "--schema", "tenantflow")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded seed version v1 for tier smoke")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryUsesSchema(t *testing.T) {
	mock := mockPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tenantflow"."seed_versions" WHERE tier = $1 ORDER BY applied_at DESC`)).
		WithArgs("development").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tier", "version", "applied_at"}))
	mock.ExpectClose()

	out, err := execute(t, "history", "development", "--schema", "tenantflow")
	require.NoError(t, err)
	assert.Contains(t, out, "No seed versions have been recorded yet.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitCreatesSchema(t *testing.T) {
	mock := mockPostgres(t)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE SCHEMA IF NOT EXISTS tenantflow`)).
		WillReturnError(assert.AnError)
	mock.ExpectClose()

	_, err := execute(t, "init", "--schema", "tenantflow")
	require.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidSchemaFailsBeforeConnecting(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app@localhost/tenantflow")

	called := false
	original := openDB
	openDB = func(string, bool) (*gorm.DB, error) {
		called = true
		return nil, assert.AnError
	}
	t.Cleanup(func() { openDB = original })

	for _, args := range [][]string{
		{"smoke", "--schema", "public; DROP TABLE users"},
		{"stamp", "smoke", "v1", "--schema", "public; DROP TABLE users"},
		{"history", "--schema", "Public"},
	} {
		_, err := execute(t, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "invalid schema")
	}
	assert.False(t, called)
}

package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialect names as reported by gorm.Dialector.Name().
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL not set in environment or .env file")

// Dialector picks the gorm dialector for a connection string. Postgres URLs and
// key=value DSNs go to the postgres driver; sqlite://, file: and *.db paths go to sqlite.
func Dialector(dsn string) (gorm.Dialector, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrMissingDatabaseURL
	}

	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(lower, "sqlite://"):
		return sqlite.Open(dsn[len("sqlite://"):]), nil
	case strings.HasPrefix(lower, "file:"), lower == ":memory:",
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"):
		return sqlite.Open(dsn), nil
	case strings.Contains(lower, "host=") || strings.Contains(lower, "dbname="):
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database url %q: expected postgres:// or sqlite://", redact(dsn))
}

// Open connects to dsn. With debug set every statement is logged.
func Open(dsn string, debug bool) (*gorm.DB, error) {
	dialector, err := Dialector(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger(os.Stderr, debug)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", redact(dsn), err)
	}
	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// newLogger writes gorm's log to w so stdout stays reserved for the report.
func newLogger(w io.Writer, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// MonthTrunc returns a SQL expression bucketing column by calendar month.
func MonthTrunc(db *gorm.DB, column string) string {
	if db.Dialector.Name() == SQLite {
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
	}
	return fmt.Sprintf("date_trunc('month', %s)", column)
}

// Qualify prefixes table with schema on postgres. sqlite has no schemas.
func Qualify(db *gorm.DB, schema, table string) string {
	if schema == "" || db.Dialector.Name() != Postgres {
		return table
	}
	return schema + "." + table
}

var schemaName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidSchema reports whether name can be interpolated into SQL as a schema. Empty is
// allowed and means the search_path.
func ValidSchema(name string) bool {
	return name == "" || schemaName.MatchString(name)
}

// HasTable reports whether table exists in schema. Unlike gorm's Migrator().HasTable it
// returns the lookup error instead of treating it as absence.
func HasTable(ctx context.Context, db *gorm.DB, schema, table string) (bool, error) {
	var count int64
	tx := db.WithContext(ctx)
	switch {
	case db.Dialector.Name() == SQLite:
		tx = tx.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
	case schema == "":
		tx = tx.Raw("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = CURRENT_SCHEMA() AND table_name = ?", table)
	default:
		tx = tx.Raw("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", schema, table)
	}
	if err := tx.Scan(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up table %s: %w", table, err)
	}
	return count > 0, nil
}

// EnsureSchema creates schema on postgres when it does not exist yet.
func EnsureSchema(ctx context.Context, db *gorm.DB, schema string) error {
	if schema == "" || db.Dialector.Name() != Postgres {
		return nil
	}
	if !ValidSchema(schema) {
		return fmt.Errorf("invalid schema name %q", schema)
	}
	return db.WithContext(ctx).Exec("CREATE SCHEMA IF NOT EXISTS " + schema).Error
}

// redact hides the password component of a URL-style DSN.
func redact(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	creds := dsn[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		return dsn[:scheme+3] + creds[:colon] + ":***" + dsn[at:]
	}
	return dsn
}

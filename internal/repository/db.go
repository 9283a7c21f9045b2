package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Dialect captures what differs between the supported SQL backends.
type Dialect struct {
	Driver string
	// Numbered switches ? placeholders to $1, $2, ...
	Numbered bool
	// Returning means inserts report generated keys through RETURNING.
	Returning bool
	Schema    []string
}

var dialects = map[string]Dialect{
	"mysql": {
		Driver: "mysql",
		Schema: []string{
			`CREATE TABLE IF NOT EXISTS accounts (
				id         BIGINT AUTO_INCREMENT PRIMARY KEY,
				email      VARCHAR(255) NOT NULL UNIQUE,
				auth_hash  VARCHAR(255) NOT NULL,
				created_at DATETIME(6) NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS presets (
				id           CHAR(36) PRIMARY KEY,
				account_id   BIGINT NOT NULL,
				name         VARCHAR(100) NOT NULL,
				pw_length    INT NOT NULL,
				uppercase    BOOLEAN NOT NULL,
				lowercase    BOOLEAN NOT NULL,
				numbers      BOOLEAN NOT NULL,
				symbols      BOOLEAN NOT NULL,
				require_each BOOLEAN NOT NULL,
				created_at   DATETIME(6) NOT NULL,
				UNIQUE KEY uq_presets_account_name (account_id, name),
				CONSTRAINT fk_presets_account FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
		},
	},
	"sqlite": {
		Driver:    "sqlite",
		Returning: true,
		Schema: []string{
			`PRAGMA foreign_keys = ON`,
			`CREATE TABLE IF NOT EXISTS accounts (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				email      TEXT NOT NULL UNIQUE,
				auth_hash  TEXT NOT NULL,
				created_at DATETIME NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS presets (
				id           TEXT PRIMARY KEY,
				account_id   INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
				name         TEXT NOT NULL,
				pw_length    INTEGER NOT NULL,
				uppercase    BOOLEAN NOT NULL,
				lowercase    BOOLEAN NOT NULL,
				numbers      BOOLEAN NOT NULL,
				symbols      BOOLEAN NOT NULL,
				require_each BOOLEAN NOT NULL,
				created_at   DATETIME NOT NULL,
				UNIQUE (account_id, name)
			)`,
		},
	},
	"pgx": {
		Driver:    "pgx",
		Numbered:  true,
		Returning: true,
		Schema: []string{
			`CREATE TABLE IF NOT EXISTS accounts (
				id         BIGSERIAL PRIMARY KEY,
				email      TEXT NOT NULL UNIQUE,
				auth_hash  TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS presets (
				id           UUID PRIMARY KEY,
				account_id   BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
				name         TEXT NOT NULL,
				pw_length    INTEGER NOT NULL,
				uppercase    BOOLEAN NOT NULL,
				lowercase    BOOLEAN NOT NULL,
				numbers      BOOLEAN NOT NULL,
				symbols      BOOLEAN NOT NULL,
				require_each BOOLEAN NOT NULL,
				created_at   TIMESTAMPTZ NOT NULL,
				UNIQUE (account_id, name)
			)`,
		},
	},
}

// DB is a connection pool that knows its SQL dialect.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open connects to driver ("mysql", "sqlite" or "pgx"), verifies the
// connection and creates missing tables.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	dsn, err := prepareDSN(d.Driver, dsn)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, err
	}

	if d.Driver == "sqlite" {
		// A single connection keeps in-memory databases shared and avoids
		// SQLITE_BUSY on writes.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	db := &DB{DB: conn, dialect: d}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging %s database: %w", driver, err)
	}
	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating %s database: %w", driver, err)
	}

	slog.Info("database ready", "driver", driver)
	return db, nil
}

// prepareDSN adjusts driver options the repositories depend on. MySQL must
// decode DATETIME columns into time.Time, which the driver only does with
// parseTime set.
func prepareDSN(driver, dsn string) (string, error) {
	if driver != "mysql" {
		return dsn, nil
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parsing mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// Dialect returns the dialect the pool was opened with.
func (db *DB) Dialect() Dialect { return db.dialect }

func (db *DB) migrate(ctx context.Context) error {
	for _, stmt := range db.dialect.Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// rebind rewrites ? placeholders for dialects that number them.
func (db *DB) rebind(query string) string {
	if !db.dialect.Numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isUniqueViolation recognizes duplicate-key errors from every supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

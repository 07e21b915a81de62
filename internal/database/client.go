package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/apex/log"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// New opens the configured database and wraps it in an ent driver. The returned
// driver is shared by the whole process.
func New(ctx context.Context, cfg *models.DatabaseConfig) (*entsql.Driver, error) {
	switch cfg.DBType {
	case "postgres":
		poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse connection string: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return entsql.OpenDB(dialect.Postgres, stdlib.OpenDBFromPool(pool)), nil
	case "mysql":
		db, err := sql.Open(dialect.MySQL, cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mysql: %w", err)
		}
		return entsql.OpenDB(dialect.MySQL, db), nil
	case "sqlite":
		db, err := sql.Open(cfg.DBType, sqliteDSN(cfg.ConnectionString))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
		return entsql.OpenDB(dialect.SQLite, db), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DBType)
	}
}

// sqliteDSN turns on foreign keys unless the DSN already sets the pragma, the
// schema migrator refuses to run without them.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_pragma=foreign_keys(1)"
	}
	return dsn + "?_pragma=foreign_keys(1)"
}

// Migrate creates or updates the pokemon table.
func Migrate(ctx context.Context, drv dialect.Driver) error {
	logger := log.FromContext(ctx)
	logger.Info("initiating database schema migration")

	m, err := schema.NewMigrate(drv, schema.WithDropIndex(true), schema.WithDropColumn(true))
	if err != nil {
		return fmt.Errorf("failed to prepare migration: %w", err)
	}

	if err = m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info("database schema migration complete")
	return nil
}

// Describe returns a human readable summary of the database configuration with
// the password masked, suitable for logging.
func Describe(cfg *models.DatabaseConfig) string {
	switch cfg.DBType {
	case "sqlite":
		uri, err := url.Parse(cfg.ConnectionString)
		if err != nil {
			return "sqlite (failed to parse database connection string)"
		}
		file := uri.Opaque
		if file == "" {
			file = uri.Host + uri.Path
		}
		return fmt.Sprintf("sqlite file=%s", file)
	case "postgres":
		conConf, err := pgx.ParseConfig(cfg.ConnectionString)
		if err != nil {
			return "postgres (failed to parse database connection string)"
		}
		return fmt.Sprintf(
			"postgres user=%s password=%s host=%s port=%d db=%s",
			conConf.User, strings.Repeat("*", len(conConf.Password)), conConf.Host, conConf.Port, conConf.Database,
		)
	case "mysql":
		conConf, err := mysql.ParseDSN(cfg.ConnectionString)
		if err != nil {
			return "mysql (failed to parse database connection string)"
		}
		return fmt.Sprintf(
			"mysql user=%s password=%s addr=%s db=%s",
			conConf.User, strings.Repeat("*", len(conConf.Passwd)), conConf.Addr, conConf.DBName,
		)
	default:
		return fmt.Sprintf("unknown database type %q", cfg.DBType)
	}
}

package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	versionTableExistsQuery = `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`
	createVersionTableQuery = `CREATE TABLE schema_migrations (version NUMBER(19) PRIMARY KEY, applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL)`
	currentVersionQuery     = `SELECT NVL(MAX(version), 0) FROM schema_migrations`
	insertVersionQuery      = `INSERT INTO schema_migrations (version) VALUES (:1)`
	deleteVersionQuery      = `DELETE FROM schema_migrations WHERE version = :1`
)

// Migrator applies the numbered SQL files of a golang-migrate source to
// Oracle. Applied versions are tracked in SCHEMA_MIGRATIONS.
type Migrator struct {
	db     *sqlx.DB
	src    source.Driver
	logger *zap.Logger
}

// NewMigrator reads migrations embedded in the binary.
func NewMigrator(db *sqlx.DB, logger *zap.Logger) (*Migrator, error) {
	return newMigratorFromFS(db, migrationsFS, "migrations", logger)
}

func newMigratorFromFS(db *sqlx.DB, fsys fs.FS, path string, logger *zap.Logger) (*Migrator, error) {
	src, err := iofs.New(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("could not open migrations source: %w", err)
	}
	return &Migrator{db: db, src: src, logger: logger}, nil
}

// Close releases the migration source.
func (m *Migrator) Close() error {
	return m.src.Close()
}

// Version returns the highest applied version, 0 when none.
func (m *Migrator) Version(ctx context.Context) (uint, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	var version uint
	if err := m.db.GetContext(ctx, &version, currentVersionQuery); err != nil {
		return 0, fmt.Errorf("could not read schema version: %w", err)
	}
	return version, nil
}

// Up applies every migration newer than the current version, in order.
func (m *Migrator) Up(ctx context.Context) error {
	current, err := m.Version(ctx)
	if err != nil {
		return err
	}

	version, err := m.src.First()
	if err != nil {
		return fmt.Errorf("could not read first migration: %w", err)
	}

	applied := 0
	for {
		if version > current {
			if err := m.apply(ctx, version, true); err != nil {
				return err
			}
			applied++
		}

		next, err := m.src.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return fmt.Errorf("could not read migration after %d: %w", version, err)
		}
		version = next
	}

	m.logger.Info("Migrations completed successfully", zap.Int("applied", applied))
	return nil
}

// Down reverts the most recently applied migration. It does nothing when
// no migration has been applied.
func (m *Migrator) Down(ctx context.Context) error {
	current, err := m.Version(ctx)
	if err != nil {
		return err
	}
	if current == 0 {
		m.logger.Info("No migration to revert")
		return nil
	}
	return m.apply(ctx, current, false)
}

func (m *Migrator) apply(ctx context.Context, version uint, up bool) error {
	var (
		body       io.ReadCloser
		identifier string
		err        error
	)
	if up {
		body, identifier, err = m.src.ReadUp(version)
	} else {
		body, identifier, err = m.src.ReadDown(version)
	}
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	content, err := io.ReadAll(body)
	body.Close()
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}

	for _, stmt := range splitStatements(string(content)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %d_%s: %w", version, identifier, err)
		}
	}

	if up {
		_, err = m.db.ExecContext(ctx, insertVersionQuery, version)
	} else {
		_, err = m.db.ExecContext(ctx, deleteVersionQuery, version)
	}
	if err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}

	m.logger.Info("Executed migration",
		zap.Uint("version", version),
		zap.String("name", identifier),
		zap.Bool("up", up),
	)
	return nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	var count int
	if err := m.db.GetContext(ctx, &count, versionTableExistsQuery); err != nil {
		return fmt.Errorf("could not check schema_migrations: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := m.db.ExecContext(ctx, createVersionTableQuery); err != nil {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

// splitStatements splits a migration file on semicolons. The Oracle driver
// rejects a trailing semicolon and multiple statements per call.
func splitStatements(content string) []string {
	var stmts []string
	for _, part := range strings.Split(content, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

package database

import (
	"database/sql"
	"time"

	"github.com/rs/zerolog"
)

// Migrator applies named migrations exactly once, recording each one in a
// migrations table so repeated startups are no-ops.
type Migrator struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewMigrator(db *sql.DB, log zerolog.Logger) *Migrator {
	return &Migrator{db: db, log: log}
}

func (m *Migrator) initTable() error {
	_, err := m.db.Exec(`
            CREATE TABLE IF NOT EXISTS migrations (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                name TEXT NOT NULL UNIQUE,
                applied_at TIMESTAMP NOT NULL
            )`)
	return err
}

func (m *Migrator) applied(name string) (bool, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *Migrator) apply(name string, fn func(*sql.DB) error) error {
	done, err := m.applied(name)
	if err != nil {
		return err
	}
	if done {
		m.log.Debug().Str("migration", name).Msg("already applied")
		return nil
	}
	if err := fn(m.db); err != nil {
		m.log.Error().Str("migration", name).Err(err).Msg("migration failed")
		return err
	}
	if _, err := m.db.Exec("INSERT INTO migrations (name, applied_at) VALUES (?, ?)", name, time.Now().UTC()); err != nil {
		return err
	}
	m.log.Info().Str("migration", name).Msg("migration applied")
	return nil
}

// Run brings the store up to date: every entity table, the seller-approval
// trigger and the initial category rows.
func (m *Migrator) Run() error {
	if err := m.initTable(); err != nil {
		return err
	}
	steps := []struct {
		name string
		fn   func(*sql.DB) error
	}{
		{"001_create_tables", createTables},
		{"002_seed_categories", seedCategories},
	}
	for _, s := range steps {
		if err := m.apply(s.name, s.fn); err != nil {
			return err
		}
	}
	return nil
}

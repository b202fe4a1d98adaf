package repository

import (
	"database/sql"

	"github.com/shift-planner/backend/internal/config"
)

// Repository is the Postgres-backed scheduling store. Interval inserts take
// a per-owner+date advisory lock inside their transaction, and the schema
// carries exclusion constraints on (owner, date, span) as a last-resort
// backstop, so overlapping rows cannot be committed even by writers that
// bypass the validators.
type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

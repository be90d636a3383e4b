// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Driver errors leave this package classified by sqlerr.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/visited-countries/internal/server"
)

// DBTX is the subset of pgxpool.Pool the repositories use. pgx.Tx and
// pgxmock pools satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Users     *UserRepository
	Countries *CountryRepository
}

// NewRepositories builds every repository on the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(s.DB.Pool),
		Countries: NewCountryRepository(s.DB.Pool),
	}
}

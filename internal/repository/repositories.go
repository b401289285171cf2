// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch data,
// abstracting SQL logic away from the service layer.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/account-service/internal/server"
)

// DBTX is the subset of *pgxpool.Pool the repositories use.
// pgxmock's pool satisfies it too.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Account *AccountRepository
}

// NewRepositories constructs the repository container on top of the
// server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Account: NewAccountRepository(s.DB.Pool),
	}
}

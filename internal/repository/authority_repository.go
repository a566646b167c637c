package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/account-service/internal/domain"
)

// AuthorityRepository resolves role identifiers against the authority catalog.
type AuthorityRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Authority, error)
}

type authorityRepository struct {
	pool *pgxpool.Pool
}

// NewAuthorityRepository returns a Postgres-backed implementation.
func NewAuthorityRepository(pool *pgxpool.Pool) AuthorityRepository {
	return &authorityRepository{pool: pool}
}

func (r *authorityRepository) GetByName(ctx context.Context, name string) (*domain.Authority, error) {
	const query = `SELECT name FROM authorities WHERE name=$1`

	var authority domain.Authority
	if err := r.pool.QueryRow(ctx, query, name).Scan(&authority.Name); err != nil {
		return nil, storeErr(err)
	}
	return &authority, nil
}

package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

func TestPostgresPortfolioRepo_EnsureSchemaRetriesUntilProvisioned(t *testing.T) {
	calls := 0
	failures := 1
	repo := &postgresPortfolioRepo{
		logger: logger.NewNopLogger(),
		provision: func(context.Context) error {
			calls++
			if calls <= failures {
				return errors.New("connection refused")
			}
			return nil
		},
	}
	ctx := context.Background()

	err := repo.ensureSchema(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInternal))

	require.NoError(t, repo.ensureSchema(ctx))
	require.NoError(t, repo.ensureSchema(ctx))
	assert.Equal(t, 2, calls)
}

func TestPostgresPortfolioRepo_SaveProvisionsFirst(t *testing.T) {
	provisionErr := errors.New("database unreachable")
	repo := &postgresPortfolioRepo{
		logger:    logger.NewNopLogger(),
		provision: func(context.Context) error { return provisionErr },
	}

	err := repo.Save(context.Background(), samplePortfolio("lazy@example.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInternal)

	_, err = repo.FindByOwner(context.Background(), samplePortfolio("lazy@example.com").OwnerID())
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

// setupPostgres migrates the database named by TRIVIA_TEST_DATABASE_URL from
// scratch and returns a pool on it.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TRIVIA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TRIVIA_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx, dsn, "reset"))
	require.NoError(t, db.Migrate(ctx, dsn, "up"))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestQueriesAgainstPostgres(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	q := queries.New(pool)
	questions := NewQuestionRepository(q)
	categories := NewCategoryRepository(q)

	cats, err := categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 6)

	_, err = categories.Get(ctx, 456)
	assert.ErrorIs(t, err, ErrNotFound)

	before, err := questions.Count(ctx)
	require.NoError(t, err)

	created, err := questions.Insert(ctx, queries.InsertQuestionParams{
		Question: "What is the color of apples?", Answer: "red", Difficulty: 1, Category: 1,
	})
	require.NoError(t, err)

	after, err := questions.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	found, err := questions.Search(ctx, "COLOR OF APP")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	wild, err := questions.Search(ctx, "100%")
	require.NoError(t, err)
	assert.Empty(t, wild)

	_, err = questions.Insert(ctx, queries.InsertQuestionParams{Question: "q", Answer: "a", Difficulty: 1, Category: 999})
	assert.ErrorIs(t, err, ErrInvalidReference)

	require.NoError(t, questions.Delete(ctx, created.ID))
	assert.ErrorIs(t, questions.Delete(ctx, created.ID), ErrNotFound)

	_, err = questions.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

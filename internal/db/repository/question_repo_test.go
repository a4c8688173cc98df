package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type mockQuestionStore struct {
	mock.Mock
}

func (m *mockQuestionStore) ListQuestions(ctx context.Context) ([]queries.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) GetQuestion(ctx context.Context, id int64) (queries.Question, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(queries.Question), args.Error(1)
}

func (m *mockQuestionStore) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]queries.Question, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) SearchQuestions(ctx context.Context, term string) ([]queries.Question, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) CountQuestions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockQuestionStore) InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(queries.Question), args.Error(1)
}

func (m *mockQuestionStore) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestQuestionRepository_Insert(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	params := queries.InsertQuestionParams{Question: "Color of apples?", Answer: "red", Difficulty: 1, Category: 1}
	expect := queries.Question{ID: 42, Question: params.Question, Answer: params.Answer, Difficulty: 1, Category: 1}
	store.On("InsertQuestion", mock.Anything, params).Return(expect, nil)

	got, err := repo.Insert(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestQuestionRepository_InsertUnknownCategory(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	params := queries.InsertQuestionParams{Question: "q", Answer: "a", Difficulty: 1, Category: 99}
	store.On("InsertQuestion", mock.Anything, params).
		Return(queries.Question{}, &pgconn.PgError{Code: pgForeignKeyViolation})

	_, err := repo.Insert(context.Background(), params)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestQuestionRepository_Delete(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("DeleteQuestion", mock.Anything, int64(5)).Return(int64(1), nil)
	store.On("DeleteQuestion", mock.Anything, int64(8000)).Return(int64(0), nil)

	assert.NoError(t, repo.Delete(context.Background(), 5))
	assert.ErrorIs(t, repo.Delete(context.Background(), 8000), ErrNotFound)
	store.AssertExpectations(t)
}

func TestQuestionRepository_GetMissing(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("GetQuestion", mock.Anything, int64(7)).Return(queries.Question{}, pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuestionRepository_PassesThroughOtherErrors(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	boom := errors.New("connection reset")
	store.On("SearchQuestions", mock.Anything, "title").Return([]queries.Question(nil), boom)

	_, err := repo.Search(context.Background(), "title")
	assert.ErrorIs(t, err, boom)
}

package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]queries.Question, error)
	GetQuestion(ctx context.Context, id int64) (queries.Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]queries.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]queries.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error)
	DeleteQuestion(ctx context.Context, id int64) (int64, error)
}

// QuestionRepository wraps the SQL queries for question access.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question in creation order.
func (r *QuestionRepository) List(ctx context.Context) ([]queries.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	return rows, translate(err)
}

func (r *QuestionRepository) Get(ctx context.Context, id int64) (queries.Question, error) {
	row, err := r.store.GetQuestion(ctx, id)
	return row, translate(err)
}

// ListByCategory returns the questions of one category in creation order.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int64) ([]queries.Question, error) {
	rows, err := r.store.ListQuestionsByCategory(ctx, categoryID)
	return rows, translate(err)
}

// Search matches term case-insensitively against the question text.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]queries.Question, error) {
	rows, err := r.store.SearchQuestions(ctx, term)
	return rows, translate(err)
}

func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.store.CountQuestions(ctx)
	return n, translate(err)
}

// Insert stores a new question. A missing category yields ErrInvalidReference.
func (r *QuestionRepository) Insert(ctx context.Context, params queries.InsertQuestionParams) (queries.Question, error) {
	row, err := r.store.InsertQuestion(ctx, params)
	return row, translate(err)
}

// Delete removes a question, returning ErrNotFound when nothing was deleted.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

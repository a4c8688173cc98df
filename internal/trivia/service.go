package trivia

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
)

const defaultPageSize = 10

// Service implements the trivia operations over the repositories. It holds no
// per-client state; quiz progress travels with each request.
type Service struct {
	categories *repository.CategoryRepository
	questions  *repository.QuestionRepository
	cache      CategoryCache
	rng        Rand
	pageSize   int
}

type ServiceOptions struct {
	PageSize int
	// Rand overrides the quiz randomness; nil uses DefaultRand.
	Rand Rand
}

// NewService wires the repositories. cache may be nil to disable caching.
func NewService(categories *repository.CategoryRepository, questions *repository.QuestionRepository, cache CategoryCache, opts ServiceOptions) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.Rand == nil {
		opts.Rand = DefaultRand
	}
	return &Service{
		categories: categories,
		questions:  questions,
		cache:      cache,
		rng:        opts.Rand,
		pageSize:   opts.PageSize,
	}
}

// PageSize is the number of questions per listing page.
func (s *Service) PageSize() int {
	return s.pageSize
}

// Categories returns the id -> type map, served from cache when possible.
func (s *Service) Categories(ctx context.Context) (map[int64]string, error) {
	logger := logging.FromContext(ctx)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			metrics.CategoryCacheLookup("error")
			logger.Warn().Err(err).Msg("category cache read failed")
		case cached != nil:
			metrics.CategoryCacheLookup("hit")
			return cached, nil
		default:
			metrics.CategoryCacheLookup("miss")
		}
	}

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// RefreshCategories reloads the category map from storage into the cache.
func (s *Service) RefreshCategories(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, categories)
}

func (s *Service) loadCategories(ctx context.Context) (map[int64]string, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make(map[int64]string, len(rows))
	for _, row := range rows {
		categories[row.ID] = row.Type
	}
	return categories, nil
}

// Category looks a category up by id.
func (s *Service) Category(ctx context.Context, id int64) (Category, error) {
	row, err := s.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Category{}, notFound("category %d does not exist", id)
		}
		return Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return Category{ID: row.ID, Type: row.Type}, nil
}

// Question looks a question up by id.
func (s *Service) Question(ctx context.Context, id int64) (Question, error) {
	row, err := s.questions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Question{}, notFound("question %d does not exist", id)
		}
		return Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return toDomain(row), nil
}

// ListQuestions returns one page of all questions with the category map.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}

	result, err := SelectPage(toDomainAll(rows), PageRequest{Page: page, PageSize: s.pageSize})
	if err != nil {
		return QuestionPage{}, err
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:  result.Items,
		Total:      result.Total,
		Categories: categories,
	}, nil
}

// QuestionsByCategory returns one page of the questions in a category.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int64, page int) (QuestionPage, error) {
	category, err := s.Category(ctx, categoryID)
	if err != nil {
		return QuestionPage{}, err
	}

	rows, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions of category %d: %w", categoryID, err)
	}

	result, err := SelectPage(toDomainAll(rows), PageRequest{
		Page:       page,
		PageSize:   s.pageSize,
		CategoryID: &categoryID,
	})
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:       result.Items,
		Total:           result.Total,
		CurrentCategory: &category.Type,
	}, nil
}

// SearchQuestions returns every question whose text contains term. The term
// is matched as sent, surrounding spaces included.
func (s *Service) SearchQuestions(ctx context.Context, term string) (QuestionPage, error) {
	if strings.TrimSpace(term) == "" {
		return QuestionPage{}, unprocessable("%s must not be blank", searchKey)
	}

	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("search questions: %w", err)
	}

	result, err := SelectPage(toDomainAll(rows), PageRequest{Search: term})
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{Questions: result.Items, Total: result.Total}, nil
}

// CreateQuestion validates and stores a new question. The category must
// already exist.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (Question, error) {
	nq, err := ValidateNewQuestion(req)
	if err != nil {
		return Question{}, err
	}

	if _, err := s.Category(ctx, nq.Category); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Question{}, unprocessable("category %d does not exist", nq.Category)
		}
		return Question{}, err
	}

	row, err := s.questions.Insert(ctx, queries.InsertQuestionParams{
		Question:   nq.Question,
		Answer:     nq.Answer,
		Difficulty: int32(nq.Difficulty),
		Category:   nq.Category,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return Question{}, unprocessable("category %d does not exist", nq.Category)
		}
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	return toDomain(row), nil
}

// DeleteQuestion removes a question. Deleting an unknown id is
// ErrUnprocessable, not ErrNotFound.
func (s *Service) DeleteQuestion(ctx context.Context, id int64) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unprocessable("question %d does not exist", id)
		}
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

// CountQuestions returns the total number of stored questions.
func (s *Service) CountQuestions(ctx context.Context) (int, error) {
	n, err := s.questions.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return int(n), nil
}

// NextQuizQuestion picks a random question the client has not seen yet. The
// boolean is false once the category is exhausted.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (Question, bool, error) {
	var (
		rows []queries.Question
		err  error
	)
	if req.Category.Any() {
		rows, err = s.questions.List(ctx)
	} else {
		rows, err = s.questions.ListByCategory(ctx, req.Category.ID)
	}
	if err != nil {
		return Question{}, false, fmt.Errorf("load quiz questions: %w", err)
	}

	label := categoryLabel(req.Category)
	if len(rows) == 0 && !req.Category.Any() {
		// keeps client-supplied ids out of metric labels
		label = "unknown"
	}
	q, ok := PickNext(toDomainAll(rows), req.Category, req.Previous, s.rng)
	if !ok {
		metrics.QuizCompleted(label)
		logger := logging.FromContext(ctx)
		logger.Debug().
			Str("category", label).
			Int("previous", len(req.Previous)).
			Msg("quiz exhausted")
		return Question{}, false, nil
	}
	metrics.QuizQuestionServed(label)
	return q, true, nil
}

func categoryLabel(c CategoryConstraint) string {
	if c.Any() {
		return "any"
	}
	return strconv.FormatInt(c.ID, 10)
}

func toDomain(row queries.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Difficulty: int(row.Difficulty),
		Category:   row.Category,
	}
}

func toDomainAll(rows []queries.Question) []Question {
	out := make([]Question, len(rows))
	for i, row := range rows {
		out[i] = toDomain(row)
	}
	return out
}

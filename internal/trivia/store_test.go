package trivia

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// memoryStore satisfies both repository store method sets so the service can
// be exercised without Postgres.
type memoryStore struct {
	mu         sync.Mutex
	categories []queries.Category
	questions  []queries.Question
	nextID     int64
	failWith   error
}

func newMemoryStore() *memoryStore {
	s := &memoryStore{
		categories: []queries.Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "Geography"},
		},
	}
	seed := []struct {
		q, a     string
		diff     int32
		category int64
	}{
		{"What is the heaviest organ in the human body?", "The Liver", 4, 1},
		{"Who discovered penicillin?", "Alexander Fleming", 3, 1},
		{"Hematology is a branch of medicine involving the study of what?", "Blood", 4, 1},
		{"La Giaconda is better known as what?", "Mona Lisa", 3, 2},
		{"How many paintings did Van Gogh sell in his lifetime?", "One", 4, 2},
		{"What is the largest lake in Africa?", "Lake Victoria", 2, 3},
	}
	for _, row := range seed {
		s.add(row.q, row.a, row.diff, row.category)
	}
	return s
}

func (s *memoryStore) add(question, answer string, difficulty int32, category int64) queries.Question {
	s.nextID++
	q := queries.Question{ID: s.nextID, Question: question, Answer: answer, Difficulty: difficulty, Category: category}
	s.questions = append(s.questions, q)
	return q
}

// addMany appends n questions to category and returns their ids.
func (s *memoryStore) addMany(n int, category int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, s.add("Filler question?", "filler", 1, category).ID)
	}
	return ids
}

func (s *memoryStore) ListCategories(context.Context) ([]queries.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return slices.Clone(s.categories), nil
}

func (s *memoryStore) GetCategory(_ context.Context, id int64) (queries.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return queries.Category{}, s.failWith
	}
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return queries.Category{}, pgx.ErrNoRows
}

func (s *memoryStore) ListQuestions(context.Context) ([]queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return slices.Clone(s.questions), nil
}

func (s *memoryStore) GetQuestion(_ context.Context, id int64) (queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return queries.Question{}, pgx.ErrNoRows
}

func (s *memoryStore) ListQuestionsByCategory(_ context.Context, categoryID int64) ([]queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []queries.Question
	for _, q := range s.questions {
		if q.Category == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memoryStore) SearchQuestions(_ context.Context, term string) ([]queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(term)
	var out []queries.Question
	for _, q := range s.questions {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memoryStore) CountQuestions(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.questions)), nil
}

func (s *memoryStore) InsertQuestion(_ context.Context, arg queries.InsertQuestionParams) (queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	known := slices.ContainsFunc(s.categories, func(c queries.Category) bool { return c.ID == arg.Category })
	if !known {
		return queries.Question{}, &pgconn.PgError{Code: "23503"}
	}
	return s.add(arg.Question, arg.Answer, arg.Difficulty, arg.Category), nil
}

func (s *memoryStore) DeleteQuestion(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.questions)
	s.questions = slices.DeleteFunc(s.questions, func(q queries.Question) bool { return q.ID == id })
	return int64(before - len(s.questions)), nil
}

type memoryCache struct {
	mu      sync.Mutex
	data    map[int64]string
	sets    int
	failGet error
}

func (c *memoryCache) Get(context.Context) (map[int64]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet != nil {
		return nil, c.failGet
	}
	if c.data == nil {
		return nil, nil
	}
	return maps.Clone(c.data), nil
}

func (c *memoryCache) Set(_ context.Context, categories map[int64]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = maps.Clone(categories)
	c.sets++
	return nil
}

// fixedRand always returns the same index, clamped into range.
type fixedRand int

func (f fixedRand) IntN(n int) int {
	return min(int(f), n-1)
}

var errStoreDown = errors.New("store unavailable")

func newTestService(store *memoryStore, cache CategoryCache, pageSize int) *Service {
	return NewService(
		repository.NewCategoryRepository(store),
		repository.NewQuestionRepository(store),
		cache,
		ServiceOptions{PageSize: pageSize, Rand: fixedRand(0)},
	)
}

// Package queries holds the SQL used by the repositories, one method per
// statement, over anything that can run pgx queries (pool, conn or tx).
package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx runs subsequent statements inside tx.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

type Category struct {
	ID   int64  `db:"id"`
	Type string `db:"type"`
}

type Question struct {
	ID         int64  `db:"id"`
	Question   string `db:"question"`
	Answer     string `db:"answer"`
	Difficulty int32  `db:"difficulty"`
	Category   int64  `db:"category"`
}

type InsertQuestionParams struct {
	Question   string
	Answer     string
	Difficulty int32
	Category   int64
}

const listCategories = `SELECT id, type FROM categories ORDER BY id`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Category])
}

const getCategory = `SELECT id, type FROM categories WHERE id = $1`

func (q *Queries) GetCategory(ctx context.Context, id int64) (Category, error) {
	rows, err := q.db.Query(ctx, getCategory, id)
	if err != nil {
		return Category{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Category])
}

const questionColumns = `id, question, answer, difficulty, category`

const listQuestions = `SELECT ` + questionColumns + ` FROM questions ORDER BY id`

func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	return q.collectQuestions(ctx, listQuestions)
}

const getQuestion = `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

func (q *Queries) GetQuestion(ctx context.Context, id int64) (Question, error) {
	rows, err := q.db.Query(ctx, getQuestion, id)
	if err != nil {
		return Question{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Question])
}

const listQuestionsByCategory = `SELECT ` + questionColumns + ` FROM questions WHERE category = $1 ORDER BY id`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]Question, error) {
	return q.collectQuestions(ctx, listQuestionsByCategory, categoryID)
}

// Wildcards in the term are escaped so the match stays a plain substring.
const searchQuestions = `SELECT ` + questionColumns + ` FROM questions
WHERE question ILIKE '%' || replace(replace(replace($1, '\', '\\'), '%', '\%'), '_', '\_') || '%'
ORDER BY id`

func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	return q.collectQuestions(ctx, searchQuestions, term)
}

const countQuestions = `SELECT COUNT(*) FROM questions`

func (q *Queries) CountQuestions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countQuestions).Scan(&n)
	return n, err
}

const insertQuestion = `INSERT INTO questions (question, answer, difficulty, category)
VALUES ($1, $2, $3, $4)
RETURNING ` + questionColumns

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	rows, err := q.db.Query(ctx, insertQuestion, arg.Question, arg.Answer, arg.Difficulty, arg.Category)
	if err != nil {
		return Question{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Question])
}

const deleteQuestion = `DELETE FROM questions WHERE id = $1`

// DeleteQuestion reports the number of rows removed (0 or 1).
func (q *Queries) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) collectQuestions(ctx context.Context, sql string, args ...any) ([]Question, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Question])
}

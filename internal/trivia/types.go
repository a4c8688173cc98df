package trivia

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Question is the payload delivered to clients.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int64  `json:"category"`
}

// Category is a read-only question grouping.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// AnyCategory is the quiz constraint id meaning "draw from every category".
const AnyCategory int64 = 0

// CategoryConstraint limits quiz selection to one category, or to none when
// ID is AnyCategory.
type CategoryConstraint struct {
	ID int64
}

// Any reports whether the constraint admits every category.
func (c CategoryConstraint) Any() bool {
	return c.ID == AnyCategory
}

// Matches reports whether q satisfies the constraint.
func (c CategoryConstraint) Matches(q Question) bool {
	return c.Any() || q.Category == c.ID
}

// QuizRequest is a parsed POST /quizzes body.
type QuizRequest struct {
	Previous []int64
	Category CategoryConstraint
}

// QuestionPage is one page of questions plus listing metadata.
type QuestionPage struct {
	Questions       []Question
	Total           int
	Categories      map[int64]string
	CurrentCategory *string
}

// FlexInt decodes an integer sent either as a JSON number or as a numeric
// string ("1"). It never fails decoding: Set records that the key carried a
// non-null value, Valid that the value was an integer.
type FlexInt struct {
	Value int64
	Set   bool
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	f.Set = true

	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		f.Value, f.Valid = v, true
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil && v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		f.Value, f.Valid = int64(v), true
	}
	return nil
}

// CreateQuestionRequest is the raw create payload of POST /questions.
type CreateQuestionRequest struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Difficulty FlexInt `json:"difficulty"`
	Category   FlexInt `json:"category"`
}

// NewQuestion is a create request that passed validation.
type NewQuestion struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Difficulty int    `json:"difficulty" validate:"required,min=1,max=5"`
	Category   int64  `json:"category" validate:"required,min=1"`
}

// QuestionsPost is a parsed POST /questions body: either a search (Search
// non-nil) or a create.
type QuestionsPost struct {
	Search *string
	Create CreateQuestionRequest
}

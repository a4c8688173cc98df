package trivia

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/validator"
)

// searchKey selects search mode on POST /questions.
const searchKey = "searchTerm"

// decodeObject rejects anything but a single JSON object.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, badRequest("request body is required")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, badRequest("request body must be a JSON object")
	}
	return fields, nil
}

// ParseQuestionsPost classifies a POST /questions body as search or create.
// Shape problems are ErrBadRequest; field contents are checked later.
func ParseQuestionsPost(body []byte) (QuestionsPost, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return QuestionsPost{}, err
	}

	if raw, ok := fields[searchKey]; ok {
		var term string
		if err := json.Unmarshal(raw, &term); err != nil {
			return QuestionsPost{}, badRequest("%s must be a string", searchKey)
		}
		return QuestionsPost{Search: &term}, nil
	}

	var req CreateQuestionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return QuestionsPost{}, badRequest("invalid question payload: %v", err)
	}
	return QuestionsPost{Create: req}, nil
}

// ValidateNewQuestion checks that every required create field is present and
// in range. Failures are ErrUnprocessable listing the offending fields.
func ValidateNewQuestion(req CreateQuestionRequest) (NewQuestion, error) {
	nq := NewQuestion{
		Question: strings.TrimSpace(req.Question),
		Answer:   strings.TrimSpace(req.Answer),
	}
	if req.Difficulty.Valid {
		nq.Difficulty = int(req.Difficulty.Value)
	}
	if req.Category.Valid {
		nq.Category = req.Category.Value
	}

	// Out-of-range values outside int would wrap; treat them as invalid.
	if req.Difficulty.Valid && int64(nq.Difficulty) != req.Difficulty.Value {
		nq.Difficulty = 0
	}

	if fields := validator.Struct(nq); fields != nil {
		return NewQuestion{}, unprocessable("%s", fields.Error())
	}
	return nq, nil
}

type quizPayload struct {
	PreviousQuestions *[]FlexInt `json:"previous_questions"`
	QuizCategory      *struct {
		ID FlexInt `json:"id"`
	} `json:"quiz_category"`
}

// ParseQuizRequest parses a POST /quizzes body. Both previous_questions and
// quiz_category.id are mandatory; quiz_category is matched by id only and any
// other key inside it is ignored.
func ParseQuizRequest(body []byte) (QuizRequest, error) {
	if _, err := decodeObject(body); err != nil {
		return QuizRequest{}, err
	}

	var p quizPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return QuizRequest{}, badRequest("invalid quiz payload: %v", err)
	}
	if p.PreviousQuestions == nil {
		return QuizRequest{}, badRequest("previous_questions is required")
	}
	if p.QuizCategory == nil || !p.QuizCategory.ID.Set {
		return QuizRequest{}, badRequest("quiz_category.id is required")
	}
	if !p.QuizCategory.ID.Valid || p.QuizCategory.ID.Value < 0 {
		return QuizRequest{}, badRequest("quiz_category.id must be a non-negative integer")
	}

	previous := make([]int64, 0, len(*p.PreviousQuestions))
	for i, id := range *p.PreviousQuestions {
		if !id.Valid || id.Value < 0 {
			return QuizRequest{}, badRequest("previous_questions[%d] must be a non-negative integer", i)
		}
		previous = append(previous, id.Value)
	}

	return QuizRequest{
		Previous: previous,
		Category: CategoryConstraint{ID: p.QuizCategory.ID.Value},
	}, nil
}

// ParsePage reads the page query value; empty means the first page.
func ParsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 0, badRequest("page must be a positive integer")
	}
	return page, nil
}

// ParseID parses a positive integer path identifier.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

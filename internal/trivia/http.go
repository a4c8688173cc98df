package trivia

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandlers exposes the trivia REST endpoints.
type HTTPHandlers struct {
	svc *Service
}

// NewHTTPHandlers creates HTTP handlers for the trivia endpoints.
func NewHTTPHandlers(svc *Service) *HTTPHandlers {
	return &HTTPHandlers{svc: svc}
}

// Register mounts every trivia route on mux.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /categories/{id}", h.GetCategory)
	mux.HandleFunc("GET /categories/{id}/questions", h.ListCategoryQuestions)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("GET /questions/{id}", h.GetQuestion)
	mux.HandleFunc("POST /questions", h.PostQuestions)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST /quizzes", h.NextQuizQuestion)
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"categories":       categories,
		"total_categories": len(categories),
	})
}

// GetCategory handles GET /categories/{id}
func (h *HTTPHandlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(r.PathValue("id"))
	if !ok {
		httperrors.RespondNotFound(w, "unknown category")
		return
	}
	category, err := h.svc.Category(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"category": category,
	})
}

// ListCategoryQuestions handles GET /categories/{id}/questions?page=N
func (h *HTTPHandlers) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(r.PathValue("id"))
	if !ok {
		httperrors.RespondNotFound(w, "unknown category")
		return
	}
	page, err := ParsePage(r.URL.Query().Get("page"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.svc.QuestionsByCategory(r.Context(), id, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": result.CurrentCategory,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := ParsePage(r.URL.Query().Get("page"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.svc.ListQuestions(r.Context(), page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"categories":       result.Categories,
		"current_category": nil,
	})
}

// GetQuestion handles GET /questions/{id}
func (h *HTTPHandlers) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(r.PathValue("id"))
	if !ok {
		httperrors.RespondNotFound(w, "unknown question")
		return
	}
	q, err := h.svc.Question(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": q,
	})
}

// PostQuestions handles POST /questions. A body carrying searchTerm searches;
// anything else creates a question.
func (h *HTTPHandlers) PostQuestions(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	post, err := ParseQuestionsPost(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if post.Search != nil {
		result, err := h.svc.SearchQuestions(r.Context(), *post.Search)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":          true,
			"questions":        result.Questions,
			"total_questions":  result.Total,
			"current_category": nil,
		})
		return
	}

	q, err := h.svc.CreateQuestion(r.Context(), post.Create)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	total, err := h.svc.CountQuestions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Info().Int64("question_id", q.ID).Int64("category", q.Category).Msg("question created")

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"created":         q.ID,
		"question":        q,
		"total_questions": total,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(r.PathValue("id"))
	if !ok {
		httperrors.RespondUnprocessable(w, "question id must be a positive integer")
		return
	}
	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	total, err := h.svc.CountQuestions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Info().Int64("question_id", id).Msg("question deleted")

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         id,
		"total_questions": total,
	})
}

// NextQuizQuestion handles POST /quizzes
func (h *HTTPHandlers) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req, err := ParseQuizRequest(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	q, ok, err := h.svc.NextQuizQuestion(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var question interface{}
	if ok {
		question = q
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, badRequest("read request body: %v", err)
	}
	return body, nil
}

// fail maps an error kind to its status; anything unclassified is logged and
// reported as a 500.
func (h *HTTPHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		httperrors.RespondBadRequest(w, err.Error())
	case errors.Is(err, ErrUnprocessable):
		httperrors.RespondUnprocessable(w, err.Error())
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w, err.Error())
	default:
		logger := logging.FromContext(r.Context())
		logger.Error().Err(err).Msg("request failed")
		httperrors.RespondInternalError(w)
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

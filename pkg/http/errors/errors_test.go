package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorEnvelope(t *testing.T) {
	cases := []struct {
		name    string
		write   func(w http.ResponseWriter)
		status  int
		message string
	}{
		{"bad request", func(w http.ResponseWriter) { RespondBadRequest(w, "body required") }, http.StatusBadRequest, MsgBadRequest},
		{"not found", func(w http.ResponseWriter) { RespondNotFound(w, "") }, http.StatusNotFound, MsgNotFound},
		{"unprocessable", func(w http.ResponseWriter) { RespondUnprocessable(w, "answer is required") }, http.StatusUnprocessableEntity, MsgUnprocessable},
		{"method", RespondMethodNotAllowed, http.StatusMethodNotAllowed, MsgMethodNotAllowed},
		{"internal", RespondInternalError, http.StatusInternalServerError, MsgInternalError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.status, body.Error)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

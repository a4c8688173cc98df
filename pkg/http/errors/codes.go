package errors

import "net/http"

// Messages returned in the "message" field. Clients match on these strings,
// so they stay stable across releases.
const (
	MsgBadRequest       = "bad request"
	MsgNotFound         = "resource not found"
	MsgMethodNotAllowed = "method not allowed"
	MsgUnprocessable    = "unprocessable"
	MsgInternalError    = "internal server error"
	MsgUnavailable      = "service unavailable"
)

// MessageFor maps a status code to its canonical message.
func MessageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	case http.StatusServiceUnavailable:
		return MsgUnavailable
	default:
		return MsgInternalError
	}
}

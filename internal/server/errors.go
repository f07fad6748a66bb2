package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"shunt/internal/engine"
	"shunt/internal/token"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeMismatchedParentheses Code = "MISMATCHED_PARENTHESES"
	CodeInvalidMode           Code = "INVALID_MODE"
	CodeInvalidInput          Code = "INVALID_INPUT"
	CodeInternal              Code = "INTERNAL_ERROR"
)

type errorDetail struct {
	Code    Code        `json:"code"`
	Message string      `json:"message"`
	Missing string      `json:"missing,omitempty"`
	TokenID string      `json:"tokenId,omitempty"`
	Span    *token.Span `json:"span,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

// classify maps err to a status and body. Anything it does not recognize
// is an internal error and its text is not exposed.
func classify(err error) (int, errorDetail) {
	var mm *engine.MismatchedParenthesesError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &mm):
		d := errorDetail{
			Code:    CodeMismatchedParentheses,
			Message: mm.Error(),
			Missing: mm.Missing.String(),
			TokenID: mm.TokenID,
		}
		if !mm.Span.Empty() {
			sp := mm.Span
			d.Span = &sp
		}
		return http.StatusUnprocessableEntity, d
	case errors.Is(err, engine.ErrUnknownMode):
		return http.StatusUnprocessableEntity, errorDetail{Code: CodeInvalidMode, Message: err.Error()}
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, errorDetail{Code: CodeInvalidInput, Message: "request body too large"}
	case errors.Is(err, errInvalidInput):
		return http.StatusUnprocessableEntity, errorDetail{Code: CodeInvalidInput, Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorDetail{Code: CodeInternal, Message: "internal error"}
	}
}

var errInvalidInput = errors.New("invalid input")

func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	status, detail := classify(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "err", err)
	}
	writeJSON(w, logger, status, errorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response", "err", err)
	}
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/learnpath/internal/personalize"
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/store"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// statusFor maps service errors to a status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, session.ErrSessionClosed):
		return http.StatusConflict, "session_closed"
	case errors.Is(err, session.ErrAlreadyAnswered):
		return http.StatusConflict, "already_answered"
	case errors.Is(err, session.ErrUnknownQuestion):
		return http.StatusConflict, "unknown_question"
	case errors.Is(err, personalize.ErrNoQuestions):
		return http.StatusUnprocessableEntity, "no_questions"
	}
	return http.StatusInternalServerError, "internal"
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
	}
	RespondError(c, status, code, err)
}

func badRequest(c *gin.Context, err error) {
	RespondError(c, http.StatusBadRequest, "invalid_request", err)
}

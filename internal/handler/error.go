package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/taskhive/internal/domain"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит код и описание ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы.
// Обернутые ошибки распознаются через errors.Is, поэтому сообщение сохраняет детали.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.MapErrorToCode(err)

	switch code {
	case domain.CodeNotFound:
		RespondWithError(w, r, http.StatusNotFound, string(code), err.Error())
	case domain.CodeForbidden:
		RespondWithError(w, r, http.StatusForbidden, string(code), err.Error())
	case domain.CodeInvalidAssignment, domain.CodeAlreadyMember,
		domain.CodeCannotRemoveCreator, domain.CodeValidationFailed:
		RespondWithError(w, r, http.StatusBadRequest, string(code), err.Error())
	case domain.CodeEmailTaken:
		RespondWithError(w, r, http.StatusConflict, string(code), err.Error())
	case domain.CodeUnauthorized:
		// Не раскрываем, что именно не совпало: email или пароль
		if errors.Is(err, domain.ErrInvalidCredentials) {
			RespondWithError(w, r, http.StatusUnauthorized, string(code), domain.ErrInvalidCredentials.Error())
			return
		}
		RespondWithError(w, r, http.StatusUnauthorized, string(code), "unauthorized")
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		RespondWithError(w, r, http.StatusInternalServerError, string(domain.CodeInternal), "internal server error")
	}
}

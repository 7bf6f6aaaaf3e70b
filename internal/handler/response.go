package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/aidar/taskhive/internal/middleware"
	"github.com/aidar/taskhive/internal/validation"
)

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// RespondNoContent отправляет пустой ответ 204
func RespondNoContent(w http.ResponseWriter, r *http.Request) {
	render.NoContent(w, r)
}

// decodeRequest читает JSON тело и проверяет validate-теги.
// При ошибке ответ уже отправлен и возвращается false.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return false
	}

	if err := validation.Struct(dst); err != nil {
		HandleError(w, r, err)
		return false
	}

	return true
}

// actorFrom возвращает ID аутентифицированного пользователя
func actorFrom(r *http.Request) string {
	return middleware.GetUserIDFromContext(r.Context())
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

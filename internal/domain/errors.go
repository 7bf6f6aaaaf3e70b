package domain

import (
	"errors"
	"fmt"
)

// Доменные ошибки. Конкретные "not found" оборачивают ErrNotFound,
// поэтому errors.Is(err, ErrNotFound) срабатывает для любой из них.
var (
	// ErrNotFound возвращается когда ресурс или цепочка принадлежности не найдены
	ErrNotFound = errors.New("not found")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	// ErrTeamNotFound возвращается когда команда не найдена
	ErrTeamNotFound = fmt.Errorf("team %w", ErrNotFound)

	// ErrProjectNotFound возвращается когда проект не найден
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)

	// ErrTaskNotFound возвращается когда задача не найдена
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)

	// ErrForbidden возвращается когда у пользователя нет нужной роли
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidAssignment возвращается при назначении задачи не участнику команды
	ErrInvalidAssignment = errors.New("cannot assign task to non-team member")

	// ErrAlreadyMember возвращается при повторном приглашении участника
	ErrAlreadyMember = errors.New("user is already a team member")

	// ErrCannotRemoveCreator возвращается при попытке исключить создателя команды
	ErrCannotRemoveCreator = errors.New("cannot remove team creator")

	// ErrValidation возвращается когда данные запроса не прошли проверку
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken возвращается при регистрации с уже занятым email
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeNotFound            ErrorCode = "NOT_FOUND"             // Ресурс не найден
	CodeForbidden           ErrorCode = "FORBIDDEN"             // Недостаточно прав
	CodeInvalidAssignment   ErrorCode = "INVALID_ASSIGNMENT"    // Исполнитель не участник команды
	CodeAlreadyMember       ErrorCode = "ALREADY_MEMBER"        // Пользователь уже в команде
	CodeCannotRemoveCreator ErrorCode = "CANNOT_REMOVE_CREATOR" // Создателя нельзя исключить
	CodeValidationFailed    ErrorCode = "VALIDATION_FAILED"     // Ошибка валидации
	CodeEmailTaken          ErrorCode = "EMAIL_TAKEN"           // Email уже занят
	CodeUnauthorized        ErrorCode = "UNAUTHORIZED"          // Требуется аутентификация
	CodeInternal            ErrorCode = "INTERNAL_ERROR"        // Непредвиденная ошибка
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrInvalidAssignment):
		return CodeInvalidAssignment
	case errors.Is(err, ErrAlreadyMember):
		return CodeAlreadyMember
	case errors.Is(err, ErrCannotRemoveCreator):
		return CodeCannotRemoveCreator
	case errors.Is(err, ErrValidation):
		return CodeValidationFailed
	case errors.Is(err, ErrEmailTaken):
		return CodeEmailTaken
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrInvalidCredentials):
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}

package apperr

import (
	"errors"
	"net/http"
)

// Kind — закрытый набор видов ошибок доменного слоя.
// HTTP-слой сам решает, каким статусом их отдавать.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthorized
	KindBadRequest
	KindUnprocessable
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error      { return New(KindNotFound, message) }
func Conflict(message string) *Error      { return New(KindConflict, message) }
func Forbidden(message string) *Error     { return New(KindForbidden, message) }
func Unauthorized(message string) *Error  { return New(KindUnauthorized, message) }
func BadRequest(message string) *Error    { return New(KindBadRequest, message) }
func Unprocessable(message string) *Error { return New(KindUnprocessable, message) }
func Internal(message string) *Error      { return New(KindInternal, message) }

// KindOf возвращает вид ошибки; всё, что не *Error — internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusCode переводит вид ошибки в HTTP-статус.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Forbidden("x"), http.StatusForbidden},
		{Unauthorized("x"), http.StatusUnauthorized},
		{BadRequest("x"), http.StatusBadRequest},
		{Unprocessable("x"), http.StatusUnprocessableEntity},
		{Internal("x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Errorf("StatusCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("saving chat: %w", Conflict("chat already exists"))
	if got := KindOf(wrapped); got != KindConflict {
		t.Errorf("KindOf(wrapped) = %v, want KindConflict", got)
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("user not found")
	if err.Error() != "user not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}

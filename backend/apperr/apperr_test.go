package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("op", "field %s is required", "nombre"), http.StatusBadRequest},
		{"date", DateFormat("op", "invalid date format", errors.New("parse")), http.StatusBadRequest},
		{"conflict", Conflict("op", "duplicate"), http.StatusBadRequest},
		{"not found", NotFound("op", "missing"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("outer: %w", NotFound("op", "missing")), http.StatusNotFound},
		{"internal", Internal("op", errors.New("boom")), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "field nombre is required", Validation("op", "field %s is required", "nombre").Error())
	assert.Equal(t, "boom", Internal("op", errors.New("boom")).Error())
	assert.Equal(t, "not found", (&Error{Kind: ErrNotFound}).Error())
}

func TestWrap(t *testing.T) {
	nf := NotFound("op", "missing")
	assert.Same(t, nf, Wrap("other", nf))

	err := Wrap("progress.Get", gorm.ErrInvalidTransaction)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, gorm.ErrInvalidTransaction)
	assert.Nil(t, Wrap("op", nil))
}

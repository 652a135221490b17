package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := New(KindValidation, CodeInvalidField, "year: not a number")
	assert.Equal(t, "[INVALID_FIELD] year: not a number", err.Error())

	wrapped := Wrap(KindInternal, CodeDataSource, "failed to load census rows", fmt.Errorf("connection refused"))
	assert.Equal(t, "[DATA_SOURCE_FAILURE] failed to load census rows: connection refused", wrapped.Error())
}

func TestError_UnwrapAndIs(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := fmt.Errorf("projecting: %w", Wrap(KindInternal, CodeDataSource, "read failed", cause))

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, New(KindInternal, CodeDataSource, "")))
	assert.False(t, errors.Is(err, New(KindInternal, CodeInternal, "")))
}

func TestEmptyMatch(t *testing.T) {
	err := EmptyMatch([]int64{7, 9})

	assert.True(t, IsEmptyMatch(err))
	assert.Equal(t, CodeEmptyMatch, CodeOf(err))
	assert.Equal(t, []int64{7, 9}, err.Details["subdistrict_codes"])
}

func TestMissingField(t *testing.T) {
	err := MissingField("start_year", "end_year")

	assert.True(t, IsValidation(err))
	assert.Equal(t, "[MISSING_REQUIRED_FIELD] missing required field: start_year, end_year", err.Error())
	assert.Equal(t, []string{"start_year", "end_year"}, err.Details["fields"])
}

func TestWithDetails_DoesNotMutateOriginal(t *testing.T) {
	base := New(KindNotFound, CodeNotFound, "state not found")
	withDetails := base.WithDetails(map[string]interface{}{"state_code": 9})

	assert.Nil(t, base.Details)
	assert.Equal(t, 9, withDetails.Details["state_code"])
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", MissingField("year"), http.StatusBadRequest},
		{"empty match", EmptyMatch(nil), http.StatusUnprocessableEntity},
		{"not found", New(KindNotFound, CodeNotFound, "x"), http.StatusNotFound},
		{"internal", Wrap(KindInternal, CodeDataSource, "x", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
}

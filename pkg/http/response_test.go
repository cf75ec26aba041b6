package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "mentorbooking/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_StatusAndBody(t *testing.T) {
	sentinel := errors.New("time slot already booked")

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantReason  string
	}{
		{
			name:        "not found",
			err:         apperrors.NotFoundWithID("Mentor", "m-1").WithReason("MENTOR_NOT_FOUND", nil),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Mentor not found",
			wantReason:  "MENTOR_NOT_FOUND",
		},
		{
			name:        "business rule",
			err:         apperrors.BusinessRule("Time slot already booked").WithReason("TIME_SLOT_ALREADY_BOOKED", sentinel),
			wantStatus:  http.StatusConflict,
			wantMessage: "Time slot already booked",
			wantReason:  "TIME_SLOT_ALREADY_BOOKED",
		},
		{
			name:        "wrapped app error",
			err:         fmt.Errorf("outer: %w", apperrors.Forbidden("Only the student who booked can cancel")),
			wantStatus:  http.StatusForbidden,
			wantMessage: "Only the student who booked can cancel",
		},
		{
			name:        "internal hides cause",
			err:         apperrors.Internal("Failed to read mentors collection", errors.New("dial tcp 10.0.0.1")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
		{
			name:        "plain error",
			err:         errors.New("anything"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, WriteError(rec, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Error)
			assert.Equal(t, tt.wantReason, body.Reason)
			assert.NotContains(t, rec.Body.String(), "dial tcp")
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/mentors?experience=3&skills=aws,%20nodejs,,", nil)

	exp, err := QueryInt(r, "experience")
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.Equal(t, 3, *exp)

	assert.Equal(t, []string{"aws", "nodejs"}, QueryList(r, "skills"))
	assert.Nil(t, QueryList(r, "missing"))

	missing, err := QueryInt(r, "missing")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	bad := httptest.NewRequest(http.MethodGet, "/api/v1/mentors?experience=three", nil)
	_, err = QueryInt(bad, "experience")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}

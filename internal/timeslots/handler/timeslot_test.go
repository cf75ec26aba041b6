package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mentorbooking/pkg/errors"
	httputil "mentorbooking/pkg/http"
	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/model"
)

type mockTimeSlotService struct {
	getActiveFunc func(ctx context.Context, mentorID string) ([]*model.TimeSlot, error)
}

func (m *mockTimeSlotService) GetActiveByMentorID(ctx context.Context, mentorID string) ([]*model.TimeSlot, error) {
	return m.getActiveFunc(ctx, mentorID)
}

func serve(svc *mockTimeSlotService, path string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewTimeSlotHandler(svc, logger.NewNop()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetActiveByMentorID(t *testing.T) {
	svc := &mockTimeSlotService{
		getActiveFunc: func(ctx context.Context, mentorID string) ([]*model.TimeSlot, error) {
			return []*model.TimeSlot{
				{ID: "s-1", MentorID: mentorID},
				{ID: "s-2", MentorID: mentorID},
			}, nil
		},
	}

	rec := serve(svc, "/api/v1/mentors/m-1/timeslots")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data  []model.TimeSlot `json:"data"`
		Count int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "m-1", body.Data[0].MentorID)
}

func TestGetActiveByMentorID_MentorAbsent(t *testing.T) {
	svc := &mockTimeSlotService{
		getActiveFunc: func(ctx context.Context, mentorID string) ([]*model.TimeSlot, error) {
			return nil, apperrors.NotFoundWithID("Mentor", mentorID).WithReason("MENTOR_NOT_FOUND", nil)
		},
	}

	rec := serve(svc, "/api/v1/mentors/m-9/timeslots")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "MENTOR_NOT_FOUND", body.Reason)
}

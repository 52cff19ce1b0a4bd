package get_upcoming_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimeslotService/internal/service/availability"
	"github.com/m04kA/SMC-TimeslotService/internal/service/availability/models"
	"github.com/m04kA/SMC-TimeslotService/pkg/logger"
)

type fakeService struct {
	got  *models.ListRequest
	resp *models.TimeslotListResponse
	err  error
}

func (f *fakeService) ListUpcoming(_ context.Context, req *models.ListRequest) (*models.TimeslotListResponse, error) {
	f.got = req
	return f.resp, f.err
}

func serve(t *testing.T, svc *fakeService, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/forms/{formId}/timeslots",
		NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelError)).Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_ReturnsFullSlots(t *testing.T) {
	formID := uuid.New()
	capacity := 1
	svc := &fakeService{resp: &models.TimeslotListResponse{
		Timeslots: []models.TimeslotResponse{{ID: uuid.New(), FormID: formID, Capacity: &capacity, BookedCount: 1, IsFull: true}},
		Limit:     100,
	}}

	w := serve(t, svc, "/forms/"+formID.String()+"/timeslots")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, formID, svc.got.FormID)
	assert.Nil(t, svc.got.Limit)

	var resp models.TimeslotListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Timeslots, 1)
	assert.True(t, resp.Timeslots[0].IsFull)
}

func TestHandle_Errors(t *testing.T) {
	formID := uuid.NewString()

	tests := []struct {
		name       string
		target     string
		svcErr     error
		wantStatus int
	}{
		{"некорректный id", "/forms/abc/timeslots", nil, http.StatusBadRequest},
		{"некорректный offset", "/forms/" + formID + "/timeslots?offset=x", nil, http.StatusBadRequest},
		{"форма не найдена", "/forms/" + formID + "/timeslots", fmt.Errorf("%w: form", availability.ErrFormNotFound), http.StatusNotFound},
		{"пустой диапазон", "/forms/" + formID + "/timeslots", fmt.Errorf("%w: range", availability.ErrInvalidTimeRange), http.StatusBadRequest},
		{"внутренняя ошибка", "/forms/" + formID + "/timeslots", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, &fakeService{err: tt.svcErr}, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	"github.com/m04kA/SMC-TimeslotService/internal/service/availability"
	"github.com/m04kA/SMC-TimeslotService/internal/service/availability/models"
	"github.com/m04kA/SMC-TimeslotService/pkg/logger"
)

type fakeService struct {
	got  *models.ListRequest
	resp *models.TimeslotListResponse
	err  error
}

func (f *fakeService) ListAvailable(_ context.Context, req *models.ListRequest) (*models.TimeslotListResponse, error) {
	f.got = req
	return f.resp, f.err
}

func serve(t *testing.T, svc *fakeService, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/forms/{formId}/timeslots/available",
		NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelError)).Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_Success(t *testing.T) {
	formID := uuid.New()
	svc := &fakeService{resp: &models.TimeslotListResponse{
		Timeslots: []models.TimeslotResponse{{ID: uuid.New(), FormID: formID}},
		Limit:     10,
		Offset:    5,
	}}

	w := serve(t, svc, "/forms/"+formID.String()+
		"/timeslots/available?from=2026-10-05T10:00:00%2B03:00&to=2026-10-06T00:00:00Z&limit=10&offset=5")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, formID, svc.got.FormID)
	require.NotNil(t, svc.got.From)
	assert.Equal(t, time.Date(2026, time.October, 5, 7, 0, 0, 0, time.UTC), *svc.got.From)
	assert.Equal(t, 10, *svc.got.Limit)
	assert.Equal(t, 5, *svc.got.Offset)

	var resp models.TimeslotListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Timeslots, 1)
}

func TestHandle_Errors(t *testing.T) {
	formID := uuid.NewString()

	tests := []struct {
		name       string
		target     string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"некорректный id", "/forms/abc/timeslots/available", nil, http.StatusBadRequest, handlers.CodeInvalidInput},
		{"некорректный from", "/forms/" + formID + "/timeslots/available?from=yesterday", nil, http.StatusBadRequest, handlers.CodeInvalidInput},
		{"некорректный limit", "/forms/" + formID + "/timeslots/available?limit=ten", nil, http.StatusBadRequest, handlers.CodeInvalidInput},
		{"форма не найдена", "/forms/" + formID + "/timeslots/available", fmt.Errorf("%w: form", availability.ErrFormNotFound), http.StatusNotFound, handlers.CodeNotFound},
		{"пустой диапазон", "/forms/" + formID + "/timeslots/available", fmt.Errorf("%w: range", availability.ErrInvalidTimeRange), http.StatusBadRequest, handlers.CodeInvalidInput},
		{"некорректная пагинация", "/forms/" + formID + "/timeslots/available", fmt.Errorf("%w: limit", availability.ErrInvalidInput), http.StatusBadRequest, handlers.CodeInvalidInput},
		{"внутренняя ошибка", "/forms/" + formID + "/timeslots/available", errors.New("db down"), http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, &fakeService{err: tt.svcErr}, tt.target)

			require.Equal(t, tt.wantStatus, w.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

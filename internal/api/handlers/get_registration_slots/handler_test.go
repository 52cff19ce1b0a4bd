package get_registration_slots

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	"github.com/m04kA/SMC-TimeslotService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TimeslotService/pkg/logger"
)

type fakeService struct {
	got  uuid.UUID
	resp *models.RegistrationTimeslotsResponse
	err  error
}

func (f *fakeService) GetRegistrationTimeslots(_ context.Context, registrationID uuid.UUID) (*models.RegistrationTimeslotsResponse, error) {
	f.got = registrationID
	return f.resp, f.err
}

func serve(t *testing.T, svc *fakeService, registrationID string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/registrations/{registrationId}/timeslots",
		NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelError)).Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registrations/"+registrationID+"/timeslots", nil))
	return w
}

func TestHandle_Success(t *testing.T) {
	regID, slotID := uuid.New(), uuid.New()
	svc := &fakeService{resp: &models.RegistrationTimeslotsResponse{
		RegistrationID: regID,
		Timeslots:      []models.BookedTimeslotResponse{{TimeslotID: slotID}},
	}}

	w := serve(t, svc, regID.String())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, regID, svc.got)

	var resp models.RegistrationTimeslotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Timeslots, 1)
	assert.Equal(t, slotID, resp.Timeslots[0].TimeslotID)
}

func TestHandle_InvalidRegistrationID(t *testing.T) {
	w := serve(t, &fakeService{}, "not-a-uuid")

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, handlers.CodeInvalidInput, body.Code)
}

func TestHandle_ServiceError(t *testing.T) {
	w := serve(t, &fakeService{err: errors.New("db down")}, uuid.NewString())

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, handlers.CodeInternal, body.Code)
}

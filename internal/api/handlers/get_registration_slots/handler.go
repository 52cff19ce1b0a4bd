package get_registration_slots

import (
	"net/http"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
)

const msgInvalidRegistrationID = "некорректный ID регистрации"

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/registrations/{registrationId}/timeslots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	registrationID, err := handlers.PathUUID(r, "registrationId")
	if err != nil {
		h.logger.Warn("GET /registrations/{id}/timeslots - Invalid registration ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRegistrationID)
		return
	}

	result, err := h.service.GetRegistrationTimeslots(r.Context(), registrationID)
	if err != nil {
		h.logger.Error("GET /registrations/{id}/timeslots - Failed to get slots: registration_id=%s, error=%v", registrationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /registrations/{id}/timeslots - Slots retrieved: registration_id=%s, count=%d",
		registrationID, len(result.Timeslots))
	handlers.RespondJSON(w, http.StatusOK, result)
}

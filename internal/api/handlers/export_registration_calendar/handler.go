package export_registration_calendar

import (
	"fmt"
	"net/http"
	"time"

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

// Handle GET /api/v1/registrations/{registrationId}/timeslots.ics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	registrationID, err := handlers.PathUUID(r, "registrationId")
	if err != nil {
		h.logger.Warn("GET /registrations/{id}/timeslots.ics - Invalid registration ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRegistrationID)
		return
	}

	body, err := h.service.ExportCalendar(r.Context(), registrationID, time.Now())
	if err != nil {
		h.logger.Error("GET /registrations/{id}/timeslots.ics - Failed to export: registration_id=%s, error=%v", registrationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /registrations/{id}/timeslots.ics - Calendar exported: registration_id=%s", registrationID)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", registrationID.String()+".ics"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

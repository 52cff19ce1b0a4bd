package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	"github.com/m04kA/SMC-TimeslotService/internal/service/availability"
)

const (
	msgInvalidFormID    = "некорректный ID формы"
	msgInvalidQuery     = "некорректные параметры запроса"
	msgInvalidTimeRange = "некорректный диапазон: from должен быть раньше to"
	msgFormNotFound     = "форма не найдена"
)

type Handler struct {
	service AvailableSlotsService
	logger  Logger
}

func NewHandler(service AvailableSlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/forms/{formId}/timeslots/available
// Свободные слоты формы. Query params: from, to (RFC3339), limit, offset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	formID, err := handlers.PathUUID(r, "formId")
	if err != nil {
		h.logger.Warn("GET /forms/{id}/timeslots/available - Invalid form ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormID)
		return
	}

	query, err := handlers.ParseListQuery(r)
	if err != nil {
		h.logger.Warn("GET /forms/{id}/timeslots/available - Invalid query: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidQuery, err.Error())
		return
	}

	result, err := h.service.ListAvailable(r.Context(), ToServiceRequest(formID, query))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrFormNotFound):
			h.logger.Warn("GET /forms/{id}/timeslots/available - Form not found: form_id=%s", formID)
			handlers.RespondNotFound(w, msgFormNotFound)

		case errors.Is(err, availability.ErrInvalidTimeRange):
			h.logger.Warn("GET /forms/{id}/timeslots/available - Invalid range: form_id=%s", formID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /forms/{id}/timeslots/available - Invalid pagination: form_id=%s, error=%v", formID, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidQuery, err.Error())

		default:
			h.logger.Error("GET /forms/{id}/timeslots/available - Failed to list slots: form_id=%s, error=%v", formID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /forms/{id}/timeslots/available - Slots retrieved: form_id=%s, count=%d", formID, len(result.Timeslots))
	handlers.RespondJSON(w, http.StatusOK, result)
}

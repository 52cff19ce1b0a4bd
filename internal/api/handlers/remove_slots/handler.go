package remove_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	removeSlots "github.com/m04kA/SMC-TimeslotService/internal/usecase/remove_slots"
)

const (
	msgInvalidFormID      = "некорректный ID формы"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRemovalSpec = "некорректная спецификация удаления"
	msgInvalidTimeZone    = "неизвестный часовой пояс"
	msgFormNotFound       = "форма не найдена"
	msgFormArchived       = "форма в архиве, изменение слотов запрещено"
)

type Handler struct {
	useCase RemoveSlotsUseCase
	logger  Logger
}

func NewHandler(useCase RemoveSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/forms/{formId}/timeslots/remove
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	formID, err := handlers.PathUUID(r, "formId")
	if err != nil {
		h.logger.Warn("POST /forms/{id}/timeslots/remove - Invalid form ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormID)
		return
	}

	var req RemovalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /forms/{id}/timeslots/remove - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(formID)
	if err != nil {
		h.logger.Warn("POST /forms/{id}/timeslots/remove - Failed to parse removal request: form_id=%s, error=%v", formID, err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRemovalSpec, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, removeSlots.ErrInvalidRemovalSpec), errors.Is(err, removeSlots.ErrInvalidInput):
			h.logger.Warn("POST /forms/{id}/timeslots/remove - Invalid removal request: form_id=%s, error=%v", formID, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRemovalSpec, err.Error())

		case errors.Is(err, removeSlots.ErrInvalidTimeZone):
			h.logger.Warn("POST /forms/{id}/timeslots/remove - Invalid time zone: form_id=%s, error=%v", formID, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidTimeZone, err.Error())

		case errors.Is(err, removeSlots.ErrFormNotFound):
			h.logger.Warn("POST /forms/{id}/timeslots/remove - Form not found: form_id=%s", formID)
			handlers.RespondNotFound(w, msgFormNotFound)

		case errors.Is(err, removeSlots.ErrFormArchived):
			h.logger.Warn("POST /forms/{id}/timeslots/remove - Form archived: form_id=%s", formID)
			handlers.RespondConflict(w, msgFormArchived, nil)

		default:
			h.logger.Error("POST /forms/{id}/timeslots/remove - Failed to remove slots: form_id=%s, error=%v", formID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /forms/{id}/timeslots/remove - Slots removed: form_id=%s, removed=%d, skipped_booked=%d",
		formID, result.RemovedCount, result.SkippedBookedCount)
	handlers.RespondJSON(w, http.StatusOK, RemovalResponse{
		RemovedCount:       result.RemovedCount,
		SkippedBookedCount: result.SkippedBookedCount,
	})
}

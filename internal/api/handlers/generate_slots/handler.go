package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	generateSlots "github.com/m04kA/SMC-TimeslotService/internal/usecase/generate_slots"
)

const (
	msgInvalidFormID       = "некорректный ID формы"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidSchedule     = "некорректное расписание"
	msgInvalidTimeZone     = "неизвестный часовой пояс"
	msgFormNotFound        = "форма не найдена"
	msgFormArchived        = "форма в архиве, изменение слотов запрещено"
	msgCapacityMismatch    = "вместимость не совпадает с уже созданными слотами"
	msgTimeslotCapExceeded = "превышен лимит слотов формы"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/forms/{formId}/timeslots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	formID, err := handlers.PathUUID(r, "formId")
	if err != nil {
		h.logger.Warn("POST /forms/{id}/timeslots - Invalid form ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormID)
		return
	}

	var req ScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /forms/{id}/timeslots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(formID)
	if err != nil {
		h.logger.Warn("POST /forms/{id}/timeslots - Failed to parse schedule: form_id=%s, error=%v", formID, err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidSchedule, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var (
			mismatch *generateSlots.CapacityMismatchError
			exceeded *generateSlots.CapExceededError
		)

		switch {
		case errors.Is(err, generateSlots.ErrInvalidSchedule), errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /forms/{id}/timeslots - Invalid schedule: form_id=%s, error=%v", formID, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidSchedule, err.Error())

		case errors.Is(err, generateSlots.ErrInvalidTimeZone):
			h.logger.Warn("POST /forms/{id}/timeslots - Invalid time zone: form_id=%s, error=%v", formID, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidTimeZone, err.Error())

		case errors.Is(err, generateSlots.ErrFormNotFound):
			h.logger.Warn("POST /forms/{id}/timeslots - Form not found: form_id=%s", formID)
			handlers.RespondNotFound(w, msgFormNotFound)

		case errors.Is(err, generateSlots.ErrFormArchived):
			h.logger.Warn("POST /forms/{id}/timeslots - Form archived: form_id=%s", formID)
			handlers.RespondConflict(w, msgFormArchived, nil)

		case errors.As(err, &mismatch):
			h.logger.Warn("POST /forms/{id}/timeslots - Capacity mismatch: form_id=%s", formID)
			handlers.RespondConflict(w, msgCapacityMismatch, CapacityMismatchDetails{
				ExistingCapacity:  mismatch.Existing,
				RequestedCapacity: mismatch.Requested,
			})

		case errors.As(err, &exceeded):
			h.logger.Warn("POST /forms/{id}/timeslots - Timeslot cap exceeded: form_id=%s", formID)
			handlers.RespondConflict(w, msgTimeslotCapExceeded, CapExceededDetails{
				Existing: exceeded.Existing,
				New:      exceeded.New,
				Limit:    exceeded.Limit,
			})

		default:
			h.logger.Error("POST /forms/{id}/timeslots - Failed to generate slots: form_id=%s, error=%v", formID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /forms/{id}/timeslots - Slots generated: form_id=%s, added=%d, skipped=%d",
		formID, result.AddedCount, result.SkippedExistingCount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// CapacityMismatchDetails диагностика CapacityMismatch
type CapacityMismatchDetails struct {
	ExistingCapacity  *int `json:"existingCapacity"`
	RequestedCapacity *int `json:"requestedCapacity"`
}

// CapExceededDetails диагностика превышения лимита
type CapExceededDetails struct {
	Existing int `json:"existing"`
	New      int `json:"new"`
	Limit    int `json:"limit"`
}

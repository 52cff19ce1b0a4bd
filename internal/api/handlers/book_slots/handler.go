package book_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	bookSlots "github.com/m04kA/SMC-TimeslotService/internal/usecase/book_slots"
)

const (
	msgInvalidRegistrationID = "некорректный ID регистрации"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "список слотов пуст или содержит некорректный ID"
	msgBookingConflict       = "часть выбранных слотов недоступна, обновите список и выберите снова"
)

type Handler struct {
	useCase BookSlotsUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/registrations/{registrationId}/timeslots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	registrationID, err := handlers.PathUUID(r, "registrationId")
	if err != nil {
		h.logger.Warn("POST /registrations/{id}/timeslots - Invalid registration ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRegistrationID)
		return
	}

	var req BookSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /registrations/{id}/timeslots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(registrationID))
	if err != nil {
		var conflict *bookSlots.ConflictError

		switch {
		case errors.Is(err, bookSlots.ErrInvalidInput):
			h.logger.Warn("POST /registrations/{id}/timeslots - Invalid input: registration_id=%s, error=%v", registrationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.As(err, &conflict):
			h.logger.Warn("POST /registrations/{id}/timeslots - Booking conflict: registration_id=%s, %v", registrationID, err)
			handlers.RespondConflict(w, msgBookingConflict, FromConflict(conflict))

		case errors.Is(err, bookSlots.ErrBookingConflict):
			h.logger.Warn("POST /registrations/{id}/timeslots - Booking conflict: registration_id=%s, %v", registrationID, err)
			handlers.RespondConflict(w, msgBookingConflict, nil)

		default:
			h.logger.Error("POST /registrations/{id}/timeslots - Failed to book slots: registration_id=%s, error=%v", registrationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /registrations/{id}/timeslots - Slots booked: registration_id=%s, count=%d",
		registrationID, len(result.BookedIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package remove_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	formRepo "github.com/m04kA/SMC-TimeslotService/internal/infra/storage/form"
	"github.com/m04kA/SMC-TimeslotService/internal/schedule"
	"github.com/m04kA/SMC-TimeslotService/internal/timezone"
)

// UseCase use case удаления незанятых слотов по спецификации
type UseCase struct {
	formRepo     FormRepository
	timeslotRepo TimeslotRepository
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	formRepo FormRepository,
	timeslotRepo TimeslotRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		formRepo:     formRepo,
		timeslotRepo: timeslotRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute удаляет подходящие слоты с booked_count = 0.
// Занятые слоты не удаляются никогда и попадают в SkippedBookedCount.
// Судьба каждого слота независима: удаляется то, что безопасно удалить.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.FormID == uuid.Nil {
		uc.logger.Warn("RemoveSlots: form_id is required")
		return nil, fmt.Errorf("%w: form_id is required", ErrInvalidInput)
	}

	uc.logger.Info("RemoveSlots: form=%s, days=%v", req.FormID, req.Spec.DaysOfWeek)

	now := uc.timeProvider.Now()
	if req.Now != nil {
		now = *req.Now
	}

	// 1. Форма
	form, err := uc.formRepo.GetByID(ctx, req.FormID)
	if err != nil {
		if errors.Is(err, formRepo.ErrFormNotFound) {
			uc.logger.Warn("RemoveSlots: form id=%s not found", req.FormID)
			return nil, ErrFormNotFound
		}
		uc.logger.Error("RemoveSlots: failed to get form id=%s: %v", req.FormID, err)
		return nil, fmt.Errorf("%w: failed to get form: %v", ErrInternal, err)
	}
	if !form.AcceptsScheduleChanges() {
		uc.logger.Warn("RemoveSlots: form id=%s is %s", req.FormID, form.Status)
		return nil, ErrFormArchived
	}

	// 2. Границы и фильтр
	plan, err := schedule.PlanRemoval(req.Spec, form.ZoneName(), now)
	if err != nil {
		switch {
		case errors.Is(err, timezone.ErrInvalidTimeZone):
			uc.logger.Warn("RemoveSlots: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimeZone, err)
		case errors.Is(err, schedule.ErrInvalidRemovalSpec):
			uc.logger.Warn("RemoveSlots: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidRemovalSpec, err)
		default:
			uc.logger.Error("RemoveSlots: failed to plan removal: %v", err)
			return nil, fmt.Errorf("%w: plan removal: %v", ErrInternal, err)
		}
	}

	result := &Response{}

	// 3. Удаление с повторной проверкой занятости в самом DELETE
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		slots, err := uc.timeslotRepo.GetByFormInRange(txCtx, req.FormID, plan.FromUTC, plan.ToUTC)
		if err != nil {
			uc.logger.Error("RemoveSlots: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %w", ErrInternal, err)
		}

		removed, skipped := 0, 0
		for _, slot := range slots {
			if !plan.Matches(slot.StartAt) {
				continue
			}
			if slot.IsBooked() {
				skipped++
				continue
			}

			deleted, err := uc.timeslotRepo.DeleteIfUnbooked(txCtx, slot.ID)
			if err != nil {
				uc.logger.Error("RemoveSlots: failed to delete slot id=%s: %v", slot.ID, err)
				return fmt.Errorf("%w: failed to delete slot: %w", ErrInternal, err)
			}
			if deleted {
				removed++
			} else {
				// забронирован между чтением и удалением
				skipped++
			}
		}

		result.RemovedCount = removed
		result.SkippedBookedCount = skipped
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.AddTimeslotsRemoved(result.RemovedCount)
	uc.logger.Info("RemoveSlots: form=%s, removed=%d, skipped_booked=%d",
		req.FormID, result.RemovedCount, result.SkippedBookedCount)

	return result, nil
}

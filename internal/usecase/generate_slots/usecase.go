package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	formRepo "github.com/m04kA/SMC-TimeslotService/internal/infra/storage/form"
	"github.com/m04kA/SMC-TimeslotService/internal/schedule"
	"github.com/m04kA/SMC-TimeslotService/internal/timezone"
	"github.com/m04kA/SMC-TimeslotService/pkg/ptr"
)

// UseCase use case генерации слотов формы по недельному расписанию
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

// Execute разворачивает расписание и добавляет недостающие слоты.
// Повторный вызов с тем же расписанием ничего не вставляет.
// Проверки вместимости и лимита выполняются в одной транзакции со вставкой:
// при нарушении не создается ни одного слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GenerateSlots: form=%s, days=%v, window=%s-%s, slot=%dm, weeks=%d",
		req.FormID, req.Schedule.DaysOfWeek, req.Schedule.WindowStart, req.Schedule.WindowEnd,
		req.Schedule.SlotMinutes, req.Schedule.WeeksAhead)

	now := uc.timeProvider.Now()
	if req.Now != nil {
		now = *req.Now
	}

	// 1. Форма
	form, err := uc.formRepo.GetByID(ctx, req.FormID)
	if err != nil {
		if errors.Is(err, formRepo.ErrFormNotFound) {
			uc.logger.Warn("GenerateSlots: form id=%s not found", req.FormID)
			return nil, ErrFormNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get form id=%s: %v", req.FormID, err)
		return nil, fmt.Errorf("%w: failed to get form: %v", ErrInternal, err)
	}
	if !form.AcceptsScheduleChanges() {
		uc.logger.Warn("GenerateSlots: form id=%s is %s", req.FormID, form.Status)
		return nil, ErrFormArchived
	}

	// 2. Кандидаты
	candidates, err := schedule.Expand(req.Schedule, form.ZoneName(), now)
	if err != nil {
		switch {
		case errors.Is(err, timezone.ErrInvalidTimeZone):
			uc.logger.Warn("GenerateSlots: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimeZone, err)
		case errors.Is(err, schedule.ErrInvalidSchedule):
			uc.logger.Warn("GenerateSlots: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		default:
			uc.logger.Error("GenerateSlots: failed to expand schedule: %v", err)
			return nil, fmt.Errorf("%w: expand schedule: %v", ErrInternal, err)
		}
	}

	if len(candidates) == 0 {
		uc.logger.Info("GenerateSlots: form=%s, schedule produced no future slots", req.FormID)
		return &Response{Timeslots: []*domain.Timeslot{}}, nil
	}

	var result *Response

	// 3. Дифф с существующими слотами и вставка
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		from, to := candidatesRange(candidates)
		existing, err := uc.timeslotRepo.GetByFormInRange(txCtx, req.FormID, from, to)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to get existing slots: %v", err)
			return fmt.Errorf("%w: failed to get existing slots: %w", ErrInternal, err)
		}

		fresh, skipped := splitExisting(candidates, existing)

		count, err := uc.timeslotRepo.CountByForm(txCtx, req.FormID)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to count slots: %v", err)
			return fmt.Errorf("%w: failed to count slots: %w", ErrInternal, err)
		}

		if count > 0 {
			capacity, exists, err := uc.timeslotRepo.GetFormCapacity(txCtx, req.FormID)
			if err != nil {
				uc.logger.Error("GenerateSlots: failed to get form capacity: %v", err)
				return fmt.Errorf("%w: failed to get form capacity: %w", ErrInternal, err)
			}
			if exists && !ptr.Equal(capacity, req.Schedule.CapacityPerSlot) {
				mismatch := &CapacityMismatchError{Existing: capacity, Requested: req.Schedule.CapacityPerSlot}
				uc.logger.Warn("GenerateSlots: form=%s: %v", req.FormID, mismatch)
				return mismatch
			}
		}

		if count+len(fresh) > domain.MaxTimeslotsPerForm {
			exceeded := &CapExceededError{Existing: count, New: len(fresh), Limit: domain.MaxTimeslotsPerForm}
			uc.logger.Warn("GenerateSlots: form=%s: %v", req.FormID, exceeded)
			return exceeded
		}

		slots := make([]*domain.Timeslot, 0, len(fresh))
		for _, w := range fresh {
			slots = append(slots, &domain.Timeslot{
				ID:        uuid.New(),
				FormID:    req.FormID,
				StartAt:   w.StartAt,
				EndAt:     w.EndAt,
				Capacity:  req.Schedule.CapacityPerSlot,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}

		inserted, err := uc.timeslotRepo.CreateBatch(txCtx, slots)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to insert slots: %v", err)
			return fmt.Errorf("%w: failed to insert slots: %w", ErrInternal, err)
		}

		// Параллельная генерация могла вставить часть окон раньше нас
		if inserted < len(slots) {
			slots, err = uc.reloadInserted(txCtx, req.FormID, from, to, slots)
			if err != nil {
				return err
			}
		}

		result = &Response{
			AddedCount:           inserted,
			SkippedExistingCount: skipped + len(fresh) - inserted,
			Timeslots:            slots,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.AddTimeslotsGenerated(result.AddedCount)
	uc.logger.Info("GenerateSlots: form=%s, added=%d, skipped_existing=%d",
		req.FormID, result.AddedCount, result.SkippedExistingCount)

	return result, nil
}

// reloadInserted оставляет из attempted только реально сохраненные строки
func (uc *UseCase) reloadInserted(
	ctx context.Context,
	formID uuid.UUID,
	from, to time.Time,
	attempted []*domain.Timeslot,
) ([]*domain.Timeslot, error) {
	stored, err := uc.timeslotRepo.GetByFormInRange(ctx, formID, from, to)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to reload slots: %v", err)
		return nil, fmt.Errorf("%w: failed to reload slots: %w", ErrInternal, err)
	}

	ids := make(map[uuid.UUID]bool, len(attempted))
	for _, s := range attempted {
		ids[s.ID] = true
	}

	result := make([]*domain.Timeslot, 0, len(attempted))
	for _, s := range stored {
		if ids[s.ID] {
			result = append(result, s)
		}
	}
	return result, nil
}

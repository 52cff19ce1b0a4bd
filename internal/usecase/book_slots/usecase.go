package book_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TimeslotService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TimeslotService/pkg/dberrors"
	"github.com/m04kA/SMC-TimeslotService/pkg/metrics"
)

// UseCase атомарное бронирование набора слотов для регистрации
type UseCase struct {
	timeslotRepo TimeslotRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
	opts         Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	timeslotRepo TimeslotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
	opts Options,
) *UseCase {
	return &UseCase{
		timeslotRepo: timeslotRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		opts:         opts.withDefaults(),
	}
}

// Execute бронирует все слоты или ни одного.
// Строки слотов блокируются в порядке id до конца транзакции, поэтому
// конкурирующие вызовы за последнее место получают ровно один успех.
// Временные ошибки хранилища (дедлок, сериализация, ожидание блокировки)
// повторяются до opts.MaxAttempts раз; логический конфликт не повторяется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ids, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("BookSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("BookSlots: registration=%s, timeslots=%d", req.RegistrationID, len(ids))

	var lastErr error
	for attempt := 1; attempt <= uc.opts.MaxAttempts; attempt++ {
		resp, err := uc.attempt(ctx, req.RegistrationID, ids)
		if err == nil {
			uc.metrics.IncBookingOutcome(metrics.BookingOutcomeSuccess)
			uc.logger.Info("BookSlots: registration=%s, booked=%d", req.RegistrationID, len(resp.BookedIDs))
			return resp, nil
		}

		if errors.Is(err, ErrBookingConflict) {
			uc.metrics.IncBookingOutcome(metrics.BookingOutcomeConflict)
			uc.logger.Warn("BookSlots: registration=%s: %v", req.RegistrationID, err)
			return nil, err
		}

		if !dberrors.IsRetryable(err) {
			uc.metrics.IncBookingOutcome(metrics.BookingOutcomeError)
			uc.logger.Error("BookSlots: registration=%s: %v", req.RegistrationID, err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}

		lastErr = err
		if attempt == uc.opts.MaxAttempts {
			break
		}

		uc.metrics.IncBookingOutcome(metrics.BookingOutcomeRetry)
		uc.logger.Warn("BookSlots: registration=%s, attempt %d/%d failed, retrying: %v",
			req.RegistrationID, attempt, uc.opts.MaxAttempts, err)

		if err := sleep(ctx, uc.opts.RetryBackoff*time.Duration(attempt)); err != nil {
			uc.metrics.IncBookingOutcome(metrics.BookingOutcomeError)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	// Ожидание блокировки так и не дождалось: слоты держат другие брони
	if dberrors.IsLockTimeout(lastErr) {
		uc.metrics.IncBookingOutcome(metrics.BookingOutcomeConflict)
		uc.logger.Warn("BookSlots: registration=%s, lock wait exhausted after %d attempts: %v",
			req.RegistrationID, uc.opts.MaxAttempts, lastErr)
		return nil, fmt.Errorf("%w: timeslots are locked by concurrent bookings: %v", ErrBookingConflict, lastErr)
	}

	uc.metrics.IncBookingOutcome(metrics.BookingOutcomeError)
	uc.logger.Error("BookSlots: registration=%s, giving up after %d attempts: %v",
		req.RegistrationID, uc.opts.MaxAttempts, lastErr)
	return nil, fmt.Errorf("%w: %w", ErrInternal, lastErr)
}

// attempt одна транзакция бронирования
func (uc *UseCase) attempt(ctx context.Context, registrationID uuid.UUID, ids []uuid.UUID) (*Response, error) {
	now := uc.timeProvider.Now()

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем строки слотов
		locked, err := uc.timeslotRepo.LockByIDs(txCtx, ids)
		if err != nil {
			return fmt.Errorf("lock timeslots: %w", err)
		}

		// 2. Отсутствующие и заполненные
		conflict := &ConflictError{}
		found := make(map[uuid.UUID]bool, len(locked))
		for _, slot := range locked {
			found[slot.ID] = true
			if slot.IsFull() {
				conflict.FullIDs = append(conflict.FullIDs, slot.ID)
			}
		}
		for _, id := range ids {
			if !found[id] {
				conflict.MissingIDs = append(conflict.MissingIDs, id)
			}
		}

		// 3. Уже забронированные этой регистрацией
		held, err := uc.bookingRepo.GetHeldTimeslotIDs(txCtx, registrationID, ids)
		if err != nil {
			return fmt.Errorf("get held timeslots: %w", err)
		}
		conflict.AlreadyBookedIDs = held

		if !conflict.empty() {
			return conflict
		}

		// 4. Инкремент и записи бронирования
		updated, err := uc.timeslotRepo.IncrementBookedCount(txCtx, ids, now)
		if err != nil {
			return fmt.Errorf("increment booked count: %w", err)
		}
		if updated != len(ids) {
			return fmt.Errorf("capacity guard updated %d of %d locked timeslots", updated, len(ids))
		}

		bookings := make([]*domain.Booking, 0, len(ids))
		for _, id := range ids {
			bookings = append(bookings, &domain.Booking{
				ID:             uuid.New(),
				RegistrationID: registrationID,
				TimeslotID:     id,
				CreatedAt:      now,
			})
		}

		if err := uc.bookingRepo.CreateBatch(txCtx, bookings); err != nil {
			if errors.Is(err, bookingRepo.ErrAlreadyBooked) {
				return fmt.Errorf("%w: %v", ErrBookingConflict, err)
			}
			return fmt.Errorf("create bookings: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	booked := make([]uuid.UUID, len(ids))
	copy(booked, ids)
	return &Response{Success: true, BookedIDs: booked}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

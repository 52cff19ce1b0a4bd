package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/calendar"
	"github.com/m04kA/SMC-TimeslotService/internal/service/bookings/models"
)

// Service сервис чтения бронирований регистрации
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetRegistrationTimeslots слоты регистрации по возрастанию start_at.
// Существование регистрации не проверяется: неизвестная регистрация дает пустой список.
func (s *Service) GetRegistrationTimeslots(ctx context.Context, registrationID uuid.UUID) (*models.RegistrationTimeslotsResponse, error) {
	if registrationID == uuid.Nil {
		return nil, fmt.Errorf("%w: registration_id is required", ErrInvalidInput)
	}

	s.logger.Info("GetRegistrationTimeslots: fetching timeslots for registration=%s", registrationID)

	booked, err := s.bookingRepo.ListByRegistration(ctx, registrationID)
	if err != nil {
		s.logger.Error("GetRegistrationTimeslots: repository error for registration=%s: %v", registrationID, err)
		return nil, fmt.Errorf("%w: GetRegistrationTimeslots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRegistrationTimeslots: found %d timeslots for registration=%s", len(booked), registrationID)
	return &models.RegistrationTimeslotsResponse{
		RegistrationID: registrationID,
		Timeslots:      models.FromDomainBookedTimeslots(booked),
	}, nil
}

// ExportCalendar iCalendar со слотами регистрации
func (s *Service) ExportCalendar(ctx context.Context, registrationID uuid.UUID, now time.Time) (string, error) {
	if registrationID == uuid.Nil {
		return "", fmt.Errorf("%w: registration_id is required", ErrInvalidInput)
	}

	booked, err := s.bookingRepo.ListByRegistration(ctx, registrationID)
	if err != nil {
		s.logger.Error("ExportCalendar: repository error for registration=%s: %v", registrationID, err)
		return "", fmt.Errorf("%w: ExportCalendar - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ExportCalendar: exporting %d events for registration=%s", len(booked), registrationID)
	return calendar.Export(registrationID, booked, now), nil
}

package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	formRepo "github.com/m04kA/SMC-TimeslotService/internal/infra/storage/form"
	"github.com/m04kA/SMC-TimeslotService/internal/service/availability/models"
)

// Options ограничения пагинации
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Service чтение доступных и предстоящих слотов формы.
// Блокировок нет: бронирование перепроверяет слоты под блокировкой.
type Service struct {
	formRepo     FormRepository
	timeslotRepo TimeslotRepository
	timeProvider TimeProvider
	logger       Logger
	opts         Options
}

// NewService создает новый экземпляр сервиса
func NewService(
	formRepo FormRepository,
	timeslotRepo TimeslotRepository,
	logger Logger,
	opts Options,
) *Service {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = domain.DefaultPageLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = domain.MaxPageLimit
	}
	if opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = opts.MaxLimit
	}

	return &Service{
		formRepo:     formRepo,
		timeslotRepo: timeslotRepo,
		timeProvider: realTimeProvider{},
		logger:       logger,
		opts:         opts,
	}
}

// ListAvailable слоты с start_at >= now, у которых есть свободные места
func (s *Service) ListAvailable(ctx context.Context, req *models.ListRequest) (*models.TimeslotListResponse, error) {
	return s.list(ctx, "ListAvailable", req, true)
}

// ListUpcoming все слоты с start_at >= now, включая заполненные
func (s *Service) ListUpcoming(ctx context.Context, req *models.ListRequest) (*models.TimeslotListResponse, error) {
	return s.list(ctx, "ListUpcoming", req, false)
}

func (s *Service) list(ctx context.Context, op string, req *models.ListRequest, onlyAvailable bool) (*models.TimeslotListResponse, error) {
	s.logger.Info("%s: fetching timeslots for form=%s", op, req.FormID)

	filter, err := s.buildFilter(req, onlyAvailable)
	if err != nil {
		s.logger.Warn("%s: invalid request for form=%s: %v", op, req.FormID, err)
		return nil, err
	}

	if _, err := s.formRepo.GetByID(ctx, req.FormID); err != nil {
		if errors.Is(err, formRepo.ErrFormNotFound) {
			s.logger.Warn("%s: form id=%s not found", op, req.FormID)
			return nil, ErrFormNotFound
		}
		s.logger.Error("%s: failed to get form id=%s: %v", op, req.FormID, err)
		return nil, fmt.Errorf("%w: %s - get form: %v", ErrInternal, op, err)
	}

	slots, err := s.timeslotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error for form=%s: %v", op, req.FormID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: found %d timeslots for form=%s", op, len(slots), req.FormID)
	return &models.TimeslotListResponse{
		Timeslots: models.FromDomainTimeslots(slots),
		Limit:     filter.Page.Limit,
		Offset:    filter.Page.Offset,
	}, nil
}

// buildFilter применяет умолчания пагинации и проверяет диапазон
func (s *Service) buildFilter(req *models.ListRequest, onlyAvailable bool) (domain.TimeslotFilter, error) {
	now := s.timeProvider.Now()
	if req.Now != nil {
		now = *req.Now
	}

	page := domain.Page{Limit: s.opts.DefaultLimit}
	if req.Limit != nil {
		if *req.Limit < 1 {
			return domain.TimeslotFilter{}, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
		}
		page.Limit = min(*req.Limit, s.opts.MaxLimit)
	}
	if req.Offset != nil {
		if *req.Offset < 0 {
			return domain.TimeslotFilter{}, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
		}
		page.Offset = *req.Offset
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return domain.TimeslotFilter{}, fmt.Errorf("%w: from must be before to", ErrInvalidTimeRange)
	}

	return domain.TimeslotFilter{
		FormID:        req.FormID,
		Now:           now,
		Range:         domain.TimeRange{From: req.From, To: req.To},
		OnlyAvailable: onlyAvailable,
		Page:          page,
	}, nil
}

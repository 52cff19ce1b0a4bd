package generate_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	availabilityModels "github.com/m04kA/SMC-TimeslotService/internal/service/availability/models"
	generateSlots "github.com/m04kA/SMC-TimeslotService/internal/usecase/generate_slots"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// ScheduleRequest HTTP request model
type ScheduleRequest struct {
	DaysOfWeek      []string `json:"daysOfWeek"`
	WindowStart     string   `json:"windowStart"`     // "17:00"
	WindowEnd       string   `json:"windowEnd"`       // "19:00"
	SlotMinutes     int      `json:"slotMinutes"`     // 15, 30, 45, 60, 90, 120, 180, 240
	WeeksAhead      int      `json:"weeksAhead"`      // 1..12
	StartFromDate   *string  `json:"startFromDate"`   // "2025-10-15"
	CapacityPerSlot *int     `json:"capacityPerSlot"` // null - без ограничения
	TimeZone        *string  `json:"timeZone"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	AddedCount           int                                   `json:"addedCount"`
	SkippedExistingCount int                                   `json:"skippedExistingCount"`
	Timeslots            []availabilityModels.TimeslotResponse `json:"timeslots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ScheduleRequest) ToUseCaseRequest(formID uuid.UUID) (*generateSlots.Request, error) {
	windowStart, err := types.NewTimeStringFromString(r.WindowStart)
	if err != nil {
		return nil, fmt.Errorf("windowStart: %w", err)
	}
	windowEnd, err := types.NewTimeStringFromString(r.WindowEnd)
	if err != nil {
		return nil, fmt.Errorf("windowEnd: %w", err)
	}

	var startFrom *time.Time
	if r.StartFromDate != nil {
		d, err := time.Parse(domain.DateFormat, *r.StartFromDate)
		if err != nil {
			return nil, fmt.Errorf("startFromDate: %w", err)
		}
		startFrom = &d
	}

	return &generateSlots.Request{
		FormID: formID,
		Schedule: domain.Schedule{
			DaysOfWeek:      r.DaysOfWeek,
			WindowStart:     windowStart,
			WindowEnd:       windowEnd,
			SlotMinutes:     r.SlotMinutes,
			WeeksAhead:      r.WeeksAhead,
			StartFromDate:   startFrom,
			CapacityPerSlot: r.CapacityPerSlot,
			TimeZone:        r.TimeZone,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		AddedCount:           resp.AddedCount,
		SkippedExistingCount: resp.SkippedExistingCount,
		Timeslots:            availabilityModels.FromDomainTimeslots(resp.Timeslots),
	}
}

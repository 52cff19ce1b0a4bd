package remove_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	removeSlots "github.com/m04kA/SMC-TimeslotService/internal/usecase/remove_slots"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// RemovalRequest HTTP request model
type RemovalRequest struct {
	DaysOfWeek    []string `json:"daysOfWeek"`
	WindowStart   *string  `json:"windowStart,omitempty"` // вместе с windowEnd
	WindowEnd     *string  `json:"windowEnd,omitempty"`
	StartFromDate *string  `json:"startFromDate,omitempty"` // по умолчанию сегодня
	EndDate       *string  `json:"endDate,omitempty"`       // включительно, либо weeksAhead
	WeeksAhead    *int     `json:"weeksAhead,omitempty"`
	TimeZone      *string  `json:"timeZone,omitempty"`
}

// RemovalResponse HTTP response model
type RemovalResponse struct {
	RemovedCount       int `json:"removedCount"`
	SkippedBookedCount int `json:"skippedBookedCount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RemovalRequest) ToUseCaseRequest(formID uuid.UUID) (*removeSlots.Request, error) {
	windowStart, err := parseTime("windowStart", r.WindowStart)
	if err != nil {
		return nil, err
	}
	windowEnd, err := parseTime("windowEnd", r.WindowEnd)
	if err != nil {
		return nil, err
	}
	startFrom, err := parseDate("startFromDate", r.StartFromDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate("endDate", r.EndDate)
	if err != nil {
		return nil, err
	}

	return &removeSlots.Request{
		FormID: formID,
		Spec: domain.RemovalSpec{
			DaysOfWeek:    r.DaysOfWeek,
			WindowStart:   windowStart,
			WindowEnd:     windowEnd,
			StartFromDate: startFrom,
			EndDate:       endDate,
			WeeksAhead:    r.WeeksAhead,
			TimeZone:      r.TimeZone,
		},
	}, nil
}

func parseTime(field string, s *string) (*types.TimeString, error) {
	if s == nil {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &t, nil
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &d, nil
}

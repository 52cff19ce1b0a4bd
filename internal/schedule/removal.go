package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/internal/timezone"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// RemovalPlan разрешенная спецификация удаления: диапазон [FromUTC, ToUTC) по start_at
// и фильтр по локальному дню недели и времени начала.
type RemovalPlan struct {
	Location *time.Location
	FromUTC  time.Time
	ToUTC    time.Time

	weekdays    map[time.Weekday]bool
	windowStart *types.TimeString
	windowEnd   *types.TimeString
}

// PlanRemoval валидирует спецификацию и переводит её границы в UTC
func PlanRemoval(s domain.RemovalSpec, formZone string, now time.Time) (*RemovalPlan, error) {
	if err := ValidateRemovalSpec(s); err != nil {
		return nil, err
	}

	loc, err := timezone.Resolve(s.TimeZone, formZone)
	if err != nil {
		return nil, err
	}

	weekdays, err := ParseWeekdays(s.DaysOfWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRemovalSpec, err)
	}

	startDate := timezone.LocalDate(now, loc)
	if s.StartFromDate != nil {
		y, m, d := s.StartFromDate.Date()
		startDate = timezone.StartOfDay(y, m, d, loc)
	}

	var endExclusive time.Time
	if s.EndDate != nil {
		y, m, d := s.EndDate.Date()
		endExclusive = timezone.StartOfDay(y, m, d, loc).AddDate(0, 0, 1)
	} else {
		endExclusive = startDate.AddDate(0, 0, *s.WeeksAhead*7)
	}

	if !startDate.Before(endExclusive) {
		return nil, fmt.Errorf("%w: end_date: %s is before start_from_date %s", ErrInvalidRemovalSpec,
			endExclusive.AddDate(0, 0, -1).Format(domain.DateFormat), startDate.Format(domain.DateFormat))
	}

	set := make(map[time.Weekday]bool, len(weekdays))
	for _, d := range weekdays {
		set[d] = true
	}

	return &RemovalPlan{
		Location:    loc,
		FromUTC:     startDate.UTC(),
		ToUTC:       endExclusive.UTC(),
		weekdays:    set,
		windowStart: s.WindowStart,
		windowEnd:   s.WindowEnd,
	}, nil
}

// Matches проверяет начало слота: локальный день недели из набора и,
// если окно задано, локальное время начала в [window_start, window_end)
func (p *RemovalPlan) Matches(startAt time.Time) bool {
	if startAt.Before(p.FromUTC) || !startAt.Before(p.ToUTC) {
		return false
	}

	local := startAt.In(p.Location)
	if !p.weekdays[local.Weekday()] {
		return false
	}

	if p.windowStart == nil {
		return true
	}
	return types.NewTimeString(local).Within(*p.windowStart, *p.windowEnd)
}

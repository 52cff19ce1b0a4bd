// Package schedule expands weekly recurrences into concrete UTC slot windows
// and matches existing slots against removal specs. It has no I/O.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/internal/timezone"
)

// Expand превращает расписание в упорядоченный список окон [start, end) в UTC.
// formZone используется, если в расписании не задана зона. Слоты, начавшиеся до now, отбрасываются.
func Expand(s domain.Schedule, formZone string, now time.Time) ([]domain.SlotWindow, error) {
	if err := ValidateSchedule(s); err != nil {
		return nil, err
	}

	loc, err := timezone.Resolve(s.TimeZone, formZone)
	if err != nil {
		return nil, err
	}

	weekdays, err := ParseWeekdays(s.DaysOfWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	today := timezone.LocalDate(now, loc)
	startDate := today
	if s.StartFromDate != nil {
		y, m, d := s.StartFromDate.Date()
		startDate = timezone.StartOfDay(y, m, d, loc)
	}
	endDate := startDate.AddDate(0, 0, s.WeeksAhead*7)

	dates, err := matchingDates(startDate, endDate, weekdays)
	if err != nil {
		return nil, fmt.Errorf("%w: expand weekdays: %v", ErrInvalidSchedule, err)
	}

	w := dayWalker{
		startMinute: s.WindowStart.Minutes(),
		slotMinutes: s.SlotMinutes,
		slotsPerDay: (s.WindowEnd.Minutes() - s.WindowStart.Minutes()) / s.SlotMinutes,
		loc:         loc,
	}

	seen := make(map[domain.WindowKey]bool)
	result := make([]domain.SlotWindow, 0, len(dates)*w.slotsPerDay)

	for _, day := range dates {
		if day.Before(today) {
			continue
		}

		first := 0
		if day.Equal(today) {
			first = w.firstNotBefore(day, now)
		}

		for k := first; k < w.slotsPerDay; k++ {
			window := domain.SlotWindow{
				StartAt: w.boundary(day, k).UTC(),
				EndAt:   w.boundary(day, k+1).UTC(),
			}
			if !window.StartAt.Before(window.EndAt) {
				continue
			}
			if seen[window.Key()] {
				continue
			}
			seen[window.Key()] = true
			result = append(result, window)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartAt.Equal(result[j].StartAt) {
			return result[i].EndAt.Before(result[j].EndAt)
		}
		return result[i].StartAt.Before(result[j].StartAt)
	})

	return result, nil
}

// dayWalker шагает по окну одного дня в настенном времени зоны
type dayWalker struct {
	startMinute int
	slotMinutes int
	slotsPerDay int
	loc         *time.Location
}

// boundary начало k-го слота дня (k == slotsPerDay дает конец последнего)
func (w dayWalker) boundary(day time.Time, k int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, w.startMinute+k*w.slotMinutes, 0, 0, w.loc)
}

// firstNotBefore индекс первого слота, начало которого не раньше now.
// Индекс считается делением прошедшего времени на длительность слота;
// коррекция нужна только в дни перехода на летнее/зимнее время.
func (w dayWalker) firstNotBefore(day, now time.Time) int {
	windowStart := w.boundary(day, 0)
	if !now.After(windowStart) {
		return 0
	}

	k := int(now.Sub(windowStart) / (time.Duration(w.slotMinutes) * time.Minute))
	for k > 0 && !w.boundary(day, k-1).Before(now) {
		k--
	}
	for k < w.slotsPerDay && w.boundary(day, k).Before(now) {
		k++
	}
	return k
}

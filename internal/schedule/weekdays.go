package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-TimeslotService/internal/timezone"
)

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
	"sun":       time.Sunday,
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// ParseWeekdays разбирает названия дней недели без учета регистра, убирая повторы
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("days_of_week: at least one weekday required")
	}

	seen := make(map[time.Weekday]bool, len(names))
	result := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("days_of_week: unknown weekday %q", name)
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		result = append(result, day)
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// matchingDates возвращает начала всех локальных дат из [start, end), чей день недели входит в days.
// start и end - начала дней в одной зоне. Правило считается по гражданским датам в UTC:
// в зонах, где переход на летнее время приходится на полночь, локальной 00:00 может не быть.
func matchingDates(start, end time.Time, days []time.Weekday) ([]time.Time, error) {
	if !start.Before(end) {
		return nil, nil
	}

	byWeekday := make([]rrule.Weekday, 0, len(days))
	for _, d := range days {
		byWeekday = append(byWeekday, rruleWeekdays[d])
	}

	civilStart := civilDate(start)
	civilEnd := civilDate(end)
	if !civilStart.Before(civilEnd) {
		return nil, nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Interval:  1,
		Dtstart:   civilStart,
		Until:     civilEnd.AddDate(0, 0, -1),
		Byweekday: byWeekday,
	})
	if err != nil {
		return nil, err
	}

	loc := start.Location()
	occurrences := rule.All()
	dates := make([]time.Time, 0, len(occurrences))
	for _, occ := range occurrences {
		y, m, d := occ.Date()
		dates = append(dates, timezone.StartOfDay(y, m, d, loc))
	}
	return dates, nil
}

// civilDate дата момента в его зоне как полночь UTC
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

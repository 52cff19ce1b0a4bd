// Package timezone resolves IANA zones and converts between local wall-clock time and UTC.
package timezone

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // зоны доступны и в образах без системной tzdata

	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

var ErrInvalidTimeZone = errors.New("timezone: invalid time zone")

// Load загружает зону по имени IANA. Пустое имя и "Local" не принимаются.
func Load(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, name)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, name)
	}
	return loc, nil
}

// Resolve выбирает зону: явно заданная, затем зона формы, затем UTC.
// Неизвестное имя на любом уровне дает ErrInvalidTimeZone, без отката на следующий уровень.
func Resolve(explicit *string, formZone string) (*time.Location, error) {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		return Load(*explicit)
	}
	if strings.TrimSpace(formZone) != "" {
		return Load(formZone)
	}
	return time.UTC, nil
}

// StartOfDay полночь указанной даты в зоне
func StartOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// LocalDate полночь локальной даты момента instant
func LocalDate(instant time.Time, loc *time.Location) time.Time {
	y, m, d := instant.In(loc).Date()
	return StartOfDay(y, m, d, loc)
}

// ToUTC переводит локальные дату и время суток в момент UTC.
// Несуществующее (весенний переход) и двусмысленное (осенний) время разрешается правилами time.Date.
func ToUTC(date time.Time, at types.TimeString, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return at.On(y, m, d, loc).UTC()
}

// ToLocal возвращает дату и время суток момента в зоне
func ToLocal(instant time.Time, loc *time.Location) (time.Time, types.TimeString) {
	local := instant.In(loc)
	return LocalDate(local, loc), types.NewTimeString(local)
}

// SameLocalDate совпадают ли локальные даты двух моментов
func SameLocalDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

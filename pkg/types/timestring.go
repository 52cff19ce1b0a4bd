package types

import (
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

var (
	ErrInvalidTimeString = errors.New("invalid time string format")
	ErrTimeOverflow      = errors.New("time string out of day bounds")
)

// TimeString время суток в формате HH:MM (настенное время, без даты и зоны)
type TimeString string

// NewTimeString создает TimeString из часов и минут time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

func (t TimeString) String() string {
	return string(t)
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	_, err := NewTimeStringFromString(string(t))
	return err
}

// Minutes возвращает количество минут от полуночи; для некорректной строки -1
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// Hour часы
func (t TimeString) Hour() int {
	m := t.Minutes()
	if m < 0 {
		return 0
	}
	return m / 60
}

// Minute минуты
func (t TimeString) Minute() int {
	m := t.Minutes()
	if m < 0 {
		return 0
	}
	return m % 60
}

// AddMinutes прибавляет минуты, результат должен остаться в пределах суток.
// 24:00 не представимо, поэтому конец окна до полуночи задается как 23:59 или меньше.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	base := t.Minutes()
	if base < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return NewTimeStringFromMinutes(base + minutes)
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Within проверяет попадание в полуинтервал [start, end)
func (t TimeString) Within(start, end TimeString) bool {
	m := t.Minutes()
	return m >= start.Minutes() && m < end.Minutes()
}

// On возвращает момент времени для этого времени суток в указанную дату и зону
func (t TimeString) On(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, loc)
}

package domain

const (
	// TimeFormat формат времени суток HH:MM
	TimeFormat = "15:04"
	// DateFormat формат даты YYYY-MM-DD
	DateFormat = "2006-01-02"
)

const (
	// MaxTimeslotsPerForm жесткий лимит слотов на одну форму
	MaxTimeslotsPerForm = 100

	MinWeeksAhead = 1
	MaxWeeksAhead = 12

	DefaultPageLimit = 100
	MaxPageLimit     = 500
)

// AllowedSlotMinutes допустимые длительности слота
var AllowedSlotMinutes = []int{15, 30, 45, 60, 90, 120, 180, 240}

// IsAllowedSlotMinutes проверяет длительность по списку AllowedSlotMinutes
func IsAllowedSlotMinutes(minutes int) bool {
	for _, m := range AllowedSlotMinutes {
		if m == minutes {
			return true
		}
	}
	return false
}

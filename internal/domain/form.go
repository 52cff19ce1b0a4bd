package domain

import "github.com/google/uuid"

// FormStatus represents the lifecycle state of a signup form
type FormStatus string

const (
	FormStatusDraft     FormStatus = "draft"
	FormStatusPublished FormStatus = "published"
	FormStatusArchived  FormStatus = "archived"
)

// Form is the owning entity of timeslots. Only the fields the scheduler needs are loaded.
type Form struct {
	ID       uuid.UUID
	TimeZone *string
	Status   FormStatus
}

// ZoneName returns the form's IANA zone or an empty string when unset
func (f *Form) ZoneName() string {
	if f == nil || f.TimeZone == nil {
		return ""
	}
	return *f.TimeZone
}

// AcceptsScheduleChanges reports whether slots may be added or removed
func (f *Form) AcceptsScheduleChanges() bool {
	return f.Status != FormStatusArchived
}

// Package calendar renders booked timeslots as an iCalendar feed.
package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

const productID = "-//SMC//TimeslotService//EN"

// Export builds a VCALENDAR with one VEVENT per booked slot.
// Event UIDs are derived from booking ids so re-exports update rather than duplicate entries.
func Export(registrationID uuid.UUID, booked []*domain.BookedTimeslot, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(fmt.Sprintf("Registration %s", registrationID))

	for _, b := range booked {
		event := cal.AddEvent(fmt.Sprintf("%s@timeslots", b.BookingID))
		event.SetDtStampTime(stamp.UTC())
		event.SetCreatedTime(b.BookedAt.UTC())
		event.SetStartAt(b.Timeslot.StartAt.UTC())
		event.SetEndAt(b.Timeslot.EndAt.UTC())
		event.SetSummary("Booked timeslot")
		event.SetDescription(fmt.Sprintf("Timeslot %s of form %s", b.Timeslot.ID, b.Timeslot.FormID))
	}

	return cal.Serialize()
}

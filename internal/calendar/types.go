package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/excel-azmin/roomcal/internal/ews"
)

// Role classifies an attendee on a calendar event.
type Role string

// Attendee roles.
const (
	RoleRequired Role = "required"
	RoleOptional Role = "optional"
	RoleResource Role = "resource"
)

// Organizer identifies the organizer of a calendar event.
type Organizer struct {
	Email string
	Name  string
}

// Attendee is one attendee of a calendar event, in server order.
type Attendee struct {
	Email string
	Name  string
	Role  Role
}

// Body is the descriptive body of a calendar event.
type Body struct {
	Content string
	Type    string // "Text" or "HTML"
}

// CalendarEvent is the read model for one remote calendar item. It is
// produced only by translation from the wire representation and never
// mutated locally.
type CalendarEvent struct {
	ID        string
	ChangeKey string
	Subject   string
	Start     time.Time
	End       time.Time
	Location  string
	Organizer Organizer
	Attendees []Attendee
	Body      Body

	IsAllDay    bool
	IsCancelled bool
	IsRecurring bool

	Categories []string
}

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// DefaultWindowDays is the span of the window used when a caller passes a
// zero-valued Window.
const DefaultWindowDays = 30

// orDefault fills missing window bounds: a zero Start becomes now, a zero
// End becomes Start plus the default span.
func (w Window) orDefault(now time.Time) Window {
	if w.Start.IsZero() {
		w.Start = now
	}
	if w.End.IsZero() {
		w.End = w.Start.AddDate(0, 0, DefaultWindowDays)
	}
	return w
}

// BookingRequest describes one room booking. Attendees keep their order.
type BookingRequest struct {
	Room      string
	Subject   string
	Start     time.Time
	End       time.Time
	Organizer string
	Attendees []string
	Body      string
}

// BookingResult reports the outcome of one booking attempt.
type BookingResult struct {
	Success   bool
	ItemID    string
	ChangeKey string
	Err       error
}

// RoomAvailability reports whether a room is free in a window. Conflicts is
// populated only when the room is unavailable.
type RoomAvailability struct {
	Room      string
	Available bool
	Conflicts []CalendarEvent
}

// RoomSchedule is one room's entry in a batch schedule query. Err is set
// when that room's lookup failed; the batch itself never aborts.
type RoomSchedule struct {
	Room   string
	Events []CalendarEvent
	Err    error
}

// parseEWSTime parses the RFC3339 timestamps Exchange returns. A value
// that does not parse yields the zero time, mirroring how absent fields
// behave.
func parseEWSTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// toCalendarEvent converts a wire-level calendar item to the read model.
// An attendee resolving to the organizer's own address is dropped from the
// attendee list; the organizer is represented once, in Organizer.
func toCalendarEvent(item ews.CalendarItem) CalendarEvent {
	event := CalendarEvent{
		ID:          item.ItemID.ID,
		ChangeKey:   item.ItemID.ChangeKey,
		Subject:     item.Subject,
		Start:       parseEWSTime(item.Start),
		End:         parseEWSTime(item.End),
		Location:    item.Location,
		IsAllDay:    item.IsAllDayEvent,
		IsCancelled: item.IsCancelled,
		IsRecurring: item.IsRecurring,
		Categories:  item.Categories,
		Organizer: Organizer{
			Email: item.Organizer.Mailbox.EmailAddress,
			Name:  item.Organizer.Mailbox.Name,
		},
		Body: Body{
			Content: strings.TrimSpace(item.Body.Content),
			Type:    item.Body.BodyType,
		},
	}

	appendAttendees := func(set ews.AttendeeSet, role Role) {
		for _, att := range set.Attendees {
			if strings.EqualFold(att.Mailbox.EmailAddress, event.Organizer.Email) {
				continue
			}
			event.Attendees = append(event.Attendees, Attendee{
				Email: att.Mailbox.EmailAddress,
				Name:  att.Mailbox.Name,
				Role:  role,
			})
		}
	}
	appendAttendees(item.RequiredAttendees, RoleRequired)
	appendAttendees(item.OptionalAttendees, RoleOptional)
	appendAttendees(item.Resources, RoleResource)

	return event
}

// sortEventsByStart orders events by start time ascending, keeping the
// server order for equal starts.
func sortEventsByStart(events []CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
}

package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/excel-azmin/roomcal/internal/ews"
	"github.com/excel-azmin/roomcal/internal/logging"
)

// Transport is the wire-level client a Session issues operations through.
// *ews.Client satisfies it; tests substitute a fake.
type Transport interface {
	Verify(ctx context.Context, mailbox, impersonate string) error
	FindCalendarItems(ctx context.Context, q ews.FindQuery) ([]ews.CalendarItem, error)
	CreateCalendarItem(ctx context.Context, item ews.NewCalendarItem) (ews.ItemID, error)
}

// Session is an authenticated handle bound to one mailbox. A Session is
// owned by the call path that created it; it holds no locks, and two
// sessions opened with the same credential are fully independent.
type Session struct {
	transport   Transport
	mailbox     string
	impersonate string
	logger      *slog.Logger
}

// SessionOption configures optional Session collaborators.
type SessionOption func(*Session)

// WithSessionLogger sets the structured logger for the session.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open verifies access to mailbox and returns a session bound to it. An
// empty mailbox binds the session to the authenticated principal's own
// calendar. The verification is one network round trip.
func Open(ctx context.Context, transport Transport, mailbox string, opts ...SessionOption) (*Session, error) {
	return open(ctx, transport, mailbox, "", opts...)
}

// OpenImpersonated opens a session that acts as target, a mailbox other
// than the authenticated principal. The principal needs the impersonation
// capability on the server; without it the open fails with an
// access-denied kind, not a generic failure.
func OpenImpersonated(ctx context.Context, transport Transport, target string, opts ...SessionOption) (*Session, error) {
	if target == "" {
		return nil, &ews.OpError{Op: "Open", Kind: ews.KindInvalidArgument,
			Err: fmt.Errorf("impersonation target mailbox is required")}
	}
	return open(ctx, transport, target, target, opts...)
}

func open(ctx context.Context, transport Transport, mailbox, impersonate string, opts ...SessionOption) (*Session, error) {
	s := &Session{
		transport:   transport,
		mailbox:     mailbox,
		impersonate: impersonate,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := transport.Verify(ctx, mailbox, impersonate); err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	s.logger.Debug("session opened",
		logging.MailboxHash(mailbox),
		slog.Bool("impersonated", impersonate != ""))
	return s, nil
}

// Mailbox returns the mailbox this session is bound to.
func (s *Session) Mailbox() string {
	return s.mailbox
}

// ListEvents returns the calendar events overlapping the window, sorted by
// start time ascending. A zero-valued window defaults to [now, now+30d).
// A mailbox without a calendar folder yields an empty slice, not an error;
// transport failures propagate.
func (s *Session) ListEvents(ctx context.Context, w Window) ([]CalendarEvent, error) {
	w = w.orDefault(time.Now())
	if w.Start.After(w.End) {
		return nil, &ews.OpError{Op: "ListEvents", Mailbox: s.mailbox, Kind: ews.KindInvalidArgument,
			Err: fmt.Errorf("window start %s is after end %s", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))}
	}

	items, err := s.transport.FindCalendarItems(ctx, ews.FindQuery{
		Mailbox:     s.mailbox,
		Impersonate: s.impersonate,
		Start:       w.Start,
		End:         w.End,
	})
	if err != nil {
		if ews.IsNotFound(err) {
			s.logger.Debug("calendar folder absent, returning empty result",
				logging.MailboxHash(s.mailbox))
			return nil, nil
		}
		return nil, err
	}

	events := make([]CalendarEvent, 0, len(items))
	for _, item := range items {
		events = append(events, toCalendarEvent(item))
	}
	sortEventsByStart(events)
	return events, nil
}

// CheckAvailability reports whether the session's mailbox is free in the
// window. Available is true exactly when ListEvents over the identical
// window is empty; Conflicts is populated only when unavailable.
func (s *Session) CheckAvailability(ctx context.Context, w Window) (RoomAvailability, error) {
	events, err := s.ListEvents(ctx, w)
	if err != nil {
		return RoomAvailability{}, err
	}
	availability := RoomAvailability{
		Room:      s.mailbox,
		Available: len(events) == 0,
	}
	if !availability.Available {
		availability.Conflicts = events
	}
	return availability, nil
}

// BookRoom creates a calendar item for the booking: the organizer is
// always a required attendee, extra attendees follow in request order, and
// the room itself is attached as a resource and used as the location.
// The create is attempted exactly once; it is never retried.
func (s *Session) BookRoom(ctx context.Context, req BookingRequest) (BookingResult, error) {
	if req.Room == "" || req.Organizer == "" {
		err := &ews.OpError{Op: "BookRoom", Mailbox: s.mailbox, Kind: ews.KindInvalidArgument,
			Err: fmt.Errorf("room and organizer addresses are required")}
		return BookingResult{Err: err}, err
	}
	if !req.Start.Before(req.End) {
		err := &ews.OpError{Op: "BookRoom", Mailbox: s.mailbox, Kind: ews.KindInvalidArgument,
			Err: fmt.Errorf("booking start must be before end")}
		return BookingResult{Err: err}, err
	}

	required := make([]string, 0, len(req.Attendees)+1)
	required = append(required, req.Organizer)
	for _, attendee := range req.Attendees {
		if attendee == req.Organizer {
			continue
		}
		required = append(required, attendee)
	}

	itemID, err := s.transport.CreateCalendarItem(ctx, ews.NewCalendarItem{
		Mailbox:     s.mailbox,
		Impersonate: s.impersonate,
		Subject:     req.Subject,
		Body:        req.Body,
		Start:       req.Start,
		End:         req.End,
		Location:    req.Room,
		Required:    required,
		Resources:   []string{req.Room},
	})
	if err != nil {
		return BookingResult{Err: err}, err
	}

	s.logger.Info("room booked",
		slog.String(logging.KeyRoom, req.Room),
		slog.String("item_id", itemID.ID))
	return BookingResult{
		Success:   true,
		ItemID:    itemID.ID,
		ChangeKey: itemID.ChangeKey,
	}, nil
}

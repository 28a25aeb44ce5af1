package calendar

import (
	"context"
	"log/slog"
	"time"

	"github.com/excel-azmin/roomcal/internal/logging"
)

// Manager keeps one open session per room mailbox for the life of the
// manager. The cache is for sequential reuse only; Manager makes no
// concurrency guarantees.
type Manager struct {
	transport Transport
	sessions  map[string]*Session
	logger    *slog.Logger
}

// ManagerOption configures optional Manager collaborators.
type ManagerOption func(*Manager)

// WithManagerLogger sets the structured logger for the manager and the
// sessions it opens.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a manager that opens sessions through transport.
func NewManager(transport Transport, opts ...ManagerOption) *Manager {
	m := &Manager{
		transport: transport,
		sessions:  make(map[string]*Session),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns the cached session for room, opening one on first use.
// A failed open is not cached, so a later call retries.
func (m *Manager) Session(ctx context.Context, room string) (*Session, error) {
	if session, ok := m.sessions[room]; ok {
		return session, nil
	}
	session, err := Open(ctx, m.transport, room, WithSessionLogger(m.logger))
	if err != nil {
		return nil, err
	}
	m.sessions[room] = session
	return session, nil
}

// DaySchedules collects the events of one calendar day for every room.
// Rooms are queried independently: a room whose session cannot be opened
// or whose query fails gets its error recorded under its own key, and the
// rest of the batch proceeds.
func (m *Manager) DaySchedules(ctx context.Context, rooms []string, day time.Time) map[string]RoomSchedule {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	window := Window{Start: start, End: start.AddDate(0, 0, 1)}

	schedules := make(map[string]RoomSchedule, len(rooms))
	for _, room := range rooms {
		schedule := RoomSchedule{Room: room}

		session, err := m.Session(ctx, room)
		if err != nil {
			m.logger.Warn("skipping room after session failure",
				slog.String(logging.KeyRoom, room),
				logging.Err(err))
			schedule.Err = err
			schedules[room] = schedule
			continue
		}

		events, err := session.ListEvents(ctx, window)
		if err != nil {
			m.logger.Warn("room schedule query failed",
				slog.String(logging.KeyRoom, room),
				logging.Err(err))
			schedule.Err = err
		} else {
			schedule.Events = events
		}
		schedules[room] = schedule
	}
	return schedules
}

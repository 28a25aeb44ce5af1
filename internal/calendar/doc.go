// Package calendar provides the calendar access client on top of the EWS
// transport layer.
//
// A Session is an authenticated handle bound to one mailbox. It lists
// events in a time window, checks room availability, and books rooms.
// Sessions can also be opened in impersonation mode to read a mailbox
// other than the authenticated principal's, given the server-side
// impersonation capability.
//
// The Manager maps room addresses to open sessions for sequential reuse
// and runs batch day-schedule queries where a single room's failure never
// aborts the rest of the batch.
//
// Example usage:
//
//	session, err := calendar.Open(ctx, client, "boardroom@example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Events in the next 30 days (the default window).
//	events, err := session.ListEvents(ctx, calendar.Window{})
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar

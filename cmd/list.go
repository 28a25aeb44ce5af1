package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/excel-azmin/roomcal/internal/calendar"
)

func newListCmd() *cobra.Command {
	var (
		mailbox     string
		impersonate string
		from, to    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List calendar events in a time window",
		Long: `List the calendar events of a mailbox within a time window. Without
--from/--to the window defaults to the next 30 days.

With --as, the request runs impersonated as the given mailbox; the
configured service account needs the impersonation permission on the
server for this to succeed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := windowFromFlags(from, to)
			if err != nil {
				return err
			}

			ctx := context.Background()
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			var session *calendar.Session
			if impersonate != "" {
				session, err = calendar.OpenImpersonated(ctx, rt.client, impersonate,
					calendar.WithSessionLogger(rt.logger))
			} else {
				session, err = calendar.Open(ctx, rt.client, mailbox,
					calendar.WithSessionLogger(rt.logger))
			}
			if err != nil {
				return err
			}

			events, err := session.ListEvents(ctx, window)
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Println("No events in window")
				return nil
			}
			for _, event := range events {
				printEvent(event)
			}
			fmt.Printf("%d event(s)\n", len(events))
			return nil
		},
	}

	cmd.Flags().StringVar(&mailbox, "mailbox", "", "Mailbox whose calendar to read (default: the authenticated principal's own)")
	cmd.Flags().StringVar(&impersonate, "as", "", "Read the given mailbox via impersonation instead")
	cmd.Flags().StringVar(&from, "from", "", "Window start (RFC3339 or date)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (RFC3339 or date)")
	return cmd
}

func windowFromFlags(from, to string) (calendar.Window, error) {
	start, err := parseTimeFlag(from)
	if err != nil {
		return calendar.Window{}, err
	}
	end, err := parseTimeFlag(to)
	if err != nil {
		return calendar.Window{}, err
	}
	return calendar.Window{Start: start, End: end}, nil
}

func printEvent(event calendar.CalendarEvent) {
	flags := ""
	if event.IsAllDay {
		flags += " [all-day]"
	}
	if event.IsCancelled {
		flags += " [cancelled]"
	}
	if event.IsRecurring {
		flags += " [recurring]"
	}
	fmt.Printf("%s - %s  %s%s\n",
		event.Start.Format(time.RFC3339),
		event.End.Format(time.RFC3339),
		event.Subject, flags)
	if event.Location != "" {
		fmt.Printf("    location: %s\n", event.Location)
	}
	if event.Organizer.Email != "" {
		fmt.Printf("    organizer: %s <%s>\n", event.Organizer.Name, event.Organizer.Email)
	}
	for _, attendee := range event.Attendees {
		fmt.Printf("    attendee (%s): %s\n", attendee.Role, attendee.Email)
	}
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/excel-azmin/roomcal/internal/calendar"
)

func newBookCmd() *cobra.Command {
	var (
		room      string
		subject   string
		from, to  string
		organizer string
		attendees []string
		body      string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a meeting room",
		Long: `Create a calendar item booking a room. The organizer is added as a
required attendee, every --attendee follows in order, and the room is
attached as a resource. Invitations are sent to all attendees.

The booking is attempted exactly once; on failure the command reports the
error and exits 1 without retrying.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseTimeFlag(from)
			if err != nil {
				return err
			}
			end, err := parseTimeFlag(to)
			if err != nil {
				return err
			}

			ctx := context.Background()
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			session, err := calendar.Open(ctx, rt.client, "",
				calendar.WithSessionLogger(rt.logger))
			if err != nil {
				return err
			}

			result, err := session.BookRoom(ctx, calendar.BookingRequest{
				Room:      room,
				Subject:   subject,
				Start:     start,
				End:       end,
				Organizer: organizer,
				Attendees: attendees,
				Body:      body,
			})
			if err != nil {
				return fmt.Errorf("booking failed: %w", err)
			}

			fmt.Printf("Booked %s: %s\n", room, result.ItemID)
			return nil
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "Room mailbox address to book")
	cmd.Flags().StringVar(&subject, "subject", "", "Meeting subject")
	cmd.Flags().StringVar(&from, "from", "", "Meeting start (RFC3339)")
	cmd.Flags().StringVar(&to, "to", "", "Meeting end (RFC3339)")
	cmd.Flags().StringVar(&organizer, "organizer", "", "Organizer mailbox address")
	cmd.Flags().StringArrayVar(&attendees, "attendee", nil, "Additional attendee address (repeatable)")
	cmd.Flags().StringVar(&body, "body", "", "Meeting body text")
	return cmd
}

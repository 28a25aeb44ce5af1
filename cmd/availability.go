package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/excel-azmin/roomcal/internal/calendar"
)

func newAvailabilityCmd() *cobra.Command {
	var (
		room     string
		from, to string
	)

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Check whether a room is free in a time window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if room == "" {
				return fmt.Errorf("--room is required")
			}
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

			session, err := calendar.Open(ctx, rt.client, room,
				calendar.WithSessionLogger(rt.logger))
			if err != nil {
				return err
			}

			availability, err := session.CheckAvailability(ctx, window)
			if err != nil {
				return err
			}

			if availability.Available {
				fmt.Printf("%s is available\n", room)
				return nil
			}
			fmt.Printf("%s is busy, %d conflict(s):\n", room, len(availability.Conflicts))
			for _, conflict := range availability.Conflicts {
				fmt.Printf("  %s - %s  %s\n",
					conflict.Start.Format(time.RFC3339),
					conflict.End.Format(time.RFC3339),
					conflict.Subject)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "Room mailbox address to check")
	cmd.Flags().StringVar(&from, "from", "", "Window start (RFC3339 or date)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (RFC3339 or date)")
	return cmd
}

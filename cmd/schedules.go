package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/excel-azmin/roomcal/internal/calendar"
	"github.com/excel-azmin/roomcal/internal/config"
)

func newSchedulesCmd() *cobra.Command {
	var (
		roomsFile string
		date      string
	)

	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "Collect the day schedule of every configured room",
		Long: `Read the room inventory file and list each room's events for one day.
Rooms are queried independently: a room that fails (unknown mailbox,
denied access, transport error) is reported with its error while the
rest of the batch still completes. The command exits 1 only when every
room failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
				}
				day = parsed
			}

			ctx := context.Background()
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			if roomsFile == "" {
				roomsFile = rt.cfg.RoomsFile
			}
			if roomsFile == "" {
				return fmt.Errorf("no rooms file: pass --rooms or set ROOMCAL_ROOMS_FILE")
			}
			rooms, err := config.LoadRooms(roomsFile)
			if err != nil {
				return err
			}

			manager := calendar.NewManager(rt.client, calendar.WithManagerLogger(rt.logger))
			schedules := manager.DaySchedules(ctx, rooms.Addresses(), day)

			// Map order is random; print in inventory order.
			failed := 0
			for _, room := range rooms.Addresses() {
				schedule := schedules[room]
				fmt.Printf("%s:\n", room)
				if schedule.Err != nil {
					failed++
					fmt.Printf("  error: %v\n", schedule.Err)
					continue
				}
				if len(schedule.Events) == 0 {
					fmt.Println("  free all day")
					continue
				}
				for _, event := range schedule.Events {
					fmt.Printf("  %s - %s  %s\n",
						event.Start.Format("15:04"),
						event.End.Format("15:04"),
						event.Subject)
				}
			}

			if failed == len(rooms.Rooms) {
				return fmt.Errorf("all %d rooms failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&roomsFile, "rooms", "", "Path to the YAML room inventory (default: ROOMCAL_ROOMS_FILE)")
	cmd.Flags().StringVar(&date, "date", "", "Day to query as YYYY-MM-DD (default: today)")
	return cmd
}

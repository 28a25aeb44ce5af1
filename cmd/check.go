package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/excel-azmin/roomcal/internal/calendar"
)

func newCheckCmd() *cobra.Command {
	var mailbox string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify connectivity and credentials against the Exchange server",
		Long: `Open a session against the configured Exchange server and verify that
the credential grants access to a calendar folder.

Exits 0 when the connection succeeds and 1 otherwise, so the command can
be used as a health probe in scripts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			session, err := calendar.Open(ctx, rt.client, mailbox,
				calendar.WithSessionLogger(rt.logger))
			if err != nil {
				return fmt.Errorf("connectivity check failed: %w", err)
			}

			target := session.Mailbox()
			if target == "" {
				target = "own mailbox"
			}
			fmt.Printf("Connected to %s (%s)\n", rt.client.Endpoint(), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&mailbox, "mailbox", "", "Mailbox to verify access to (default: the authenticated principal's own)")
	return cmd
}

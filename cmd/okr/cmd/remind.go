package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func RemindCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Email every user their overdue and due-now progress updates",
		Long:  "Computes each user's missing monthly updates and sends one reminder per user. In development the emails are logged instead of sent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			if at != "" {
				parsed, err := time.Parse(time.DateOnly, at)
				if err != nil {
					return fmt.Errorf("invalid --at date: %w", err)
				}
				now = parsed
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(a)

			sent, err := a.ReminderService.Run(now)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "reminded %d users\n", sent)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "evaluate coverage as of this date (YYYY-MM-DD)")
	return cmd
}

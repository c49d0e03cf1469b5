package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/okrledger/cmd/okr/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "okr",
		Short:        "Operate the OKR ledger: migrations, reminders, users and tokens",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.RemindCmd())
	rootCmd.AddCommand(cmd.UserCmd())
	rootCmd.AddCommand(cmd.TokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

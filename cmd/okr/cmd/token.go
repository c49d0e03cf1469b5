package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func TokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <email>",
		Short: "Issue an API token for a user, signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(a)

			user, err := a.UserService.ByEmail(args[0])
			if err != nil {
				return err
			}

			token, err := a.AuthService.GenerateJWT(user)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

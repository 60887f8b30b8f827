package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect the stored user profile",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
	)

	return cmd
}

func newProfileShowCmd(app *app) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a user's defaults, provisioning them on first contact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID := app.resolveUser(user)
			sess, err := app.bootstrap.Load(cmd.Context(), uuid.NewString(), userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "user:     %s\n", userID)
			_, _ = fmt.Fprintf(out, "duration: %d days\n", *sess.DefaultDuration)
			_, _ = fmt.Fprintf(out, "interval: %d days\n", *sess.DefaultInterval)
			_, _ = fmt.Fprintf(out, "zones:    %d\n", len(sess.Zones))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user identity (defaults to the configured local user)")

	return cmd
}

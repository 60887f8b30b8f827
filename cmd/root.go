package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "redzone",
		Short:         "Red Zone: track recurring calendar zones by voice or terminal",
		Long:          "redzone answers voice-platform turn events for the Red Zone skill and exposes the same zone tracking from the terminal: add zones, list them, inspect the stored profile, or run the fulfillment endpoint as an HTTP service.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(app),
		newHandleCmd(app),
		newZoneCmd(app),
		newProfileCmd(app),
	)

	return rootCmd
}

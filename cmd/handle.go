package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redzonehq/redzone/internal/alexa"
)

// newHandleCmd processes one turn event the way the hosted endpoint would:
// event envelope in, response envelope out. Useful for replaying captured
// platform traffic against the local store.
func newHandleCmd(app *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "handle",
		Short: "Handle a single turn event from stdin or a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			source := cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open event file: %w", err)
				}
				defer f.Close()
				source = f
			}

			var event alexa.RequestEnvelope
			if err := json.NewDecoder(source).Decode(&event); err != nil {
				return fmt.Errorf("decode event: %w", err)
			}

			envelope, err := app.turns.HandleEvent(cmd.Context(), event)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(envelope)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "read the event from a file instead of stdin")

	return cmd
}

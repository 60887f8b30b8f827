package cmd

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/redzonehq/redzone/internal/alexa"
	"github.com/redzonehq/redzone/internal/domain"
)

func newZoneCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Manage tracked zones",
	}

	cmd.AddCommand(
		newZoneAddCmd(app),
		newZoneListCmd(app),
		newZoneClosestCmd(app),
	)

	return cmd
}

func newZoneAddCmd(app *app) *cobra.Command {
	var user, begin, end string
	var duration int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update a zone",
		RunE: func(cmd *cobra.Command, _ []string) error {
			intent := domain.IntentAddZoneByBeginDate
			slots := map[string]string{domain.SlotBeginDate: begin}
			switch {
			case end != "":
				intent = domain.IntentAddZone
				slots[domain.SlotEndDate] = end
			case cmd.Flags().Changed("duration"):
				intent = domain.IntentAddZoneByBeginDateAndDuration
				slots[domain.SlotDuration] = strconv.Itoa(duration)
			}

			return app.runTurn(cmd, app.resolveUser(user), intent, slots)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user identity (defaults to the configured local user)")
	cmd.Flags().StringVar(&begin, "begin", "", "begin date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&duration, "duration", 0, "zone length in days")
	_ = cmd.MarkFlagRequired("begin")
	cmd.MarkFlagsMutuallyExclusive("end", "duration")

	return cmd
}

func newZoneListCmd(app *app) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored zones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			zones, err := app.repo.QueryAll(cmd.Context(), app.resolveUser(user))
			if err != nil {
				return err
			}

			for _, zone := range zones {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d days\n",
					zone.BeginDate, zone.EndDate, zone.LengthDays())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user identity (defaults to the configured local user)")

	return cmd
}

func newZoneClosestCmd(app *app) *cobra.Command {
	var user, date string

	cmd := &cobra.Command{
		Use:   "closest",
		Short: "Ask about the zone closest to a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runTurn(cmd, app.resolveUser(user), domain.IntentGetClosestZoneByDate, map[string]string{
				domain.SlotTargetDate: date,
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user identity (defaults to the configured local user)")
	cmd.Flags().StringVar(&date, "date", "", "target date phrase (YYYY-MM-DD, YYYY-Www, YYYY-MM, ...)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

// runTurn mints a synthetic turn event for the given user and prints the
// spoken reply, so terminal commands exercise the same path as the voice
// platform.
func (a *app) runTurn(cmd *cobra.Command, userID domain.UserID, intent domain.Intent, slots map[string]string) error {
	event := alexa.RequestEnvelope{
		Session: alexa.Session{
			New: true,
			ID:  uuid.NewString(),
		},
		Request: alexa.Request{
			Type:   alexa.RequestTypeIntent,
			ID:     uuid.NewString(),
			Intent: &alexa.Intent{Name: string(intent), Slots: map[string]alexa.Slot{}},
		},
		Identity: alexa.Identity{UserID: string(userID)},
	}
	for name, value := range slots {
		event.Request.Intent.Slots[name] = alexa.Slot{Value: value}
	}

	envelope, err := a.turns.HandleEvent(cmd.Context(), event)
	if err != nil {
		return err
	}
	if envelope == nil || envelope.Response == nil || envelope.Response.OutputSpeech == nil {
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), envelope.Response.OutputSpeech.Text)
	return err
}

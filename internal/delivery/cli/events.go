package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"qrcheckctl/internal/domain"
)

var statusLabels = map[domain.EventStatus]string{
	domain.StatusUpcoming: "upcoming",
	domain.StatusOngoing:  "happening now",
	domain.StatusFinished: "finished",
}

func newEventsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "events",
		Short:   "List available events with their status and your enrollment",
		PreRunE: requireSession(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			overview, err := app.Events.Overview(cmd.Context())
			if err != nil {
				return renderError(app.Out, err)
			}
			if len(overview.Available) == 0 {
				fmt.Fprintln(app.Out, "No events available.")
				return nil
			}
			writeEventTable(app, overview.Available, true)
			return nil
		},
	}
}

func newEnrollmentsCommand(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "enrollments",
		Short:   "List the events you are enrolled in",
		PreRunE: requireSession(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			var views []domain.EventView
			if all {
				history, err := app.Events.History(cmd.Context())
				if err != nil {
					return renderError(app.Out, err)
				}
				views = history
			} else {
				overview, err := app.Events.Overview(cmd.Context())
				if err != nil {
					return renderError(app.Out, err)
				}
				views = overview.Enrolled
			}
			if len(views) == 0 {
				fmt.Fprintln(app.Out, "No enrollments.")
				return nil
			}
			writeEventTable(app, views, false)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include finished events")
	return cmd
}

func newEnrollCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "enroll <event-id>",
		Short:   "Enroll in an event",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireSession(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}

			outcome, err := app.Events.Enroll(cmd.Context(), id)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrNotFound):
					return fmt.Errorf("event %s not found", id)
				case errors.Is(err, domain.ErrEnrollmentClosed):
					return err
				default:
					return renderError(app.Out, err)
				}
			}

			if outcome.AlreadyEnrolled {
				// Informational, not a failure.
				fmt.Fprintln(app.Out, "You are already enrolled in this event.")
			} else {
				fmt.Fprintln(app.Out, "Enrollment confirmed.")
			}
			if len(outcome.Enrolled) > 0 {
				fmt.Fprintln(app.Out, "\nYour enrollments:")
				writeEventTable(app, outcome.Enrolled, false)
			}
			return nil
		},
	}
}

func writeEventTable(app *App, views []domain.EventView, showEligibility bool) {
	w := tabwriter.NewWriter(app.Out, 2, 4, 2, ' ', 0)
	if showEligibility {
		fmt.Fprintln(w, "ID\tNAME\tFROM\tTO\tSTATUS\tENROLLMENT")
	} else {
		fmt.Fprintln(w, "ID\tNAME\tFROM\tTO\tSTATUS")
	}
	for _, v := range views {
		e := v.Event
		row := fmt.Sprintf("%s\t%s\t%s\t%s\t%s",
			e.PublicID,
			e.Name,
			e.StartsAt.Format("2006-01-02"),
			e.EndsAt.Format("2006-01-02"),
			statusLabels[v.Status],
		)
		if showEligibility {
			row += "\t" + enrollmentLabel(v)
		}
		fmt.Fprintln(w, row)
	}
	_ = w.Flush()
}

func enrollmentLabel(v domain.EventView) string {
	switch {
	case v.Enrolled:
		return "enrolled"
	case v.Eligible:
		return "open"
	default:
		return "closed"
	}
}

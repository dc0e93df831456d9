package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"qrcheckctl/internal/adapters/api"
	"qrcheckctl/internal/domain"
	"qrcheckctl/internal/services"
)

// App bundles everything the commands need.
type App struct {
	Session domain.SessionService
	Auth    domain.AuthService
	Events  domain.EventService
	People  domain.ParticipantAPI
	QR      *services.QRCodeService
	Log     *slog.Logger
	Out     io.Writer
	In      io.Reader
}

// NewRootCommand builds the qrcheckctl command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "qrcheckctl",
		Short:         "Participant client for the QRCheck event check-in platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newRefreshCommand(app),
		newRegisterCommand(app),
		newWhoamiCommand(app),
		newEventsCommand(app),
		newEnrollmentsCommand(app),
		newEnrollCommand(app),
		newQRCommand(app),
		newOccupationsCommand(app),
		newNeedsCommand(app),
	)
	return root
}

// requireSession gates protected commands. It restores the session from the
// persisted token first and renders nothing while that is pending, so a
// command never acts on a stale or absent session.
func requireSession(app *App) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if app.Session.State() == domain.StateRestoring {
			app.Session.Restore(cmd.Context())
		}
		if app.Session.State() != domain.StateAuthenticated {
			return errors.New("not logged in; run `qrcheckctl login` first")
		}
		return nil
	}
}

// renderError prints backend validation failures next to their fields and
// returns the banner-level error the command should fail with.
func renderError(out io.Writer, err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		fields := make([]string, 0, len(apiErr.Fields))
		for f := range apiErr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(out, "  %s: %s\n", f, apiErr.Fields[f])
		}
		return fmt.Errorf("%s", apiErr.Message)
	}
	if errors.Is(err, domain.ErrUnauthenticated) {
		return errors.New("session expired; run `qrcheckctl login` again")
	}
	return err
}

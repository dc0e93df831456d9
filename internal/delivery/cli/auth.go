package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"qrcheckctl/internal/domain"
)

func newLoginCommand(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with your email (or CPF) and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(app.In)
			if email == "" {
				fmt.Fprint(app.Out, "email: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Fprint(app.Out, "password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			user, err := app.Session.Login(cmd.Context(), email, password)
			if err != nil {
				return renderError(app.Out, err)
			}
			fmt.Fprintf(app.Out, "Logged in as %s <%s>\n", user.FullName(), user.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email or CPF")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session and discard stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.Logout()
			fmt.Fprintln(app.Out, "Logged out.")
			return nil
		},
	}
}

func newRefreshCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Renew the access token using the stored refresh token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Auth.Refresh(cmd.Context()); err != nil {
				if errors.Is(err, domain.ErrNoRefreshToken) {
					return errors.New("no refresh token stored; run `qrcheckctl login` instead")
				}
				return renderError(app.Out, err)
			}
			fmt.Fprintln(app.Out, "Session refreshed.")
			return nil
		},
	}
}

func newRegisterCommand(app *App) *cobra.Command {
	var (
		reg        domain.Registration
		birthDate  string
		needIDs    []int
		customNeed []string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a participant account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if birthDate != "" {
				parsed, err := time.Parse("2006-01-02", birthDate)
				if err != nil {
					return fmt.Errorf("invalid --birth-date %q, expected YYYY-MM-DD", birthDate)
				}
				reg.BirthDate = domain.NewTimestamp(parsed)
			}
			reg.NeedIDs = needIDs
			reg.CustomNeeds = customNeed

			participant, err := app.Auth.Register(cmd.Context(), reg)
			if err != nil {
				return renderError(app.Out, err)
			}
			fmt.Fprintf(app.Out, "Registered %s <%s>\n", participant.FullName(), participant.Email)
			fmt.Fprintf(app.Out, "Public ID: %s\n", participant.PublicID)
			return nil
		},
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "first name")
	cmd.Flags().StringVar(&reg.Surname, "surname", "", "surname")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address")
	cmd.Flags().StringVar(&reg.Password, "password", "", "password")
	cmd.Flags().StringVar(&reg.CPF, "cpf", "", "CPF (punctuation is stripped)")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date, YYYY-MM-DD")
	cmd.Flags().IntVar(&reg.OccupationID, "occupation", 1, "occupation id (see `qrcheckctl occupations`)")
	cmd.Flags().StringVar(&reg.OccupationOther, "occupation-other", "", "free-text occupation when none of the listed ones fit")
	cmd.Flags().IntSliceVar(&needIDs, "need", nil, "accessibility need id, repeatable (see `qrcheckctl needs`)")
	cmd.Flags().StringSliceVar(&customNeed, "custom-need", nil, "free-text accessibility need, repeatable")

	for _, required := range []string{"name", "surname", "email", "password", "cpf", "birth-date"} {
		_ = cmd.MarkFlagRequired(required)
	}
	return cmd
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Short:   "Show the authenticated participant's profile",
		PreRunE: requireSession(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.Session.CurrentUser()
			fmt.Fprintf(app.Out, "Name:       %s\n", user.FullName())
			fmt.Fprintf(app.Out, "Email:      %s\n", user.Email)
			fmt.Fprintf(app.Out, "CPF:        %s\n", user.CPF)
			if !user.BirthDate.IsZero() {
				fmt.Fprintf(app.Out, "Birth date: %s\n", user.BirthDate.Format("2006-01-02"))
			}
			fmt.Fprintf(app.Out, "Public ID:  %s\n", user.PublicID)
			return nil
		},
	}
}

func newOccupationsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "occupations",
		Short: "List selectable occupations for registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			occupations, err := app.People.Occupations(cmd.Context())
			if err != nil {
				return renderError(app.Out, err)
			}
			for _, o := range occupations {
				fmt.Fprintf(app.Out, "%4d  %s\n", o.ID, o.Name)
			}
			return nil
		},
	}
}

func newNeedsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "needs",
		Short: "List selectable accessibility needs for registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			needs, err := app.People.Needs(cmd.Context())
			if err != nil {
				return renderError(app.Out, err)
			}
			for _, n := range needs {
				fmt.Fprintf(app.Out, "%4d  %s\n", n.ID, n.Name)
			}
			return nil
		},
	}
}

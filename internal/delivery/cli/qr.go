package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newQRCommand(app *App) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:     "qr",
		Short:   "Show your admission QR code, or save it as a PNG",
		PreRunE: requireSession(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.Session.CurrentUser()

			if outFile != "" {
				png, err := app.QR.PNG(user)
				if err != nil {
					return err
				}
				if err := os.WriteFile(outFile, png, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outFile, err)
				}
				fmt.Fprintf(app.Out, "QR code saved to %s\n", outFile)
				return nil
			}

			art, err := app.QR.Terminal(user)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Admission QR code for %s\n\n", user.FullName())
			fmt.Fprint(app.Out, art)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write a PNG to this path instead of rendering in the terminal")
	return cmd
}

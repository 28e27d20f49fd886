package cli

import (
	"encoding/json"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"staysync/internal/domain"
)

func init() {
	rootCmd.AddCommand(newLoginCmd(), newLogoutCmd(), newMeCmd(), newRegisterCmd(), newForgotPasswordCmd())
}

func newLoginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and store the bearer token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				b, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				password = string(b)
			}
			if err := deps.session.Login(cmd.Context(), args[0], password); err != nil {
				return err
			}
			u := deps.session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s %s <%s>\n", u.FirstName, u.LastName, u.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps.session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps.session.Start(cmd.Context())
			u := deps.session.User()
			if u == nil {
				return fmt.Errorf("not signed in")
			}
			return printJSON(cmd, u)
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var reg domain.Registration
	var lat, lon float64
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg.Email = args[0]
			reg.Location = domain.GeoPoint{Type: "Point", Coordinates: [2]float64{lon, lat}, Address: reg.Location.Address}
			if err := deps.session.Register(cmd.Context(), reg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "account created, run `staysync login` to sign in")
			return nil
		},
	}
	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&reg.PhoneNumber, "phone", "", "phone number")
	cmd.Flags().StringVar(&reg.Password, "password", "", "password")
	cmd.Flags().StringVar(&reg.Location.Address, "address", "", "home address")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newForgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.session.RequestPasswordReset(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reset email requested")
			return nil
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

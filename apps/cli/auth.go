package main

import (
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	lmsapi "github.com/trezcool/masomo-portal/apps/api"
	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/forms"
	"github.com/trezcool/masomo-portal/core/session"
)

func newLoginCommand(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in; the password is prompted next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pwd, err := readPassword(cmd, "Password")
			if err != nil {
				return err
			}
			p, err := submit(forms.LoginForm(), url.Values{
				forms.FieldEmail:    {core.CleanString(email, true /* lower */)},
				forms.FieldPassword: {pwd},
			})
			if err != nil {
				return err
			}

			res, err := a.client.Login(cmd.Context(), lmsapi.Credentials{
				Email:    p.String(forms.FieldEmail),
				Password: p.String(forms.FieldPassword),
			})
			if err != nil {
				if lmsapi.IsUnauthorized(err) {
					return errors.New("invalid email or password")
				}
				return errors.Wrap(err, "signing in")
			}

			a.logger.Info("signed in", res.User.SessionUser())
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s). Dashboard: %s\n",
				res.User.Name, res.User.Role, session.DashboardFor(res.User.Role))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Short:   "Show the signed-in user",
		Args:    cobra.NoArgs,
		PreRunE: a.require(session.Authenticated),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, _ := a.client.Sessions().Current()
			usr := sess.User
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nrole: %s\nid: %s\n", usr.Name, usr.Email, usr.Role, usr.UserID)
			return nil
		},
	}
}

func newPasswordCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage your password",
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "change",
		Short:   "Change your password; current and new passwords are prompted",
		Args:    cobra.NoArgs,
		PreRunE: a.require(session.Authenticated),
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := url.Values{}
			prompts := []struct{ field, prompt string }{
				{forms.FieldOldPassword, "Current password"},
				{forms.FieldNewPassword, "New password"},
				{forms.FieldConfirmPassword, "Confirm new password"},
			}
			for _, p := range prompts {
				pwd, err := readPassword(cmd, p.prompt)
				if err != nil {
					return err
				}
				values.Set(p.field, pwd)
			}

			p, err := submit(forms.ChangePasswordForm(), values)
			if err != nil {
				return err
			}
			err = a.client.ChangePassword(cmd.Context(), lmsapi.PasswordChange{
				OldPassword: p.String(forms.FieldOldPassword),
				NewPassword: p.String(forms.FieldNewPassword),
			})
			if err != nil {
				return errors.Wrap(err, "changing password")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed.")
			return nil
		},
	})
	return cmd
}

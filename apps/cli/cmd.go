package main

import (
	"fmt"
	"io"
	"net/url"
	"syscall"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	lmsapi "github.com/trezcool/masomo-portal/apps/api"
	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/forms"
	"github.com/trezcool/masomo-portal/core/session"
	"github.com/trezcool/masomo-portal/storage/kv"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errNotSignedIn = errors.New("not signed in: run `masomo login` first")
)

type app struct {
	conf   *core.Config
	logger core.Logger
	client *lmsapi.Client
	guard  *session.Guard
	store  kv.Store
}

func newApp(conf *core.Config, logger core.Logger, client *lmsapi.Client, store kv.Store) *app {
	return &app{
		conf:   conf,
		logger: logger,
		client: client,
		guard:  session.NewGuard(client.Sessions()),
		store:  store,
	}
}

func (a *app) close() {
	a.client.Close()
	if err := a.store.Close(); err != nil {
		a.logger.Error("closing session storage", err)
	}
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "masomo",
		Short:         "Masomo LMS command line",
		Version:       a.conf.Build,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newLoginCommand(a))
	cmd.AddCommand(newLogoutCommand(a))
	cmd.AddCommand(newWhoamiCommand(a))
	cmd.AddCommand(newPasswordCommand(a))
	cmd.AddCommand(newCoursesCommand(a))
	cmd.AddCommand(newModulesCommand(a))
	cmd.AddCommand(newEnrollCommand(a))
	cmd.AddCommand(newEnrollmentsCommand(a))
	cmd.AddCommand(newProgressCommand(a))
	cmd.AddCommand(newUploadCommand(a))
	cmd.AddCommand(newAdminCommand(a))

	return cmd
}

// require returns a PreRunE hook enforcing req on the stored session.
func (a *app) require(req session.Requirement) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		d := a.guard.Check(req)
		switch {
		case d.Allow:
			return nil
		case d.Redirect == session.LoginPath:
			return errNotSignedIn
		default:
			return errors.Errorf("permission denied: %s accounts cannot run %q", d.Session.User.Role, cmd.CommandPath())
		}
	}
}

// readPassword prompts for a password on the terminal.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt+": ")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}

// submit fills f with values and returns its payload, or the *core.ValidationError of its failing fields.
func submit(f *forms.Form, values url.Values) (forms.Payload, error) {
	f.Fill(values)
	p, ok := f.Submit()
	if !ok {
		return nil, f.Errors()
	}
	return p, nil
}

func newTable(w io.Writer, header string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	return tw
}

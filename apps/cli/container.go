package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	lmsapi "github.com/trezcool/masomo-portal/apps/api"
	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/cache"
	"github.com/trezcool/masomo-portal/core/session"
	logsvc "github.com/trezcool/masomo-portal/services/logger"
	"github.com/trezcool/masomo-portal/storage/kv"
)

// loginHint is the CLI navigator: a global sign-out can only tell the user to log in again.
type loginHint struct {
	w io.Writer
}

func (h *loginHint) Redirect(string) {
	fmt.Fprintln(h.w, "Your session has expired. Run `masomo login` to sign in again.")
}

func newStore(conf *core.Config, logger core.Logger) (kv.Store, error) {
	store, err := kv.Open(conf, logger)
	if err != nil {
		return nil, errors.Wrap(err, "opening session storage")
	}
	return store, nil
}

func newSessions(store kv.Store) *session.Manager {
	return session.NewManager(store)
}

func newCache(logger core.Logger) *cache.Cache {
	return cache.New(
		cache.WithLogger(logger),
		cache.WithMetrics(cache.NewMetrics(prometheus.DefaultRegisterer)),
	)
}

func newLoginHint() *loginHint {
	return &loginHint{w: os.Stderr}
}

func newClient(conf *core.Config, sessions *session.Manager, qc *cache.Cache, logger core.Logger, hint *loginHint) *lmsapi.Client {
	return lmsapi.New(conf, sessions,
		lmsapi.WithCache(qc),
		lmsapi.WithLogger(logger),
		lmsapi.WithNavigator(hint),
	)
}

// newContainer returns the dependency injection dig.Container of the CLI.
func newContainer() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(logsvc.NewLogger))
	must(c.Provide(newStore))
	must(c.Provide(newSessions))
	must(c.Provide(newCache))
	must(c.Provide(newLoginHint))
	must(c.Provide(newClient))
	must(c.Provide(newApp))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}

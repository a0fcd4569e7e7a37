package logsvc

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/session"
)

// ConsoleLogger writes leveled, human readable logs with zerolog. Used in debug mode and by the CLI.
type ConsoleLogger struct {
	zl   zerolog.Logger
	exit func(int)
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(w io.Writer, conf *core.Config) *ConsoleLogger {
	level, err := zerolog.ParseLevel(conf.Log.Level)
	if err != nil || conf.Log.Level == "" {
		level = zerolog.InfoLevel
	}
	if conf.Debug {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: conf.TestMode}).
		Level(level).
		With().
		Timestamp().
		Str("app", conf.AppName).
		Logger()
	return &ConsoleLogger{zl: zl, exit: os.Exit}
}

// NewLogger picks the console logger in debug mode, rollbar otherwise.
func NewLogger(conf *core.Config) core.Logger {
	if conf.Debug {
		return NewConsoleLogger(os.Stderr, conf)
	}
	return NewRollbarLogger(newStdLogger(conf), conf)
}

// expected fmt: error, map[string]interface{}, session.User
func (l ConsoleLogger) log(ev *zerolog.Event, msg string, args []interface{}) {
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			ev = ev.Err(a)
		case map[string]interface{}:
			ev = ev.Fields(a)
		case session.User:
			ev = ev.Str("user_id", a.UserID).Str("role", a.Role)
		default:
			ev = ev.Interface("extra", a)
		}
	}
	ev.Msg(msg)
}

func (l ConsoleLogger) Debug(msg string, args ...interface{}) {
	l.log(l.zl.Debug(), msg, args)
}

func (l ConsoleLogger) Info(msg string, args ...interface{}) {
	l.log(l.zl.Info(), msg, args)
}

func (l ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.log(l.zl.Warn(), msg, args)
}

func (l ConsoleLogger) Error(msg string, args ...interface{}) {
	l.log(l.zl.Error(), msg, args)
}

// Fatal logs at fatal level then exits.
func (l ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.log(l.zl.WithLevel(zerolog.FatalLevel), msg, args)
	l.exit(1)
}

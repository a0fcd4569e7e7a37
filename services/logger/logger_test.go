package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/session"
)

func testConfig(level string, debug bool) *core.Config {
	conf := &core.Config{AppName: "Masomo", Debug: debug, TestMode: true}
	conf.Log.Level = level
	return conf
}

func TestConsoleLogger(t *testing.T) {
	usr := session.User{UserID: "user-1", Role: session.RoleStudent}

	tests := []struct {
		name    string
		conf    *core.Config
		log     func(l *ConsoleLogger)
		want    []string
		wantNot []string
	}{
		{
			name: "info filters debug",
			conf: testConfig("info", false),
			log: func(l *ConsoleLogger) {
				l.Debug("hidden")
				l.Info("shown")
			},
			want:    []string{"shown", "app=Masomo"},
			wantNot: []string{"hidden"},
		},
		{
			name: "debug mode",
			conf: testConfig("error", true),
			log:  func(l *ConsoleLogger) { l.Debug("shown") },
			want: []string{"shown"},
		},
		{
			name: "bad level falls back to info",
			conf: testConfig("lol", false),
			log: func(l *ConsoleLogger) {
				l.Debug("hidden")
				l.Warn("shown")
			},
			want:    []string{"shown"},
			wantNot: []string{"hidden"},
		},
		{
			name: "args",
			conf: testConfig("info", false),
			log: func(l *ConsoleLogger) {
				l.Error("failed", errors.New("boom"), map[string]interface{}{"path": "/courses"}, usr)
			},
			want: []string{"failed", "boom", "path=/courses", "user_id=user-1", "role=student"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewConsoleLogger(&buf, tt.conf))
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.wantNot {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestConsoleLogger_Fatal(t *testing.T) {
	var buf bytes.Buffer
	var code int
	l := NewConsoleLogger(&buf, testConfig("info", false))
	l.exit = func(c int) { code = c }

	l.Fatal("giving up")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "giving up")
}

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "", 0), testConfig("info", false))

	l.Info("signed in", session.User{UserID: "user-1"}, map[string]interface{}{"role": "admin"})
	assert.Equal(t, "signed in\n{UserID:user-1 Name: Email: Role:}\nmap[role:admin]\n", buf.String())
}

func TestNewLogger(t *testing.T) {
	if _, ok := NewLogger(testConfig("info", true)).(*ConsoleLogger); !ok {
		t.Error("NewLogger() in debug mode should be a *ConsoleLogger")
	}
	if _, ok := NewLogger(testConfig("info", false)).(*RollbarLogger); !ok {
		t.Error("NewLogger() should be a *RollbarLogger")
	}
}

package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_APIBASEURL", "http://lms.test/api/")
	t.Setenv("TEST_APITIMEOUT", "5s")

	conf := NewConfig()

	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.True(t, conf.Storage.InMemory)
	assert.Equal(t, "http://lms.test/api", conf.API.BaseURL)
	assert.Equal(t, 5*time.Second, conf.API.Timeout)
	assert.Equal(t, "/login", conf.API.LoginPath)
	assert.Equal(t, "Masomo", conf.AppName)
}

package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env          string // DEV (local; default), TEST, QA, PROD
	Debug        bool
	TestMode     bool
	AppName      string
	Build        string
	RollbarToken string

	API struct {
		BaseURL   string
		Timeout   time.Duration
		LoginPath string // where the app navigates on a global sign-out
	}

	Storage struct {
		Dir      string // durable client storage (badger)
		InMemory bool
	}

	Log struct {
		Level string
	}
}

// NewConfig reads the configuration from the environment (prefixed with ENV) and the optional
// `config/.env.<env>` file found under the working directory.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Masomo")
	conf.SetDefault("build", "develop")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("apiBaseURL", "http://localhost:5000/api")
	conf.SetDefault("apiTimeout", 30*time.Second)
	conf.SetDefault("loginPath", "/login")
	conf.SetDefault("storageDir", filepath.Join(userDir(), ".masomo"))
	conf.SetDefault("storageInMemory", false)
	conf.SetDefault("logLevel", "info")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
		conf.SetDefault("storageInMemory", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
	}
	c.API.BaseURL = strings.TrimRight(conf.GetString("apiBaseURL"), "/")
	c.API.Timeout = conf.GetDuration("apiTimeout")
	c.API.LoginPath = conf.GetString("loginPath")
	c.Storage.Dir = conf.GetString("storageDir")
	c.Storage.InMemory = conf.GetBool("storageInMemory")
	c.Log.Level = conf.GetString("logLevel")
	return c
}

func userDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return os.TempDir()
}

package appconf

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag onto an Environment. Unknown values are development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// ScriptConfig describes the external statistical script used for the alternate computation path.
type ScriptConfig struct {
	Interpreter string
	Path        string
	Timeout     time.Duration
}

// Config holds all the configuration settings for the Application.
type Config struct {
	Port     int
	Env      Environment
	LogLevel string
	ApiKeys  []string

	// RateLimit is the number of requests per second allowed per API key.
	RateLimit int

	DatasetSource    string
	AlternativesPath string // empty means the built-in registry
	DBPath           string

	Script ScriptConfig
}

// Default returns the settings used when no flag or environment variable overrides them.
func Default() Config {
	return Config{
		Port:          4000,
		Env:           Development,
		LogLevel:      "info",
		ApiKeys:       []string{"test"},
		RateLimit:     100,
		DatasetSource: "CCJ_MVPF.csv",
		DBPath:        ":memory:",
		Script: ScriptConfig{
			Interpreter: "Rscript",
			Path:        "mvpf_calculator.R",
			Timeout:     5 * time.Second,
		},
	}
}

// SplitAPIKeys parses a comma separated key list, dropping blanks.
func SplitAPIKeys(value string) []string {
	var keys []string
	for _, key := range strings.Split(value, ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// Validate reports configuration that would prevent the server from starting.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if strings.TrimSpace(c.DatasetSource) == "" {
		errs = append(errs, errors.New("dataset source is required"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("rate limit must be non-negative"))
	}
	if c.Script.Timeout <= 0 {
		errs = append(errs, errors.New("script timeout must be positive"))
	}
	if c.Env == Test && c.DBPath != ":memory:" {
		errs = append(errs, fmt.Errorf("test environment requires an in-memory row store, got %q", c.DBPath))
	}
	return errors.Join(errs...)
}

package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"mvpf.ccj.org/internal/appconf"
)

// envOr returns the environment value for key, or def when unset.
func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// environmentFromArgs finds the environment before full flag parsing, so that .env
// loading can honour -env as well as MVPF_ENV. The flag wins over the variable.
func environmentFromArgs(args []string, getenv func(string) string) appconf.Environment {
	env := getenv("MVPF_ENV")
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name != "env" {
			continue
		}
		if !hasValue && i+1 < len(args) {
			i++
			value = args[i]
		}
		env = value
	}
	return appconf.EnvFlagToEnvironment(env)
}

// parseConfig reads command line flags. Environment variables provide the flag defaults.
func parseConfig(args []string, getenv func(string) string, output io.Writer) (appconf.Config, error) {
	cfg := appconf.Default()

	port, err := strconv.Atoi(envOr(getenv, "MVPF_PORT", strconv.Itoa(cfg.Port)))
	if err != nil {
		return cfg, fmt.Errorf("MVPF_PORT: %w", err)
	}
	rateLimit, err := strconv.Atoi(envOr(getenv, "MVPF_RATE_LIMIT", strconv.Itoa(cfg.RateLimit)))
	if err != nil {
		return cfg, fmt.Errorf("MVPF_RATE_LIMIT: %w", err)
	}
	timeout, err := time.ParseDuration(envOr(getenv, "MVPF_SCRIPT_TIMEOUT", cfg.Script.Timeout.String()))
	if err != nil {
		return cfg, fmt.Errorf("MVPF_SCRIPT_TIMEOUT: %w", err)
	}

	var (
		envFlag     string
		apiKeysFlag string
	)

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Port, "port", port, "API server port")
	fs.StringVar(&envFlag, "env", envOr(getenv, "MVPF_ENV", "development"), "Environment (development|test|production)")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr(getenv, "MVPF_LOG_LEVEL", cfg.LogLevel), "Log level (debug|info|warn|error)")
	fs.StringVar(&apiKeysFlag, "api-keys", envOr(getenv, "MVPF_API_KEYS", "test"), "Comma Separated API Keys (test, etc)")
	fs.IntVar(&cfg.RateLimit, "rate-limit", rateLimit, "Requests per second per API key")
	fs.StringVar(&cfg.DatasetSource, "dataset", envOr(getenv, "MVPF_DATASET", cfg.DatasetSource), "Path or http(s) URL of the dataset CSV")
	fs.StringVar(&cfg.AlternativesPath, "alternatives", envOr(getenv, "MVPF_ALTERNATIVES", ""), "YAML file defining the alternatives (default: built-in table)")
	fs.StringVar(&cfg.DBPath, "db-path", envOr(getenv, "MVPF_DB_PATH", cfg.DBPath), "SQLite path for the row store")
	fs.StringVar(&cfg.Script.Interpreter, "script-interpreter", envOr(getenv, "MVPF_SCRIPT_INTERPRETER", cfg.Script.Interpreter), "Interpreter for the external script")
	fs.StringVar(&cfg.Script.Path, "script", envOr(getenv, "MVPF_SCRIPT_PATH", cfg.Script.Path), "External MVPF script")
	fs.DurationVar(&cfg.Script.Timeout, "script-timeout", timeout, "Timeout for one external script run")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)
	cfg.ApiKeys = appconf.SplitAPIKeys(apiKeysFlag)

	return cfg, cfg.Validate()
}

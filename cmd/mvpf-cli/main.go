// Command mvpf-cli runs one calculation cycle from the command line and prints the result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"mvpf.ccj.org/internal/appconf"
	"mvpf.ccj.org/internal/bridge"
	"mvpf.ccj.org/internal/dataset"
	"mvpf.ccj.org/internal/logging"
	"mvpf.ccj.org/internal/models"
	"mvpf.ccj.org/internal/mvpf"
	"mvpf.ccj.org/internal/registry"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// run returns the process exit code: 0 on success, 1 on load failures, 2 on usage errors.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	defaults := appconf.Default()

	fs := flag.NewFlagSet("mvpf-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	datasetSource := fs.String("dataset", envOr(getenv, "MVPF_DATASET", defaults.DatasetSource), "Path or http(s) URL of the dataset CSV")
	alternativesPath := fs.String("alternatives", envOr(getenv, "MVPF_ALTERNATIVES", ""), "YAML file defining the alternatives")
	interpreter := fs.String("script-interpreter", envOr(getenv, "MVPF_SCRIPT_INTERPRETER", defaults.Script.Interpreter), "Interpreter for the external script")
	script := fs.String("script", envOr(getenv, "MVPF_SCRIPT_PATH", defaults.Script.Path), "External MVPF script")
	defaultTimeout, err := time.ParseDuration(envOr(getenv, "MVPF_SCRIPT_TIMEOUT", defaults.Script.Timeout.String()))
	if err != nil {
		fmt.Fprintf(stderr, "invalid MVPF_SCRIPT_TIMEOUT: %v\n", err)
		return 2
	}
	timeout := fs.Duration("script-timeout", defaultTimeout, "Timeout for the external script")
	id := fs.String("id", "1", "Alternative id")
	scenario := fs.String("scenario", mvpf.DefaultScenario, "Scenario code (NYC, MTL, SF)")
	year := fs.Int("year", mvpf.DefaultYear, "Year")
	valuationYear := fs.Int("valuation-year", mvpf.DefaultValuationYear, "Dollar year the figures are expressed in")
	var options [3]bool
	for i := range options {
		fs.BoolVar(&options[i], fmt.Sprintf("option%d", i+1), false, fmt.Sprintf("Option %d switch", i+1))
	}
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	list := fs.Bool("list", false, "List alternatives and exit")
	logLevel := fs.String("log-level", envOr(getenv, "MVPF_LOG_LEVEL", "warn"), "Log level for diagnostics on stderr")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := logging.NewStructuredLogger(stderr, logging.ParseLevel(*logLevel))

	reg := registry.Default()
	if *alternativesPath != "" {
		var err error
		if reg, err = registry.LoadFile(*alternativesPath); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
	}

	if *list {
		for _, alt := range reg.Alternatives() {
			fmt.Fprintf(stdout, "%d\t%s\n", alt.ID, alt.Label)
		}
		return 0
	}

	query := url.Values{}
	query.Set("scenario", *scenario)
	query.Set("year", strconv.Itoa(*year))
	query.Set("valuation_year", strconv.Itoa(*valuationYear))
	for i, on := range options {
		query.Set(fmt.Sprintf("option%d", i+1), strconv.FormatBool(on))
	}
	req, fieldErrors := mvpf.ParseRequest(query, *id)
	if len(fieldErrors) > 0 {
		for field, msgs := range fieldErrors {
			fmt.Fprintf(stderr, "invalid %s: %s\n", field, strings.Join(msgs, "; "))
		}
		return 2
	}

	ds, err := dataset.Load(ctx, *datasetSource, logger)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	runner := bridge.NewScriptRunner(bridge.Config{
		Interpreter: *interpreter,
		Script:      *script,
		Timeout:     *timeout,
	}, logger)
	calc := mvpf.NewCalculator(mvpf.NewResolver(reg), ds, runner, logger)

	res := calc.Calculate(ctx, req)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(models.NewCalculationModel(res)); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		return 0
	}

	printResult(stdout, res)
	return 0
}

func printResult(w io.Writer, res mvpf.Result) {
	fmt.Fprintln(w, res.OptionSummary)
	fmt.Fprintf(w, "Valuation year: %d\n", res.Request.ValuationYear)
	fmt.Fprintln(w, res.MVPFText)
	if !res.Selection.Found {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d. %s\n", res.Selection.AlternativeID, res.Selection.Label)
	fmt.Fprintln(w, res.Selection.BreakdownText())
	if len(res.Selection.Unmatched) > 0 {
		fmt.Fprintf(w, "Not in dataset: %s\n", strings.Join(res.Selection.Unmatched, ", "))
	}
	if res.Duration > time.Second {
		fmt.Fprintf(w, "(took %s)\n", res.Duration.Round(time.Millisecond))
	}
}

package mvpf

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mvpf.ccj.org/internal/bridge"
	"mvpf.ccj.org/internal/dataset"
	"mvpf.ccj.org/internal/logging"
)

const externalPrefix = "MVPF (external): "

// Request is one submission from a presentation shell.
type Request struct {
	AlternativeID int
	Scenario      string
	Year          int
	// ValuationYear is the dollar year of the figures; it is echoed, never computed with.
	ValuationYear int
	Options       [3]bool
}

// AnyOption reports whether any option switch is on.
func (r Request) AnyOption() bool {
	return r.Options[0] || r.Options[1] || r.Options[2]
}

// OptionSummary echoes the switch states and scenario.
func (r Request) OptionSummary() string {
	return fmt.Sprintf("Switch states: Option 1: %t, Option 2: %t, Option 3: %t, scenario: %s",
		r.Options[0], r.Options[1], r.Options[2], r.Scenario)
}

// Result is everything a shell needs to render one cycle.
type Result struct {
	RequestID     string
	Request       Request
	Selection     Selection
	MVPFText      string
	OptionSummary string
	// External is set when the bridge was invoked.
	External      bool
	ExternalValue string
	ExternalError error
	Duration      time.Duration
}

// Calculator runs the interaction cycle: resolve locally, optionally ask the external script.
type Calculator struct {
	resolver *Resolver
	dataset  *dataset.Dataset
	runner   bridge.Runner
	logger   *slog.Logger
}

func NewCalculator(resolver *Resolver, ds *dataset.Dataset, runner bridge.Runner, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{resolver: resolver, dataset: ds, runner: runner, logger: logger}
}

func (c *Calculator) Dataset() *dataset.Dataset {
	return c.dataset
}

func (c *Calculator) Resolver() *Resolver {
	return c.resolver
}

// Calculate always returns a renderable result. Bridge failures are folded into MVPFText.
func (c *Calculator) Calculate(ctx context.Context, req Request) Result {
	start := time.Now()
	if req.Scenario == "" {
		req.Scenario = DefaultScenario
	}
	if req.Year == 0 {
		req.Year = DefaultYear
	}
	if req.ValuationYear == 0 {
		req.ValuationYear = DefaultValuationYear
	}

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := c.logger.With(slog.String("request_id", requestID))

	res := Result{
		RequestID:     requestID,
		Request:       req,
		Selection:     c.resolver.Resolve(req.AlternativeID, c.dataset),
		OptionSummary: req.OptionSummary(),
	}

	if req.AnyOption() && c.runner != nil {
		res.External = true
		out, err := c.runner.Run(ctx, bridge.Args{Scenario: req.Scenario, Year: req.Year, Options: req.Options})
		if err != nil {
			res.ExternalError = err
			res.MVPFText = bridge.FailureText(err)
			logging.LogError(logger, "external computation failed", err,
				slog.Int("alternative_id", req.AlternativeID),
				slog.String("scenario", req.Scenario),
				slog.Int("year", req.Year))
		} else {
			res.ExternalValue = out
			res.MVPFText = externalPrefix + out
		}
	} else {
		res.MVPFText = res.Selection.Message()
	}

	res.Duration = time.Since(start)
	logging.LogOperation(logger, "mvpf_calculated",
		slog.Int("alternative_id", req.AlternativeID),
		slog.Bool("found", res.Selection.Found),
		slog.Int("matched", len(res.Selection.Matched)),
		slog.Int("unmatched", len(res.Selection.Unmatched)),
		slog.Float64("aggregate", res.Selection.Aggregate),
		slog.Bool("external", res.External),
		slog.Duration("duration", res.Duration))

	return res
}

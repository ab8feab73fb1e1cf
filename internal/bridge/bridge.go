// Package bridge runs the external statistical script that provides the alternate MVPF computation.
//
// The script is a black box: it receives the scenario, year and three option switches as
// positional arguments and its trimmed standard output is the result.
package bridge

import (
	"context"
	"strconv"
)

// FailurePrefix starts every display string produced for a failed invocation.
const FailurePrefix = "Error running external script: "

// Args are the positional inputs passed to the script.
type Args struct {
	Scenario string
	Year     int
	Options  [3]bool
}

// Strings renders the arguments in the order the script expects:
// scenario, year, switch1, switch2, switch3.
func (a Args) Strings() []string {
	return []string{
		a.Scenario,
		strconv.Itoa(a.Year),
		strconv.FormatBool(a.Options[0]),
		strconv.FormatBool(a.Options[1]),
		strconv.FormatBool(a.Options[2]),
	}
}

// Runner performs one external computation and returns its result text.
type Runner interface {
	Run(ctx context.Context, args Args) (string, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, args Args) (string, error)

func (f RunnerFunc) Run(ctx context.Context, args Args) (string, error) {
	return f(ctx, args)
}

// FailureText turns a Run error into the string shown to the user.
func FailureText(err error) string {
	if err == nil {
		return ""
	}
	return FailurePrefix + err.Error()
}

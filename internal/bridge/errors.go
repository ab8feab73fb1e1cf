package bridge

import (
	"errors"
	"fmt"
	"time"
)

// ErrProcess matches every ProcessError via errors.Is.
var ErrProcess = errors.New("external process failure")

// FailureKind classifies why an external computation did not produce a result.
type FailureKind int

const (
	MissingExecutable FailureKind = iota + 1
	NonZeroExit
	Timeout
	Canceled
	InvalidOutput
)

func (k FailureKind) String() string {
	switch k {
	case MissingExecutable:
		return "missing executable"
	case NonZeroExit:
		return "non-zero exit"
	case Timeout:
		return "timeout"
	case Canceled:
		return "canceled"
	case InvalidOutput:
		return "invalid output"
	default:
		return "unknown"
	}
}

// ProcessError describes a failed script invocation.
type ProcessError struct {
	Kind     FailureKind
	Command  string
	ExitCode int
	Stderr   string
	Timeout  time.Duration
	Err      error
}

func (e *ProcessError) Error() string {
	switch e.Kind {
	case MissingExecutable:
		return fmt.Sprintf("missing executable: %v", e.Err)
	case NonZeroExit:
		if e.Stderr != "" {
			return fmt.Sprintf("exit status %d: %s", e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("exit status %d", e.ExitCode)
	case Timeout:
		return fmt.Sprintf("timed out after %s", e.Timeout)
	case Canceled:
		return fmt.Sprintf("canceled: %v", e.Err)
	case InvalidOutput:
		return fmt.Sprintf("invalid output: %v", e.Err)
	default:
		return fmt.Sprintf("%v", e.Err)
	}
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func (e *ProcessError) Is(target error) bool {
	return target == ErrProcess
}

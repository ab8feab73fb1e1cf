package dataset

import (
	"errors"
	"fmt"
)

// ErrLoad matches every dataset load failure via errors.Is.
var ErrLoad = errors.New("dataset load failed")

var (
	ErrNoHeader      = errors.New("missing header row")
	ErrNoRows        = errors.New("dataset has no rows")
	ErrEmptyName     = errors.New("empty row name")
	ErrDuplicateName = errors.New("duplicate row name")
)

// LoadError describes why a dataset could not be loaded. Line is 0 when not tied to a line.
type LoadError struct {
	Source string
	Line   int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load dataset %s: line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

func duplicateNameError(name string) error {
	return fmt.Errorf("%w %q", ErrDuplicateName, name)
}

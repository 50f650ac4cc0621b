package runner

import (
	"errors"
	"fmt"
)

// Outcome is the result of processing one file.
type Outcome[T any] struct {
	// Path is the file that was processed.
	Path string

	// Value is the processor's result. It is the zero value when Err is set.
	Value T

	// Err is set when processing failed.
	Err error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files handed to the runner.
	FilesDiscovered int

	// FilesProcessed is the number of files processed without error.
	FilesProcessed int

	// FilesErrored is the number of files whose processing failed.
	FilesErrored int

	// FilesSkipped is the number of files never attempted because the run
	// stopped early.
	FilesSkipped int
}

// Result is the overall runner result.
type Result[T any] struct {
	// Outcomes holds one entry per attempted file, in input order.
	Outcomes []Outcome[T]

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Values returns the values of every successful outcome, in order.
func (r *Result[T]) Values() []T {
	if r == nil {
		return nil
	}
	values := make([]T, 0, r.Stats.FilesProcessed)
	for _, o := range r.Outcomes {
		if o.Err == nil {
			values = append(values, o.Value)
		}
	}
	return values
}

// Err joins the errors of every failed outcome, prefixed with the path.
// It returns nil when every attempted file succeeded.
func (r *Result[T]) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Path, o.Err))
		}
	}
	return errors.Join(errs...)
}

func (r *Result[T]) accumulate(o Outcome[T]) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Err != nil {
		r.Stats.FilesErrored++
		return
	}
	r.Stats.FilesProcessed++
}

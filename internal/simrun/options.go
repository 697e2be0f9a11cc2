// Package simrun drives a Pcolony or Pswarm to completion, or to a
// configured step/time limit.
package simrun

import (
	"fmt"
	"time"
)

// Options configures a single simulation run.
type Options struct {
	StepByStep     bool
	PrintEachState bool
	MaxSteps       int           // 0 = unlimited
	MaxTime        time.Duration // 0 = unlimited
	Seed           int64
}

// DefaultOptions returns a runnable, conservative baseline the caller
// can override selectively.
func DefaultOptions() Options {
	return Options{
		StepByStep:     false,
		PrintEachState: false,
		MaxSteps:       0,
		MaxTime:        0,
		Seed:           1,
	}
}

// Validate checks Options for internally consistent values.
func (o Options) Validate() error {
	if o.MaxSteps < 0 {
		return fmt.Errorf("simrun: MaxSteps must be >= 0, got %d", o.MaxSteps)
	}
	if o.MaxTime < 0 {
		return fmt.Errorf("simrun: MaxTime must be >= 0, got %s", o.MaxTime)
	}
	return nil
}

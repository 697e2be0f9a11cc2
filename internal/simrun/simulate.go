package simrun

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrei91ro/pcolsim/internal/colony"
	"github.com/andrei91ro/pcolsim/internal/multiset"
)

// Stepper is anything that can be advanced one synchronous step at a
// time; both *colony.Pcolony (via StandaloneColony) and *swarm.Pswarm
// satisfy it, so Simulate works identically over either.
type Stepper interface {
	RunStep(rng *rand.Rand) (colony.StepResult, error)
}

// StandaloneColony adapts a lone *colony.Pcolony (one running outside
// any Pswarm) to the Stepper interface, supplying the three
// swarm-level environments as independent multisets that start empty:
// a standalone colony simply has no swarm to share them with.
type StandaloneColony struct {
	Colony               *colony.Pcolony
	global, in, out multiset.Multiset
}

// NewStandaloneColony wraps c for use with Simulate.
func NewStandaloneColony(c *colony.Pcolony) *StandaloneColony {
	return &StandaloneColony{
		Colony: c,
		global: multiset.New(),
		in:     multiset.New(),
		out:    multiset.New(),
	}
}

func (s *StandaloneColony) RunStep(rng *rand.Rand) (colony.StepResult, error) {
	return s.Colony.RunStep(rng, s.global, s.in, s.out)
}

// Outcome classifies why Simulate stopped. It is not an error: a
// step/time limit is not fatal, distinct from the error-carrying
// StepResult.Error case.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeStepLimit
	OutcomeTimeLimit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "Completed"
	case OutcomeStepLimit:
		return "StepLimit"
	case OutcomeTimeLimit:
		return "TimeLimit"
	default:
		return "Unknown"
	}
}

// Result summarizes a finished (or limit-stopped) simulation run.
// Trajectory holds one TrajectoryRow per completed step, in order,
// ready to pass to WriteTrajectoryCSV.
type Result struct {
	Outcome    Outcome
	Steps      int
	Final      colony.StepResult
	Elapsed    time.Duration
	Trajectory []TrajectoryRow
}

// StepObserver is called once after every step that completes (but
// not after a canceled or errored step); the CLI driver uses it for
// --step (wait for confirmation) and verbose per-step tracing.
type StepObserver func(step int, result colony.StepResult)

// Simulate runs stepper to completion, or until opts.MaxSteps or
// opts.MaxTime is hit, or ctx is canceled: checked once per step,
// never mid-step. rng is the process-wide tie-breaking source
// threaded through every step.
func Simulate(ctx context.Context, stepper Stepper, rng *rand.Rand, opts Options, logger zerolog.Logger, observe StepObserver) (Result, error) {
	start := time.Now()
	lastMark := start
	steps := 0
	var last colony.StepResult
	var trajectory []TrajectoryRow

	for {
		if err := ctx.Err(); err != nil {
			return Result{Outcome: OutcomeCompleted, Steps: steps, Final: last, Elapsed: time.Since(start), Trajectory: trajectory}, err
		}

		result, err := stepper.RunStep(rng)
		if err != nil {
			logger.Error().Err(err).Int("step", steps+1).Msg("simulation step failed")
			return Result{Outcome: OutcomeCompleted, Steps: steps, Final: colony.Error, Elapsed: time.Since(start), Trajectory: trajectory}, err
		}
		steps++
		last = result
		now := time.Now()
		trajectory = append(trajectory, TrajectoryRow{Step: steps, Result: result.String(), Elapsed: now.Sub(lastMark)})
		lastMark = now

		if observe != nil {
			observe(steps, result)
		}
		logger.Debug().Int("step", steps).Str("result", result.String()).Msg("step finished")

		if result == colony.NoMoreExecutables {
			return Result{Outcome: OutcomeCompleted, Steps: steps, Final: result, Elapsed: time.Since(start), Trajectory: trajectory}, nil
		}
		if opts.MaxSteps > 0 && steps >= opts.MaxSteps {
			logger.Info().Int("step", steps).Msg("stopped: step limit reached")
			return Result{Outcome: OutcomeStepLimit, Steps: steps, Final: result, Elapsed: time.Since(start), Trajectory: trajectory}, nil
		}
		if opts.MaxTime > 0 && time.Since(start) >= opts.MaxTime {
			logger.Info().Dur("elapsed", time.Since(start)).Msg("stopped: time limit reached")
			return Result{Outcome: OutcomeTimeLimit, Steps: steps, Final: result, Elapsed: time.Since(start), Trajectory: trajectory}, nil
		}
	}
}

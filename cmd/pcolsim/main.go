// Command pcolsim parses a P colony / P swarm input file and runs it
// to completion or to a configured limit.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrei91ro/pcolsim/internal/colony"
	"github.com/andrei91ro/pcolsim/internal/dsl"
	"github.com/andrei91ro/pcolsim/internal/rulegen"
	"github.com/andrei91ro/pcolsim/internal/simrun"
)

func main() {
	var (
		step       = flag.Bool("step", false, "wait for confirmation between simulation steps")
		debugA     = flag.Bool("debug", false, "verbose tracing")
		debugB     = flag.Bool("v", false, "verbose tracing (alias of --debug)")
		errorOnlyA = flag.Bool("error", false, "errors only")
		errorOnlyB = flag.Bool("v0", false, "errors only (alias of --error)")
		ruleHeader = flag.String("ruleheader", "", "emit a C rule-kind header (and source) at this path and exit")
		seed       = flag.Int64("seed", 1, "RNG seed, for reproducible runs")
		maxSteps   = flag.Int("max-steps", 0, "stop after this many steps (0 = unlimited)")
		maxTime    = flag.Duration("max-time", 0, "stop after this much wall-clock time (0 = unlimited)")
		suffixes   = flag.String("suffixes", "", "comma-separated suffix list for * wildcard expansion, applied once after parsing")
		trajectory = flag.String("trajectory", "", "write a per-step trajectory CSV to this path")
	)
	flag.Parse()

	if *ruleHeader != "" {
		if err := rulegen.Generate(*ruleHeader, time.Now()); err != nil {
			fmt.Fprintln(os.Stderr, "error generating rule header:", err)
			os.Exit(1)
		}
		fmt.Println("wrote", *ruleHeader+".h", "and", *ruleHeader+".c")
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: pcolsim [flags] <input-file>")
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	level := zerolog.InfoLevel
	if *debugA || *debugB {
		level = zerolog.DebugLevel
	} else if *errorOnlyA || *errorOnlyB {
		level = zerolog.ErrorLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).
		Level(level).
		With().Timestamp().Logger()

	opts := simrun.DefaultOptions()
	opts.StepByStep = *step
	opts.PrintEachState = *debugA || *debugB
	opts.MaxSteps = *maxSteps
	opts.MaxTime = *maxTime
	opts.Seed = *seed
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error reading input file:", err)
		os.Exit(1)
	}

	tokens, err := dsl.Lex(string(source))
	if err != nil {
		logger.Error().Err(err).Msg("lex error")
		os.Exit(1)
	}
	parsed, err := dsl.NewParser(tokens).Parse()
	if err != nil {
		logger.Error().Err(err).Msg("parse error")
		os.Exit(1)
	}

	var suffixList []string
	if *suffixes != "" {
		suffixList = strings.Split(*suffixes, ",")
	}

	var stepper simrun.Stepper
	switch {
	case parsed.Pswarm != nil:
		parsed.Pswarm.Expand(suffixList)
		if err := parsed.Pswarm.ValidateCapacity(); err != nil {
			logger.Error().Err(err).Msg("capacity violation")
			os.Exit(1)
		}
		for _, w := range parsed.Pswarm.AlphabetWarnings() {
			logger.Warn().Msg(w)
		}
		stepper = parsed.Pswarm
	case parsed.Pcolony != nil:
		parsed.Pcolony.Expand(suffixList)
		if err := parsed.Pcolony.ValidateCapacity(); err != nil {
			logger.Error().Err(err).Msg("capacity violation")
			os.Exit(1)
		}
		for _, w := range parsed.Pcolony.AlphabetWarnings() {
			logger.Warn().Msg(w)
		}
		stepper = simrun.NewStandaloneColony(parsed.Pcolony)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	reader := bufio.NewReader(os.Stdin)

	observe := func(n int, result colony.StepResult) {
		logger.Info().Int("step", n).Str("result", result.String()).Msg("step finished")
		if opts.StepByStep {
			fmt.Fprint(os.Stderr, "press enter to continue...")
			_, _ = reader.ReadString('\n')
		}
	}

	result, err := simrun.Simulate(context.Background(), stepper, rng, opts, logger, observe)
	if err != nil {
		logger.Error().Err(err).Msg("simulation failed")
		os.Exit(1)
	}

	if *trajectory != "" {
		if err := simrun.WriteTrajectoryCSV(*trajectory, result.Trajectory); err != nil {
			logger.Error().Err(err).Msg("error writing trajectory CSV")
			os.Exit(1)
		}
	}

	logger.Info().
		Str("outcome", result.Outcome.String()).
		Int("steps", result.Steps).
		Dur("elapsed", result.Elapsed).
		Msg("simulation finished")

	if result.Outcome != simrun.OutcomeCompleted {
		os.Exit(1)
	}
	os.Exit(0)
}

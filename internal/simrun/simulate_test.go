package simrun

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrei91ro/pcolsim/internal/colony"
	"github.com/andrei91ro/pcolsim/internal/multiset"
	"github.com/andrei91ro/pcolsim/internal/rule"
)

func oneShotColony() *colony.Pcolony {
	ag := &colony.Agent{
		Name: "A1",
		Obj:  multiset.FromCounts([]string{"a"}),
		Programs: []rule.Program{
			{{MainKind: rule.Evolution, Kind: rule.Evolution, Lhs: "a", Rhs: "b"}},
		},
	}
	return &colony.Pcolony{
		Name:       "C1",
		E:          "e",
		N:          1,
		Env:        multiset.New(),
		AgentNames: []string{"A1"},
		Agents:     map[string]*colony.Agent{"A1": ag},
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.Validate())

	bad := opts
	bad.MaxSteps = -1
	assert.Error(t, bad.Validate())

	bad2 := opts
	bad2.MaxTime = -1
	assert.Error(t, bad2.Validate())
}

func TestSimulateRunsToCompletion(t *testing.T) {
	stepper := NewStandaloneColony(oneShotColony())
	rng := rand.New(rand.NewSource(1))

	result, err := Simulate(context.Background(), stepper, rng, DefaultOptions(), zerolog.Nop(), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, result.Outcome)
	assert.Equal(t, colony.NoMoreExecutables, result.Final)
	assert.Equal(t, 2, result.Steps, "one step to fire a->b, one to discover nothing left")
	require.Len(t, result.Trajectory, 2)
	assert.Equal(t, 1, result.Trajectory[0].Step)
	assert.Equal(t, 2, result.Trajectory[1].Step)
	assert.Equal(t, colony.NoMoreExecutables.String(), result.Trajectory[1].Result)
}

func TestSimulateRespectsMaxSteps(t *testing.T) {
	// An agent with an ever-renewable program never reaches NoMoreExecutables.
	ag := &colony.Agent{
		Name: "A1",
		Obj:  multiset.FromCounts([]string{"a"}),
		Programs: []rule.Program{
			{{MainKind: rule.Evolution, Kind: rule.Evolution, Lhs: "a", Rhs: "a"}},
		},
	}
	c := &colony.Pcolony{
		Name:       "C1",
		E:          "e",
		N:          1,
		Env:        multiset.New(),
		AgentNames: []string{"A1"},
		Agents:     map[string]*colony.Agent{"A1": ag},
	}
	stepper := NewStandaloneColony(c)
	rng := rand.New(rand.NewSource(1))

	opts := DefaultOptions()
	opts.MaxSteps = 5
	result, err := Simulate(context.Background(), stepper, rng, opts, zerolog.Nop(), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeStepLimit, result.Outcome)
	assert.Equal(t, 5, result.Steps)
}

func TestSimulateObserverCalledPerStep(t *testing.T) {
	stepper := NewStandaloneColony(oneShotColony())
	rng := rand.New(rand.NewSource(1))

	var seen []int
	_, err := Simulate(context.Background(), stepper, rng, DefaultOptions(), zerolog.Nop(), func(step int, result colony.StepResult) {
		seen = append(seen, step)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestSimulateRespectsContextCancellation(t *testing.T) {
	ag := &colony.Agent{
		Name: "A1",
		Obj:  multiset.FromCounts([]string{"a"}),
		Programs: []rule.Program{
			{{MainKind: rule.Evolution, Kind: rule.Evolution, Lhs: "a", Rhs: "a"}},
		},
	}
	c := &colony.Pcolony{
		Name:       "C1",
		E:          "e",
		N:          1,
		Env:        multiset.New(),
		AgentNames: []string{"A1"},
		Agents:     map[string]*colony.Agent{"A1": ag},
	}
	stepper := NewStandaloneColony(c)
	rng := rand.New(rand.NewSource(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Simulate(ctx, stepper, rng, DefaultOptions(), zerolog.Nop(), nil)
	require.Error(t, err)
}

func TestWriteTrajectoryCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.csv")

	rows := []TrajectoryRow{
		{Step: 1, Result: "Finished", Elapsed: 2 * time.Millisecond},
		{Step: 2, Result: "NoMoreExecutables", Elapsed: time.Millisecond},
	}
	require.NoError(t, WriteTrajectoryCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "step,result,elapsed_ms")
	assert.Contains(t, string(data), "Finished")
}

// Package swarm implements Pswarm: a collection of colonies advancing
// in declaration order over three shared global environments.
package swarm

import (
	"fmt"
	"math/rand"

	"github.com/andrei91ro/pcolsim/internal/colony"
	"github.com/andrei91ro/pcolsim/internal/multiset"
)

// Pswarm coordinates several Pcolony instances that share three
// environments: global_env, in_global_env and out_global_env, each the
// target of its own exteroceptive rule kind (<=>, <I=>, <=O>), which
// swaps one object in each direction. Like Pcolony, Pswarm holds no back-reference
// from any colony to itself; each RunStep call passes the shared
// environments into colony.RunStep explicitly.
type Pswarm struct {
	GlobalEnv    multiset.Multiset
	InGlobalEnv  multiset.Multiset
	OutGlobalEnv multiset.Multiset

	ColonyNames []string // declaration order, also execution order
	Colonies    map[string]*colony.Pcolony

	// done tracks colonies that have already returned
	// NoMoreExecutables; they are skipped in subsequent steps.
	done map[string]bool
}

// NewPswarm constructs a Pswarm ready for RunStep.
func NewPswarm(globalEnv, inGlobalEnv, outGlobalEnv multiset.Multiset, names []string, colonies map[string]*colony.Pcolony) *Pswarm {
	return &Pswarm{
		GlobalEnv:    globalEnv,
		InGlobalEnv:  inGlobalEnv,
		OutGlobalEnv: outGlobalEnv,
		ColonyNames:  names,
		Colonies:     colonies,
		done:         make(map[string]bool, len(names)),
	}
}

// RunStep advances every colony that has not yet finished, in
// ColonyNames order, each against the swarm's shared environments.
// The swarm step itself reports NoMoreExecutables only once every
// colony has reported it; any colony reporting Error propagates
// immediately, leaving remaining colonies for the current step
// unrun.
func (s *Pswarm) RunStep(rng *rand.Rand) (colony.StepResult, error) {
	allDone := true
	for _, name := range s.ColonyNames {
		if s.done[name] {
			continue
		}
		c := s.Colonies[name]
		result, err := c.RunStep(rng, s.GlobalEnv, s.InGlobalEnv, s.OutGlobalEnv)
		if err != nil {
			return colony.Error, err
		}
		switch result {
		case colony.NoMoreExecutables:
			s.done[name] = true
		case colony.Finished:
			allDone = false
		}
	}
	if allDone {
		return colony.NoMoreExecutables, nil
	}
	return colony.Finished, nil
}

// Done reports whether the named colony has already run out of
// executable programs.
func (s *Pswarm) Done(name string) bool {
	return s.done[name]
}

// Expand runs Pcolony.Expand against every colony in the swarm, in
// ColonyNames order. Call once, after parsing, before ValidateCapacity
// or the first RunStep.
func (s *Pswarm) Expand(suffixList []string) {
	for _, name := range s.ColonyNames {
		s.Colonies[name].Expand(suffixList)
	}
}

// ValidateCapacity runs Pcolony.ValidateCapacity against every colony
// in the swarm, in ColonyNames order, stopping at the first failure.
func (s *Pswarm) ValidateCapacity() error {
	for _, name := range s.ColonyNames {
		if err := s.Colonies[name].ValidateCapacity(); err != nil {
			return fmt.Errorf("colony %s: %w", name, err)
		}
	}
	return nil
}

// AlphabetWarnings collects AlphabetWarnings from every colony in the
// swarm, in ColonyNames order, each prefixed with the colony name.
func (s *Pswarm) AlphabetWarnings() []string {
	var warnings []string
	for _, name := range s.ColonyNames {
		for _, w := range s.Colonies[name].AlphabetWarnings() {
			warnings = append(warnings, fmt.Sprintf("colony %s: %s", name, w))
		}
	}
	return warnings
}

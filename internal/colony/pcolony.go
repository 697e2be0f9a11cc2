package colony

import (
	"math/rand"

	"github.com/andrei91ro/pcolsim/internal/multiset"
	"github.com/andrei91ro/pcolsim/internal/wildcard"
)

// StepResult classifies the outcome of a single simulation step, at
// both colony and swarm granularity.
type StepResult int

const (
	Finished StepResult = iota
	NoMoreExecutables
	Error
)

func (r StepResult) String() string {
	switch r {
	case Finished:
		return "Finished"
	case NoMoreExecutables:
		return "NoMoreExecutables"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Pcolony is a single P colony: a shared environment and the
// fixed-capacity agents that read from and write to it. A Pcolony never
// references its owning Pswarm; the three swarm-level environments it
// needs at each step are passed explicitly into RunStep, and a
// standalone colony simply passes empty ones.
type Pcolony struct {
	Name string

	Alphabet map[string]struct{}
	E        string // the elementary object: always present, inexhaustible, never produced
	F        string // the final/check object; not itself constrained by execution
	N        int    // capacity: every program must hold exactly n rules

	Env multiset.Multiset

	AgentNames []string // declaration order, also execution order
	Agents     map[string]*Agent
}

// Expand replaces Alphabet, Env, and every agent's Obj/Programs with
// their wildcard-expanded forms: %id substitutes the owning colony's
// or agent's own name, * clones once per entry in suffixList. Callers
// run this once, right after parsing, before ValidateCapacity or any
// RunStep; a colony whose input has no wildcards is unaffected.
func (c *Pcolony) Expand(suffixList []string) {
	c.Alphabet = wildcard.ExpandAlphabet(c.Alphabet, suffixList, c.Name)
	c.Env = wildcard.ExpandObjectCounts(c.Env, suffixList, c.Name)
	for _, name := range c.AgentNames {
		c.Agents[name].Expand(suffixList)
	}
}

// ValidateCapacity checks that every agent program has exactly n
// rules. It stops at the first violation, in AgentNames order and then
// program order, and reports only that one. It is a one-time
// structural check run after parsing and wildcard expansion, not a
// per-step concern.
func (c *Pcolony) ValidateCapacity() error {
	for _, name := range c.AgentNames {
		ag := c.Agents[name]
		for i, p := range ag.Programs {
			if len(p) != c.N {
				return &CapacityViolationError{
					Agent:        name,
					ProgramIndex: i,
					Got:          len(p),
					Want:         c.N,
				}
			}
		}
	}
	return nil
}

// AlphabetWarnings checks that every object appearing on any rule's
// lhs/rhs, in Env, or in an agent's Obj belongs to Alphabet.
// Violations are advisory, so they are returned as plain strings
// rather than an error.
func (c *Pcolony) AlphabetWarnings() []string {
	var warnings []string
	check := func(o, context string) {
		if o == "" {
			return
		}
		if _, ok := c.Alphabet[o]; !ok {
			warnings = append(warnings, "object "+o+" ("+context+") not declared in alphabet")
		}
	}

	for _, o := range c.Env.Objects() {
		check(o, "colony environment")
	}
	for _, name := range c.AgentNames {
		ag := c.Agents[name]
		for _, o := range ag.Obj.Objects() {
			check(o, "agent "+name+" obj")
		}
		for _, p := range ag.Programs {
			for _, r := range p {
				check(r.Lhs, "agent "+name+" rule lhs")
				check(r.Rhs, "agent "+name+" rule rhs")
				if r.AltLhs != "" {
					check(r.AltLhs, "agent "+name+" rule alt-lhs")
				}
				if r.AltRhs != "" {
					check(r.AltRhs, "agent "+name+" rule alt-rhs")
				}
			}
		}
	}
	return warnings
}

// RunStep advances the colony by one synchronous step: a pure
// selection phase over every agent (reading global/inGlobal/outGlobal
// as they stood before the step), followed by a sequential commit
// phase in AgentNames order. Because commit mutates c.Env and the
// three swarm environments in place, an agent later in AgentNames can
// observe mutations an earlier agent already made this same step:
// this is deliberate swarm-sharing behaviour, not a race.
func (c *Pcolony) RunStep(rng *rand.Rand, global, inGlobal, outGlobal multiset.Multiset) (StepResult, error) {
	selections := make(map[string]selection, len(c.AgentNames))
	var runnable []string

	for _, name := range c.AgentNames {
		ag := c.Agents[name]
		idx, choices, ok := ag.Select(c.Env, global, inGlobal, outGlobal, c.E, rng)
		if !ok {
			continue
		}
		selections[name] = selection{programIndex: idx, choices: choices}
		runnable = append(runnable, name)
	}

	if len(runnable) == 0 {
		return NoMoreExecutables, nil
	}

	for _, name := range runnable {
		sel := selections[name]
		ag := c.Agents[name]
		if err := ag.Execute(sel.programIndex, sel.choices, c.Env, global, inGlobal, outGlobal, c.E); err != nil {
			return Error, err
		}
	}
	return Finished, nil
}

// Package colony implements the Pcolony data model and its per-step
// selection/execution semantics.
package colony

import (
	"math/rand"

	"github.com/andrei91ro/pcolsim/internal/multiset"
	"github.com/andrei91ro/pcolsim/internal/rule"
	"github.com/andrei91ro/pcolsim/internal/wildcard"
)

// Agent is a single P colony component: a fixed-capacity object
// multiset plus the programs it may choose between at each step.
// Agent holds no reference back to its owning Pcolony; the
// environments it needs are passed explicitly by the caller at every
// call site.
type Agent struct {
	Name     string
	Obj      multiset.Multiset
	Programs []rule.Program
}

// Expand replaces a.Obj and a.Programs with their wildcard-expanded
// forms, substituting %id with a.Name and cloning * once per entry in
// suffixList. Called once, after parsing, before the agent is ever
// selected against.
func (a *Agent) Expand(suffixList []string) {
	a.Obj = wildcard.ExpandObjectCounts(a.Obj, suffixList, a.Name)
	a.Programs = wildcard.ExpandPrograms(a.Programs, suffixList, a.Name)
}

// selection records a runnable program found by Select: its index in
// Agent.Programs and, for each of its rules, which branch (plain rule
// or, for a Conditional rule, first/second alternative) is to run.
type selection struct {
	programIndex int
	choices      []rule.ExecChoice
}

// envFor returns the environment a rule of the given kind reads from
// and writes to, or nil for Evolution (which touches no environment).
func envFor(kind rule.Kind, env, global, in, out multiset.Multiset) multiset.Multiset {
	switch kind {
	case rule.Communication:
		return env
	case rule.Exteroceptive:
		return global
	case rule.InExteroceptive:
		return in
	case rule.OutExteroceptive:
		return out
	default:
		return nil
	}
}

// ruleEnvCondition reports whether the environment side of a
// (non-conditional) rule can fire: Evolution never needs an
// environment; every other kind needs rhs present in its environment,
// except the elementary object, which every environment always holds.
func ruleEnvCondition(kind rule.Kind, rhs string, env, global, in, out multiset.Multiset, elementary string) bool {
	if kind == rule.Evolution || rhs == elementary {
		return true
	}
	e := envFor(kind, env, global, in, out)
	return e.Contains(rhs)
}

// addRequirement records the objects a candidate program's rule would
// consume, so the aggregate check can catch a program whose individual rules
// each look satisfiable but that collectively overdraw a pool.
func addRequirement(kind rule.Kind, lhs, rhs string, reqObj, reqEnv, reqGlobal, reqIn, reqOut multiset.Multiset) {
	reqObj.Insert(lhs, 1)
	switch kind {
	case rule.Communication:
		reqEnv.Insert(rhs, 1)
	case rule.Exteroceptive:
		reqGlobal.Insert(rhs, 1)
	case rule.InExteroceptive:
		reqIn.Insert(rhs, 1)
	case rule.OutExteroceptive:
		reqOut.Insert(rhs, 1)
	}
}

// requirementsSatisfied checks an accumulated requirement multiset
// against the pool it would be drawn from, excluding the elementary
// object e: e is inexhaustible in every environment and is never a
// binding constraint.
func requirementsSatisfied(req, pool multiset.Multiset, elementary string) bool {
	for _, o := range req.Objects() {
		if o == elementary {
			continue
		}
		if pool.Count(o) < req.Count(o) {
			return false
		}
	}
	return true
}

// candidate evaluates a single program against the pre-step state and
// reports whether it is applicable, and if so, under which branch
// choices.
func candidate(p rule.Program, obj, env, global, in, out multiset.Multiset, elementary string) (selection, bool) {
	choices := make([]rule.ExecChoice, len(p))
	reqObj := multiset.New()
	reqEnv := multiset.New()
	reqGlobal := multiset.New()
	reqIn := multiset.New()
	reqOut := multiset.New()

	for i, r := range p {
		if r.MainKind != rule.Conditional {
			if !obj.Contains(r.Lhs) || !ruleEnvCondition(r.Kind, r.Rhs, env, global, in, out, elementary) {
				return selection{}, false
			}
			choices[i] = rule.ExecFirst
			addRequirement(r.Kind, r.Lhs, r.Rhs, reqObj, reqEnv, reqGlobal, reqIn, reqOut)
			continue
		}

		// Conditional: each branch is checked against its own lhs and
		// its own environment condition, independently of the other
		// branch.
		switch {
		case obj.Contains(r.Lhs) && ruleEnvCondition(r.Kind, r.Rhs, env, global, in, out, elementary):
			choices[i] = rule.ExecFirst
			addRequirement(r.Kind, r.Lhs, r.Rhs, reqObj, reqEnv, reqGlobal, reqIn, reqOut)
		case obj.Contains(r.AltLhs) && ruleEnvCondition(r.AltKind, r.AltRhs, env, global, in, out, elementary):
			choices[i] = rule.ExecSecond
			addRequirement(r.AltKind, r.AltLhs, r.AltRhs, reqObj, reqEnv, reqGlobal, reqIn, reqOut)
		default:
			return selection{}, false
		}
	}

	if !requirementsSatisfied(reqObj, obj, elementary) {
		return selection{}, false
	}
	if !requirementsSatisfied(reqEnv, env, elementary) {
		return selection{}, false
	}
	if !requirementsSatisfied(reqGlobal, global, elementary) {
		return selection{}, false
	}
	if !requirementsSatisfied(reqIn, in, elementary) {
		return selection{}, false
	}
	if !requirementsSatisfied(reqOut, out, elementary) {
		return selection{}, false
	}

	return selection{choices: choices}, true // programIndex filled in by caller
}

// Select runs the pure selection phase for a single agent: it finds
// every program applicable against the given pre-step environments,
// then picks uniformly at random among them. It never mutates obj or
// any environment. ok is false when no program is applicable.
func (a *Agent) Select(env, global, in, out multiset.Multiset, elementary string, rng *rand.Rand) (progIndex int, choices []rule.ExecChoice, ok bool) {
	var runnable []selection
	for idx, p := range a.Programs {
		sel, applicable := candidate(p, a.Obj, env, global, in, out, elementary)
		if !applicable {
			continue
		}
		sel.programIndex = idx
		runnable = append(runnable, sel)
	}
	if len(runnable) == 0 {
		return 0, nil, false
	}
	choice := runnable[0]
	if len(runnable) > 1 {
		choice = runnable[rng.Intn(len(runnable))]
	}
	return choice.programIndex, choice.choices, true
}

// Execute commits the program at progIndex, using choices produced by
// a prior Select call, mutating a.Obj and the relevant shared
// environments in place. It re-checks each rule's preconditions
// before mutating anything for that rule: an earlier
// agent in the same step may have already drained an object this
// agent's selection assumed was still available.
func (a *Agent) Execute(progIndex int, choices []rule.ExecChoice, env, global, in, out multiset.Multiset, elementary string) error {
	p := a.Programs[progIndex]
	for i, r := range p {
		kind, lhs, rhs := r.Kind, r.Lhs, r.Rhs
		if choices[i] == rule.ExecSecond {
			kind, lhs, rhs = r.AltKind, r.AltLhs, r.AltRhs
		}

		if !a.Obj.Contains(lhs) {
			return &SelectionInconsistencyError{Agent: a.Name, Object: lhs, Where: "obj"}
		}

		target := envFor(kind, env, global, in, out)
		if target != nil && rhs != elementary && !target.Contains(rhs) {
			return &SelectionInconsistencyError{Agent: a.Name, Object: rhs, Where: "env"}
		}

		a.Obj.Remove(lhs, 1)
		if target == nil {
			a.Obj.Insert(rhs, 1)
			continue
		}
		if rhs != elementary {
			target.Remove(rhs, 1)
		}
		if lhs != elementary {
			target.Insert(lhs, 1)
		}
		a.Obj.Insert(rhs, 1)
	}
	return nil
}

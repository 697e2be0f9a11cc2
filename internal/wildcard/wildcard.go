// Package wildcard expands the %id and * placeholders that a Pcolony
// template uses to stand in for a set of near-identical agents or
// colonies sharing a single textual definition. It depends only on
// multiset and rule, so both dsl (parsing) and colony/swarm
// (orchestrating an expansion pass after parsing) can import it
// without a cycle.
package wildcard

import (
	"strings"

	"github.com/andrei91ro/pcolsim/internal/multiset"
	"github.com/andrei91ro/pcolsim/internal/rule"
)

const (
	idWildcard   = "%id"
	starWildcard = "*"
)

// ExpandObjectList expands %id and * wildcards in an object name list.
// %id is resolved first, substituting myID for every
// occurrence in an item; * is resolved second, producing one copy of
// the item per entry in suffixList with * replaced by that suffix. An
// item containing neither wildcard passes through unchanged.
func ExpandObjectList(items []string, suffixList []string, myID string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ReplaceAll(item, idWildcard, myID)
		if strings.Contains(item, starWildcard) {
			for _, suffix := range suffixList {
				out = append(out, strings.ReplaceAll(item, starWildcard, suffix))
			}
			continue
		}
		out = append(out, item)
	}
	return out
}

// ExpandObjectCounts applies the same wildcard expansion to a
// multiset, preserving each original object's count on every object
// its wildcard expands into.
func ExpandObjectCounts(ms multiset.Multiset, suffixList []string, myID string) multiset.Multiset {
	out := multiset.New()
	for _, o := range ms.Objects() {
		count := ms.Count(o)
		item := strings.ReplaceAll(o, idWildcard, myID)
		if strings.Contains(item, starWildcard) {
			for _, suffix := range suffixList {
				out.Insert(strings.ReplaceAll(item, starWildcard, suffix), count)
			}
			continue
		}
		out.Insert(item, count)
	}
	return out
}

func substituteRule(r rule.Rule, tag, value string) rule.Rule {
	r.Lhs = strings.ReplaceAll(r.Lhs, tag, value)
	r.Rhs = strings.ReplaceAll(r.Rhs, tag, value)
	if r.MainKind == rule.Conditional {
		r.AltLhs = strings.ReplaceAll(r.AltLhs, tag, value)
		r.AltRhs = strings.ReplaceAll(r.AltRhs, tag, value)
	}
	return r
}

func substituteProgram(p rule.Program, tag, value string) rule.Program {
	out := make(rule.Program, len(p))
	for i, r := range p {
		out[i] = substituteRule(r, tag, value)
	}
	return out
}

// ExpandPrograms applies program-level wildcard expansion: a program
// containing any %id rule is replaced, in place,
// by its single %id-substituted form; a program containing any *
// rule (evaluated after %id substitution) is replaced by k clones,
// one per suffix in suffixList, with * substituted throughout. A
// program with neither wildcard passes through unchanged.
func ExpandPrograms(programs []rule.Program, suffixList []string, myID string) []rule.Program {
	out := make([]rule.Program, 0, len(programs))
	for _, p := range programs {
		if p.HasWildcard(idWildcard) {
			p = substituteProgram(p, idWildcard, myID)
		}
		if p.HasWildcard(starWildcard) {
			for _, suffix := range suffixList {
				out = append(out, substituteProgram(p, starWildcard, suffix))
			}
			continue
		}
		out = append(out, p)
	}
	return out
}

// ExpandAlphabet applies ExpandObjectList to an alphabet set,
// rebuilding it from the expanded name list.
func ExpandAlphabet(alphabet map[string]struct{}, suffixList []string, myID string) map[string]struct{} {
	items := make([]string, 0, len(alphabet))
	for o := range alphabet {
		items = append(items, o)
	}
	expanded := ExpandObjectList(items, suffixList, myID)
	out := make(map[string]struct{}, len(expanded))
	for _, o := range expanded {
		out[o] = struct{}{}
	}
	return out
}

// Package rule defines the rewrite rules and programs that P colony
// agents carry: Evolution, Communication, Exteroceptive variants, and
// Conditional pairs of the above.
package rule

import "strings"

// Kind tags the kind of rewrite a (non-conditional) rule performs, or
// marks a Rule as the Conditional pairing of two such rules.
type Kind int

const (
	Evolution Kind = iota
	Communication
	Exteroceptive
	InExteroceptive
	OutExteroceptive
	Conditional
)

// symbols mirrors the operator each Kind is written with in the input
// DSL and in textual round-tripping.
var symbols = map[Kind]string{
	Evolution:        "->",
	Communication:    "<->",
	Exteroceptive:    "<=>",
	InExteroceptive:  "<I=>",
	OutExteroceptive: "<=O>",
	Conditional:      "/",
}

func (k Kind) String() string {
	if s, ok := symbols[k]; ok {
		return s
	}
	return "?"
}

// ExecChoice records, for a rule selected during Agent.Select,
// which branch of a (possibly conditional) rule is to be executed.
type ExecChoice int

const (
	ExecNone ExecChoice = iota
	ExecFirst
	ExecSecond
)

// Rule is a single rewrite specification, or, when MainKind is
// Conditional, a priority pair of two non-conditional alternatives.
// For a non-conditional rule only Kind/Lhs/Rhs are used and MainKind
// equals Kind.
type Rule struct {
	MainKind Kind

	Kind Kind
	Lhs  string
	Rhs  string

	// Alt* are populated only when MainKind == Conditional.
	AltKind Kind
	AltLhs  string
	AltRhs  string
}

// HasWildcard reports whether any of the rule's four operand sides
// contains tag as a literal substring (e.g. "*" or "%id").
func (r Rule) HasWildcard(tag string) bool {
	if strings.Contains(r.Lhs, tag) || strings.Contains(r.Rhs, tag) {
		return true
	}
	if r.MainKind == Conditional {
		if strings.Contains(r.AltLhs, tag) || strings.Contains(r.AltRhs, tag) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of r. Rule holds only scalar fields, so a
// value copy already yields independent storage.
func (r Rule) Clone() Rule {
	return r
}

// String renders the rule in the DSL's textual form, e.g. "a -> b" or
// "(a <-> b) / (a -> c)" for a conditional pair.
func (r Rule) String() string {
	if r.MainKind != Conditional {
		return r.Lhs + " " + r.Kind.String() + " " + r.Rhs
	}
	return "(" + r.Lhs + " " + r.Kind.String() + " " + r.Rhs + ") / (" +
		r.AltLhs + " " + r.AltKind.String() + " " + r.AltRhs + ")"
}

// ExecutableString renders only the branch marked by choice, for
// trace output where only the rule that actually ran matters.
func (r Rule) ExecutableString(choice ExecChoice) string {
	if r.MainKind != Conditional || choice == ExecFirst {
		return r.Lhs + " " + r.Kind.String() + " " + r.Rhs
	}
	return r.AltLhs + " " + r.AltKind.String() + " " + r.AltRhs
}

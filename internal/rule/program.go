package rule

import "strings"

// Program is an ordered sequence of rules, applied in declaration
// order when all of them are simultaneously applicable. Its length
// must equal the owning colony's capacity n.
type Program []Rule

// HasWildcard reports whether any rule in the program contains tag.
func (p Program) HasWildcard(tag string) bool {
	for _, r := range p {
		if r.HasWildcard(tag) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of p.
func (p Program) Clone() Program {
	out := make(Program, len(p))
	for i, r := range p {
		out[i] = r.Clone()
	}
	return out
}

// String renders the program as "< r1, r2, ... >".
func (p Program) String() string {
	parts := make([]string, len(p))
	for i, r := range p {
		parts[i] = r.String()
	}
	return "< " + strings.Join(parts, ", ") + " >"
}

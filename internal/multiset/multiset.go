// Package multiset implements the finite object-to-count mapping used
// throughout the P colony engine: agent contents, colony environments
// and the swarm's global environments are all Multisets.
package multiset

// Multiset is a finite mapping from object name to a positive count.
// A key absent from the map is equivalent to a stored count of zero:
// counts never go negative and zero-count entries are always pruned,
// so Contains and the zero value of a fresh Multiset agree.
type Multiset map[string]int

// New returns an empty Multiset ready for use.
func New() Multiset {
	return make(Multiset)
}

// FromCounts builds a Multiset from a flat object list, counting
// repeated occurrences (e.g. parsed agent obj or env literals).
func FromCounts(objects []string) Multiset {
	m := New()
	for _, o := range objects {
		m.Insert(o, 1)
	}
	return m
}

// Insert adds k instances of o. A k of zero or less is a no-op.
func (m Multiset) Insert(o string, k int) {
	if k <= 0 {
		return
	}
	m[o] += k
}

// Remove subtracts k instances of o, pruning the entry if it reaches
// zero. It reports false without modifying m if fewer than k are
// present.
func (m Multiset) Remove(o string, k int) bool {
	if k <= 0 {
		return true
	}
	if m[o] < k {
		return false
	}
	m[o] -= k
	if m[o] == 0 {
		delete(m, o)
	}
	return true
}

// Contains reports whether at least one instance of o is present.
func (m Multiset) Contains(o string) bool {
	return m[o] > 0
}

// Count returns the number of instances of o (0 if absent).
func (m Multiset) Count(o string) int {
	return m[o]
}

// Clone returns a deep (value) copy of m.
func (m Multiset) Clone() Multiset {
	out := make(Multiset, len(m))
	for o, n := range m {
		out[o] = n
	}
	return out
}

// Equal reports whether m and other hold identical key/count pairs.
func (m Multiset) Equal(other Multiset) bool {
	if len(m) != len(other) {
		return false
	}
	for o, n := range m {
		if other[o] != n {
			return false
		}
	}
	return true
}

// Objects returns the distinct object names currently stored, in no
// particular order.
func (m Multiset) Objects() []string {
	out := make([]string, 0, len(m))
	for o := range m {
		out = append(out, o)
	}
	return out
}

// Total returns the sum of all stored counts.
func (m Multiset) Total() int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

package feature

import (
	"sort"
	"strings"
)

// Set is an immutable set of feature IDs. The zero value is the empty set.
// All operations return new sets; a Set can be shared between goroutines
// without synchronization.
type Set struct {
	ids map[ID]struct{}
}

// EmptySet is the canonical empty selection.
var EmptySet = Set{}

// NewSet creates a set containing the given IDs.
func NewSet(ids ...ID) Set {
	if len(ids) == 0 {
		return Set{}
	}
	m := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

// NewSetFromSlice creates a set from a slice of IDs.
func NewSetFromSlice(ids []ID) Set {
	return NewSet(ids...)
}

// Len returns the number of features in the set.
func (s Set) Len() int {
	return len(s.ids)
}

// IsEmpty returns true if the set contains no features.
func (s Set) IsEmpty() bool {
	return len(s.ids) == 0
}

// Contains returns true if the set contains the given ID.
func (s Set) Contains(id ID) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs returns the set's members as a sorted slice.
func (s Set) IDs() []ID {
	if len(s.ids) == 0 {
		return nil
	}
	out := make([]ID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// With returns a new set with the given IDs added.
func (s Set) With(ids ...ID) Set {
	if len(ids) == 0 {
		return s
	}
	m := make(map[ID]struct{}, len(s.ids)+len(ids))
	for id := range s.ids {
		m[id] = struct{}{}
	}
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

// Without returns a new set with the given IDs removed.
func (s Set) Without(ids ...ID) Set {
	if len(s.ids) == 0 || len(ids) == 0 {
		return s
	}
	m := make(map[ID]struct{}, len(s.ids))
	for id := range s.ids {
		m[id] = struct{}{}
	}
	for _, id := range ids {
		delete(m, id)
	}
	if len(m) == 0 {
		return Set{}
	}
	return Set{ids: m}
}

// Equal returns true if both sets contain exactly the same IDs.
func (s Set) Equal(other Set) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if _, ok := other.ids[id]; !ok {
			return false
		}
	}
	return true
}

// String returns a human-readable representation like "{1, 4, 7}".
func (s Set) String() string {
	ids := s.IDs()
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(id.String())
	}
	b.WriteByte('}')
	return b.String()
}

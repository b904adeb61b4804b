// Package feature provides feature identifiers and selection sets for
// mapyard data layers.
package feature

import "strconv"

// ID uniquely identifies a map feature within a layer.
type ID uint64

// String returns the decimal representation of the ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

package series

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned when a column name is added twice.
	ErrDuplicateKey = errors.New("series: duplicate key")
	// ErrLengthMismatch is returned when a column does not match the set's
	// bar count.
	ErrLengthMismatch = errors.New("series: length mismatch")
)

// Set is an ordered collection of equally long named series.
type Set struct {
	keys []string
	data map[string]*Series
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{data: make(map[string]*Series)}
}

// Add stores s under key. All series in a set must have the same length.
func (st *Set) Add(key string, s *Series) error {
	if _, ok := st.data[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	if len(st.keys) > 0 && s.Len() != st.Len() {
		return fmt.Errorf("%w: %q has %d values, set has %d", ErrLengthMismatch, key, s.Len(), st.Len())
	}

	st.keys = append(st.keys, key)
	st.data[key] = s
	return nil
}

// Get returns the series stored under key.
func (st *Set) Get(key string) (*Series, bool) {
	s, ok := st.data[key]
	return s, ok
}

// Keys returns the column names in insertion order.
func (st *Set) Keys() []string {
	return append([]string(nil), st.keys...)
}

// Len returns the number of bars, 0 for an empty set.
func (st *Set) Len() int {
	if len(st.keys) == 0 {
		return 0
	}
	return st.data[st.keys[0]].Len()
}

package orm

import (
	"bytes"

	"github.com/djrtwo/simple-contracts/errors"
)

// MultiRef is a sorted set of references, stored as a single value by
// non unique indexes.
type MultiRef struct {
	Refs [][]byte
}

// Add inserts the reference keeping the set sorted. Adding an existing
// reference is an error.
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.findRef(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove removes the reference. Removing a missing reference is an error.
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.findRef(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// findRef returns the index of the ref and true if it was found. Otherwise
// the index is where it should be inserted.
func (m *MultiRef) findRef(ref []byte) (int, bool) {
	for i, r := range m.Refs {
		switch bytes.Compare(ref, r) {
		case -1:
			return i, false
		case 0:
			return i, true
		}
	}
	return len(m.Refs), false
}

func (m *MultiRef) Marshal() ([]byte, error) {
	return MarshalModel(m)
}

func (m *MultiRef) Unmarshal(raw []byte) error {
	return UnmarshalModel(raw, m)
}

// Package align models a multiple sequence alignment: an ordered set of
// identified sequences of equal length. Alignments are validated at
// construction and immutable afterwards, so the layout engines can consume
// them concurrently without copying.
package align

import (
	"github.com/seqviz/seqviz/pkg/errors"
)

// GapMarker is the character used for gaps in aligned sequences.
const GapMarker = '-'

// Entry is one aligned sequence with its identifier. Entries keep the
// caller's ordering; the alignment's key order is the entry order.
type Entry struct {
	ID  string
	Seq string
}

// Alignment is an immutable set of equal-length aligned sequences.
type Alignment struct {
	keys   []string
	seqs   map[string]string
	length int
}

// New validates entries and builds an Alignment. It fails fast on an empty
// entry list, duplicate identifiers, or sequences of unequal length; these
// would otherwise surface as malformed layouts much later.
func New(entries []Entry) (*Alignment, error) {
	if len(entries) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidAlignment, "alignment has no sequences")
	}

	a := &Alignment{
		keys:   make([]string, 0, len(entries)),
		seqs:   make(map[string]string, len(entries)),
		length: len(entries[0].Seq),
	}
	for _, e := range entries {
		if e.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidAlignment, "sequence with empty identifier")
		}
		if _, dup := a.seqs[e.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidAlignment, "duplicate identifier %q", e.ID)
		}
		if len(e.Seq) != a.length {
			return nil, errors.New(errors.ErrCodeInvalidAlignment,
				"sequence %q has length %d, want %d", e.ID, len(e.Seq), a.length)
		}
		a.keys = append(a.keys, e.ID)
		a.seqs[e.ID] = e.Seq
	}
	return a, nil
}

// Keys returns the sequence identifiers in insertion order. The returned
// slice is a copy.
func (a *Alignment) Keys() []string {
	keys := make([]string, len(a.keys))
	copy(keys, a.keys)
	return keys
}

// NumSeqs returns the number of sequences.
func (a *Alignment) NumSeqs() int { return len(a.keys) }

// Length returns the number of alignment columns.
func (a *Alignment) Length() int { return a.length }

// Seq returns the aligned sequence for id.
func (a *Alignment) Seq(id string) (string, bool) {
	s, ok := a.seqs[id]
	return s, ok
}

// Has reports whether id is part of the alignment.
func (a *Alignment) Has(id string) bool {
	_, ok := a.seqs[id]
	return ok
}

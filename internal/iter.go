package internal

import (
	"iter"
	"slices"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Marks is a set that remembers insertion order.
type Marks[T comparable] struct {
	items []T
}

// Mark adds an item, if not already present.
func (m *Marks[T]) Mark(item T) {
	if !slices.Contains(m.items, item) {
		m.items = append(m.items, item)
	}
}

// Items returns a copy of the marked items, in first-marked order.
func (m *Marks[T]) Items() []T {
	return slices.Clone(m.items)
}

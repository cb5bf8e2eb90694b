package report

import (
	"maps"
	"slices"

	"github.com/KyussCaesar/pfr/internal/money"
)

// Totals sums amounts per label. Keys returns labels in ascending order;
// no other iteration order is offered.
type Totals struct {
	byLabel map[string]money.Money
}

// NewTotals returns an empty accumulator.
func NewTotals() *Totals {
	return &Totals{byLabel: make(map[string]money.Money)}
}

// Add adds m to the running sum for label.
func (t *Totals) Add(label string, m money.Money) {
	t.byLabel[label] = t.byLabel[label].Add(m)
}

// Get returns the sum for label, zero when absent.
func (t *Totals) Get(label string) money.Money {
	return t.byLabel[label]
}

// Len returns the number of labels.
func (t *Totals) Len() int {
	return len(t.byLabel)
}

// Keys returns the labels sorted ascending.
func (t *Totals) Keys() []string {
	return slices.Sorted(maps.Keys(t.byLabel))
}

// Sum returns the total across all labels.
func (t *Totals) Sum() money.Money {
	var sum money.Money
	for _, m := range t.byLabel {
		sum = sum.Add(m)
	}
	return sum
}

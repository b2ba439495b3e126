package logo

import "slices"

// SymbolCount pairs a normalized symbol with its occurrence count.
type SymbolCount struct {
	Symbol string
	Count  int
}

// Counter tallies normalized symbols for one logo column. It remembers the
// order in which symbols were first observed so that MostCommon can break
// count ties deterministically.
type Counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add records one occurrence of symbol.
func (c *Counter) Add(symbol string) {
	if _, seen := c.counts[symbol]; !seen {
		c.order = append(c.order, symbol)
	}
	c.counts[symbol]++
}

// Count returns the tally for symbol.
func (c *Counter) Count(symbol string) int { return c.counts[symbol] }

// Total returns the sum of all counts. For a column counter this equals
// the number of keys the column was built from.
func (c *Counter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// MostCommon returns the symbols sorted by descending count. Equal counts
// keep first-observation order; the sort is stable, so the result is fully
// deterministic for a given input sequence.
func (c *Counter) MostCommon() []SymbolCount {
	out := make([]SymbolCount, len(c.order))
	for i, sym := range c.order {
		out[i] = SymbolCount{Symbol: sym, Count: c.counts[sym]}
	}
	slices.SortStableFunc(out, func(a, b SymbolCount) int {
		return b.Count - a.Count
	})
	return out
}

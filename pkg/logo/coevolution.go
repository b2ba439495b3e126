package logo

import (
	"strconv"

	"github.com/seqviz/seqviz/pkg/align"
	"github.com/seqviz/seqviz/pkg/errors"
	"github.com/seqviz/seqviz/pkg/glyph"
	"github.com/seqviz/seqviz/pkg/shape"
)

// PositionPair names two alignment columns whose symbols co-vary.
type PositionPair struct {
	First  int
	Second int
}

// CoevolutionLogo lays out stacked glyph pairs for co-evolving position
// pairs: each counter tallies the concatenated two-character symbol at the
// pair, and every stacked entry renders as two side-by-side glyphs.
type CoevolutionLogo struct {
	cfg      Config
	keys     []string
	pairs    []PositionPair
	counters []*Counter
}

// NewCoevolutionLogo validates the inputs and precomputes the per-pair
// symbol counters.
func NewCoevolutionLogo(a *align.Alignment, pairs []PositionPair, cfg Config) (*CoevolutionLogo, error) {
	cfg.applyDefaults()

	keys, err := resolveKeys(a, cfg.Keys)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPosition, "no co-evolving position pairs given")
	}
	for _, pr := range pairs {
		for _, p := range []int{pr.First, pr.Second} {
			if p < 0 || p >= a.Length() {
				return nil, errors.New(errors.ErrCodeInvalidPosition,
					"position %d outside alignment of length %d", p, a.Length())
			}
		}
	}

	counters := make([]*Counter, len(pairs))
	for i, pr := range pairs {
		c := newCounter()
		for _, key := range keys {
			seq, _ := a.Seq(key)
			sym := normalizeSymbol(seq[pr.First], cfg.GapChar) + normalizeSymbol(seq[pr.Second], cfg.GapChar)
			c.Add(sym)
		}
		counters[i] = c
	}

	return &CoevolutionLogo{
		cfg:      cfg,
		keys:     keys,
		pairs:    append([]PositionPair(nil), pairs...),
		counters: counters,
	}, nil
}

// NumKeys returns the number of keys the logo was built from.
func (l *CoevolutionLogo) NumKeys() int { return len(l.keys) }

// Pairs returns the position pairs in layout order.
func (l *CoevolutionLogo) Pairs() []PositionPair {
	return append([]PositionPair(nil), l.pairs...)
}

// Counters returns the per-pair symbol counters in layout order.
func (l *CoevolutionLogo) Counters() []*Counter {
	return append([]*Counter(nil), l.counters...)
}

// Build stacks two glyphs per entry: for pair index i the glyphs sit at
// x = 2*Spacing*i and x = 2*Spacing*i + 1, both spanning the entry's
// frequency slice and each colored for its own character.
func (l *CoevolutionLogo) Build(p glyph.OutlineProvider) ([]shape.Shape, error) {
	var shapes []shape.Shape
	total := float64(len(l.keys))

	for x, counter := range l.counters {
		y1 := 1.0
		for _, sc := range counter.MostCommon() {
			y0 := y1 - float64(sc.Count)/total

			left := float64(2 * l.cfg.Spacing * x)
			for j, ch := range []rune(sc.Symbol) {
				color, err := l.cfg.Scheme.Color(string(ch))
				if err != nil {
					return nil, err
				}
				g := glyph.NewGlyph(ch, left+float64(j), y0, y1)
				g.Width = l.cfg.GlyphWidth
				g.Color = color

				sh, err := g.Build(p)
				if err != nil {
					return nil, err
				}
				if sh != nil {
					shapes = append(shapes, sh)
				}
			}
			y1 = y0
		}
	}
	return shapes, nil
}

// Ticks returns the axis tick positions and labels: one blank, then for
// each pair its two position numbers separated by a blank, followed by
// Spacing blanks.
func (l *CoevolutionLogo) Ticks() ([]int, []string) {
	ticks := tickRange(-1, l.cfg.Spacing*len(l.pairs)*3)
	labels := make([]string, 0, 1+len(l.pairs)*(3+l.cfg.Spacing))
	labels = append(labels, " ")
	for _, pr := range l.pairs {
		labels = append(labels, strconv.Itoa(pr.First), " ", strconv.Itoa(pr.Second))
		for i := 0; i < l.cfg.Spacing; i++ {
			labels = append(labels, " ")
		}
	}
	return ticks, labels
}

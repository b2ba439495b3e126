// Package logo builds sequence logos and co-evolution logos: stacked glyph
// columns whose heights are proportional to per-position symbol frequency
// across an alignment.
//
// Engines are constructed once per render from immutable inputs, compute
// their symbol counters eagerly, and emit a flat shape list. Nothing is
// shared or mutated between builds, so independent engines can run
// concurrently.
package logo

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/seqviz/seqviz/pkg/align"
	"github.com/seqviz/seqviz/pkg/colorscheme"
	"github.com/seqviz/seqviz/pkg/errors"
	"github.com/seqviz/seqviz/pkg/glyph"
	"github.com/seqviz/seqviz/pkg/shape"
)

// Defaults applied by the engine constructors.
const (
	DefaultGapChar    = 'X'
	DefaultSpacing    = 1
	DefaultGlyphWidth = 1.0
)

// Config holds the options shared by both logo engines. The zero value is
// usable: all keys, all positions, builtin amino-acid colors.
type Config struct {
	// Keys restricts the logo to a subset of sequence identifiers. Nil
	// means all keys; identifiers missing from the alignment are ignored.
	Keys []string
	// Scheme colors each symbol. The zero value selects the builtin
	// amino-acid scheme.
	Scheme colorscheme.Scheme
	// GapChar replaces the alignment gap marker in counters. Must be
	// covered by the scheme. Defaults to 'X'.
	GapChar rune
	// Spacing is the horizontal distance between glyph columns in glyph
	// widths. Defaults to 1.
	Spacing int
	// GlyphWidth is the width of each glyph box. Defaults to 1.
	GlyphWidth float64
}

func (c *Config) applyDefaults() {
	if c.Scheme.Len() == 0 {
		c.Scheme = colorscheme.AminoAcid()
	}
	if c.GapChar == 0 {
		c.GapChar = DefaultGapChar
	}
	if c.Spacing == 0 {
		c.Spacing = DefaultSpacing
	}
	if c.GlyphWidth == 0 {
		c.GlyphWidth = DefaultGlyphWidth
	}
}

// resolveKeys intersects the requested keys with the alignment's actual
// keys, tolerating missing entries. A nil request selects all keys.
func resolveKeys(a *align.Alignment, requested []string) ([]string, error) {
	if requested == nil {
		return a.Keys(), nil
	}
	keys := make([]string, 0, len(requested))
	for _, k := range requested {
		if a.Has(k) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidAlignment,
			"none of the requested keys are present in the alignment")
	}
	return keys, nil
}

// normalizeSymbol uppercases ch and substitutes the gap marker.
func normalizeSymbol(ch byte, gapChar rune) string {
	if ch == align.GapMarker {
		return string(gapChar)
	}
	return strings.ToUpper(string(ch))
}

// SequenceLogo lays out one stacked glyph column per alignment position.
type SequenceLogo struct {
	cfg       Config
	keys      []string
	positions []int
	counters  []*Counter
}

// NewSequenceLogo validates the inputs and precomputes the per-position
// symbol counters. A nil positions slice selects every alignment column in
// order; explicit positions may be any subset or reordering of columns.
func NewSequenceLogo(a *align.Alignment, positions []int, cfg Config) (*SequenceLogo, error) {
	cfg.applyDefaults()

	keys, err := resolveKeys(a, cfg.Keys)
	if err != nil {
		return nil, err
	}

	if positions == nil {
		positions = make([]int, a.Length())
		for i := range positions {
			positions[i] = i
		}
	} else {
		for _, p := range positions {
			if p < 0 || p >= a.Length() {
				return nil, errors.New(errors.ErrCodeInvalidPosition,
					"position %d outside alignment of length %d", p, a.Length())
			}
		}
		positions = append([]int(nil), positions...)
	}

	counters := make([]*Counter, len(positions))
	for i, p := range positions {
		c := newCounter()
		for _, key := range keys {
			seq, _ := a.Seq(key)
			c.Add(normalizeSymbol(seq[p], cfg.GapChar))
		}
		counters[i] = c
	}

	return &SequenceLogo{
		cfg:       cfg,
		keys:      keys,
		positions: positions,
		counters:  counters,
	}, nil
}

// NumKeys returns the number of keys the logo was built from.
func (l *SequenceLogo) NumKeys() int { return len(l.keys) }

// Positions returns the column indices in layout order.
func (l *SequenceLogo) Positions() []int {
	return append([]int(nil), l.positions...)
}

// Counters returns the per-position symbol counters in layout order.
func (l *SequenceLogo) Counters() []*Counter {
	return append([]*Counter(nil), l.counters...)
}

// Build stacks the glyphs for every column. Within a column the symbols
// are stacked top-down in descending frequency: the most common symbol
// occupies the top of the [0, 1] span and each following symbol sits
// directly below, so the spans tile [0, 1] exactly.
//
// An unknown symbol aborts the build: the scheme must cover every symbol
// including the gap character.
func (l *SequenceLogo) Build(p glyph.OutlineProvider) ([]shape.Shape, error) {
	var shapes []shape.Shape
	total := float64(len(l.keys))

	for x, counter := range l.counters {
		y1 := 1.0
		for _, sc := range counter.MostCommon() {
			y0 := y1 - float64(sc.Count)/total

			color, err := l.cfg.Scheme.Color(sc.Symbol)
			if err != nil {
				return nil, err
			}
			ch, _ := utf8.DecodeRuneInString(sc.Symbol)
			g := glyph.NewGlyph(ch, float64(l.cfg.Spacing*x), y0, y1)
			g.Width = l.cfg.GlyphWidth
			g.Color = color

			sh, err := g.Build(p)
			if err != nil {
				return nil, err
			}
			if sh != nil {
				shapes = append(shapes, sh)
			}
			y1 = y0
		}
	}
	return shapes, nil
}

// Ticks returns the axis tick positions and labels: one blank before the
// first column, then each column's original position number followed by
// Spacing blanks.
func (l *SequenceLogo) Ticks() ([]int, []string) {
	ticks := tickRange(-1, l.cfg.Spacing*len(l.positions))
	labels := make([]string, 0, 1+len(l.positions)*(1+l.cfg.Spacing))
	labels = append(labels, " ")
	for _, p := range l.positions {
		labels = append(labels, strconv.Itoa(p))
		for i := 0; i < l.cfg.Spacing; i++ {
			labels = append(labels, " ")
		}
	}
	return ticks, labels
}

// tickRange returns the integers [from, to).
func tickRange(from, to int) []int {
	if to <= from {
		return nil
	}
	ticks := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		ticks = append(ticks, i)
	}
	return ticks
}

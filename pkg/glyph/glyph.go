// Package glyph turns a single character plus a target bounding box into a
// stretched, centered character outline ready for a rendering sink.
//
// The builder is a pure function of its inputs: it holds no state between
// calls and never mutates the provider.
package glyph

import (
	"github.com/seqviz/seqviz/pkg/errors"
	"github.com/seqviz/seqviz/pkg/shape"
)

// Defaults applied by NewGlyph.
const (
	DefaultWidth   = 0.95
	DefaultPad     = 0.1
	DefaultColor   = "gray"
	DefaultEdge    = "black"
	DefaultOpacity = 1.0

	// DefaultStretchLimit bounds horizontal stretching. Narrow characters
	// such as 'I' are never stretched wider than this reference character
	// would be, which keeps columns visually comparable.
	DefaultStretchLimit = 'E'
)

// Glyph describes one character to draw inside the box
// [X-Width/2, X+Width/2] x [Y0, Y1].
type Glyph struct {
	Character    rune
	X            float64
	Y0, Y1       float64
	Width        float64
	Pad          float64 // fraction of the height left as padding, split top/bottom
	StretchLimit rune
	Color        string
	EdgeColor    string
	EdgeWidth    float64
	ZOrder       int
	Opacity      float64
}

// NewGlyph returns a Glyph for character c spanning [y0, y1] at x with all
// optional fields set to their defaults.
func NewGlyph(c rune, x, y0, y1 float64) Glyph {
	return Glyph{
		Character:    c,
		X:            x,
		Y0:           y0,
		Y1:           y1,
		Width:        DefaultWidth,
		Pad:          DefaultPad,
		StretchLimit: DefaultStretchLimit,
		Color:        DefaultColor,
		EdgeColor:    DefaultEdge,
		Opacity:      DefaultOpacity,
	}
}

// Build produces the filled outline shape for g, or (nil, nil) when the
// glyph box has zero height. Callers treat the nil shape as "skip", not as
// an error.
func (g Glyph) Build(p OutlineProvider) (shape.Shape, error) {
	height := g.Y1 - g.Y0
	if height == 0 {
		return nil, nil
	}

	// Target box with symmetric padding proportional to height.
	boxLeft := g.X - g.Width/2
	boxBottom := g.Y0 + g.Pad*height/2
	boxWidth := g.Width
	boxHeight := height - g.Pad*height

	raw, err := p.Outline(g.Character)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnknownSymbol, err,
			"outline for character %q", g.Character)
	}
	limit, err := p.Outline(g.StretchLimit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnknownSymbol, err,
			"outline for stretch-limit character %q", g.StretchLimit)
	}
	if raw.W <= 0 || raw.H <= 0 || limit.W <= 0 {
		return nil, errors.New(errors.ErrCodeInternal,
			"degenerate outline for character %q", g.Character)
	}

	// Stretch horizontally to fill the box, but never more than the limit
	// character would be stretched.
	hstretch := min(boxWidth/raw.W, boxWidth/limit.W)

	// Center the (possibly narrower) character in the box.
	charWidth := hstretch * raw.W
	charShift := (boxWidth - charWidth) / 2

	// Vertical fill is exact.
	vstretch := boxHeight / raw.H

	// Translate the outline's lower-left corner to the origin, scale, then
	// place. The order matters: scaling an off-origin path would also scale
	// its offset.
	tr := shape.Identity().
		Translate(-raw.MinX, -raw.MinY).
		Scale(hstretch, vstretch).
		Translate(boxLeft+charShift, boxBottom)

	return shape.Outline{
		Path: tr.TransformPath(raw.Path),
		Style: shape.Style{
			Fill:      g.Color,
			Edge:      g.EdgeColor,
			EdgeWidth: g.EdgeWidth,
			Opacity:   g.Opacity,
			ZOrder:    g.ZOrder,
		},
	}, nil
}

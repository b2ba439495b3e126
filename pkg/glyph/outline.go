package glyph

import "github.com/seqviz/seqviz/pkg/shape"

// Outline is an unscaled character outline at a provider-chosen nominal
// size, together with its bounding box. MinX/MinY anchor the path so the
// builder can move the lower-left corner to the origin before scaling.
type Outline struct {
	Path shape.Path
	MinX float64
	MinY float64
	W    float64
	H    float64
}

// OutlineProvider supplies character outlines. Implementations wrap a font
// backend; see the fonts package for the TrueType-based default.
//
// Providers must be safe for concurrent use: the logo engines may be driven
// from multiple goroutines over shared providers.
type OutlineProvider interface {
	// Outline returns the unscaled outline for r at the provider's nominal
	// size. It fails if the font has no usable contour for r.
	Outline(r rune) (Outline, error)
}

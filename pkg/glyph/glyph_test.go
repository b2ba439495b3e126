package glyph

import (
	"math"
	"testing"

	"github.com/seqviz/seqviz/pkg/errors"
	"github.com/seqviz/seqviz/pkg/shape"
)

// boxProvider serves rectangular outlines with per-rune widths, all at
// height 20. Unlisted runes report a lookup failure.
type boxProvider struct {
	widths map[rune]float64
}

func newBoxProvider() *boxProvider {
	return &boxProvider{widths: map[rune]float64{
		'A': 10, 'E': 10, 'I': 4,
	}}
}

func (p *boxProvider) Outline(r rune) (Outline, error) {
	w, ok := p.widths[r]
	if !ok {
		return Outline{}, errors.New(errors.ErrCodeUnknownSymbol, "no glyph for %q", r)
	}
	var path shape.Path
	path.MoveTo(0, 0)
	path.LineTo(w, 0)
	path.LineTo(w, 20)
	path.LineTo(0, 20)
	path.Close()
	return Outline{Path: path, MinX: 0, MinY: 0, W: w, H: 20}, nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildFillsBox(t *testing.T) {
	g := NewGlyph('A', 0, 0, 1)
	sh, err := g.Build(newBoxProvider())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Full-width character: fills the padded box exactly.
	x0, y0, x1, y1 := sh.Bounds()
	if !almostEqual(x0, -0.475) || !almostEqual(x1, 0.475) {
		t.Errorf("x bounds = (%v, %v), want (-0.475, 0.475)", x0, x1)
	}
	if !almostEqual(y0, 0.05) || !almostEqual(y1, 0.95) {
		t.Errorf("y bounds = (%v, %v), want (0.05, 0.95)", y0, y1)
	}
}

func TestBuildLimitsNarrowStretch(t *testing.T) {
	g := NewGlyph('I', 0, 0, 1)
	sh, err := g.Build(newBoxProvider())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// 'I' (width 4) is stretched no more than 'E' (width 10) would be, so
	// it stays narrow and centers inside the box.
	x0, _, x1, _ := sh.Bounds()
	if !almostEqual(x0, -0.19) || !almostEqual(x1, 0.19) {
		t.Errorf("x bounds = (%v, %v), want (-0.19, 0.19)", x0, x1)
	}
	if !almostEqual(-x0, x1) {
		t.Errorf("narrow character not centered: (%v, %v)", x0, x1)
	}
}

func TestBuildZeroHeight(t *testing.T) {
	g := NewGlyph('A', 0, 0.5, 0.5)
	sh, err := g.Build(newBoxProvider())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if sh != nil {
		t.Errorf("expected nil shape for zero-height glyph, got %v", sh)
	}
}

func TestBuildStyle(t *testing.T) {
	g := NewGlyph('A', 0, 0, 1)
	g.Color = "#94CD8C"
	g.ZOrder = 3

	sh, err := g.Build(newBoxProvider())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	style := sh.ShapeStyle()
	if style.Fill != "#94CD8C" {
		t.Errorf("Fill = %q", style.Fill)
	}
	if style.Edge != DefaultEdge {
		t.Errorf("Edge = %q, want %q", style.Edge, DefaultEdge)
	}
	if style.ZOrder != 3 {
		t.Errorf("ZOrder = %d, want 3", style.ZOrder)
	}
}

func TestBuildUnknownCharacter(t *testing.T) {
	g := NewGlyph('?', 0, 0, 1)
	_, err := g.Build(newBoxProvider())
	if !errors.Is(err, errors.ErrCodeUnknownSymbol) {
		t.Errorf("Build error = %v, want UNKNOWN_SYMBOL", err)
	}
}

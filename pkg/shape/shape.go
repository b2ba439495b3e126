// Package shape defines the geometric primitives produced by the layout
// engines. Shapes carry coordinates in data units plus drawing style; they
// hold no rendering state and are immutable once built. Sinks (SVG, PNG,
// JSON) consume them without ever reaching back into the builders.
package shape

import (
	"cmp"
	"slices"
)

// Style holds the visual attributes shared by every primitive.
type Style struct {
	Fill      string  // fill color; "" or "none" means unfilled
	Edge      string  // stroke color; "" or "none" means no stroke
	EdgeWidth float64 // stroke width in points
	Opacity   float64 // 0 (transparent) to 1 (opaque)
	ZOrder    int     // stacking order; higher values draw on top
}

// Shape is implemented by all primitives in this package.
type Shape interface {
	// Bounds returns the axis-aligned bounding box (x0, y0, x1, y1).
	Bounds() (float64, float64, float64, float64)
	// ShapeStyle returns the primitive's drawing style.
	ShapeStyle() Style
}

// Outline is a filled character path, the output of the glyph builder.
type Outline struct {
	Path  Path
	Style Style
}

// Ellipse is a filled ellipse. W and H are the full horizontal and
// vertical axis lengths, not radii.
type Ellipse struct {
	CX, CY float64
	W, H   float64
	Style  Style
}

// Rect is a filled axis-aligned rectangle anchored at its lower-left corner.
type Rect struct {
	X, Y  float64
	W, H  float64
	Style Style
}

// Arc is an unfilled elliptical arc. W and H are full axis lengths and
// Theta1/Theta2 are start/end angles in degrees, counter-clockwise from
// the positive x axis.
type Arc struct {
	CX, CY         float64
	W, H           float64
	Theta1, Theta2 float64
	Style          Style
}

// FancyArrow is a flat filled arrow. The tail starts at (X, Y) and the
// head tip sits at (X+DX, Y+DY); the head is included in the total length.
type FancyArrow struct {
	X, Y       float64
	DX, DY     float64
	HeadLength float64
	HeadWidth  float64
	TailWidth  float64
	Style      Style
}

// Connection is a straight line between two points with an optional
// arrowhead style ("-" for a plain line, "->" for a forward arrow,
// "<-" and "<->" for the other directions).
type Connection struct {
	X1, Y1     float64
	X2, Y2     float64
	ArrowStyle string
	Style      Style
}

// BracketTick is a short connector from (X, Y0) to (X, Y1) with a
// perpendicular bracket bar of TickLen points at the (X, Y0) end.
type BracketTick struct {
	X       float64
	Y0, Y1  float64
	TickLen float64
	Style   Style
}

func (o Outline) Bounds() (float64, float64, float64, float64) { return o.Path.Bounds() }
func (o Outline) ShapeStyle() Style                            { return o.Style }

func (e Ellipse) Bounds() (float64, float64, float64, float64) {
	return e.CX - e.W/2, e.CY - e.H/2, e.CX + e.W/2, e.CY + e.H/2
}
func (e Ellipse) ShapeStyle() Style { return e.Style }

func (r Rect) Bounds() (float64, float64, float64, float64) {
	return r.X, r.Y, r.X + r.W, r.Y + r.H
}
func (r Rect) ShapeStyle() Style { return r.Style }

// Bounds returns the full-ellipse box; tight arc bounds are not needed by
// the sinks, which only use bounds for frame sizing.
func (a Arc) Bounds() (float64, float64, float64, float64) {
	return a.CX - a.W/2, a.CY - a.H/2, a.CX + a.W/2, a.CY + a.H/2
}
func (a Arc) ShapeStyle() Style { return a.Style }

func (f FancyArrow) Bounds() (float64, float64, float64, float64) {
	x0, x1 := minMax(f.X, f.X+f.DX)
	y0, y1 := minMax(f.Y, f.Y+f.DY)
	half := max(f.HeadWidth, f.TailWidth) / 2
	return x0, y0 - half, x1, y1 + half
}
func (f FancyArrow) ShapeStyle() Style { return f.Style }

func (c Connection) Bounds() (float64, float64, float64, float64) {
	x0, x1 := minMax(c.X1, c.X2)
	y0, y1 := minMax(c.Y1, c.Y2)
	return x0, y0, x1, y1
}
func (c Connection) ShapeStyle() Style { return c.Style }

func (b BracketTick) Bounds() (float64, float64, float64, float64) {
	y0, y1 := minMax(b.Y0, b.Y1)
	return b.X - b.TickLen/2, y0, b.X + b.TickLen/2, y1
}
func (b BracketTick) ShapeStyle() Style { return b.Style }

func minMax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}

// SortByZOrder orders shapes for painting: ascending z-order, stable so
// builder emission order breaks ties.
func SortByZOrder(shapes []Shape) {
	slices.SortStableFunc(shapes, func(a, b Shape) int {
		return cmp.Compare(a.ShapeStyle().ZOrder, b.ShapeStyle().ZOrder)
	})
}

// TotalBounds returns the union of all shape bounds. It returns ok=false
// for an empty list.
func TotalBounds(shapes []Shape) (x0, y0, x1, y1 float64, ok bool) {
	for i, s := range shapes {
		sx0, sy0, sx1, sy1 := s.Bounds()
		if i == 0 {
			x0, y0, x1, y1 = sx0, sy0, sx1, sy1
			continue
		}
		x0, y0 = min(x0, sx0), min(y0, sy0)
		x1, y1 = max(x1, sx1), max(y1, sy1)
	}
	return x0, y0, x1, y1, len(shapes) > 0
}

// Package link builds connector shapes between alignment positions: arcs,
// curves, straight connections, and the range-bracket variants that join
// two position ranges.
//
// Every builder returns a signed extent alongside its shapes. The extent is
// the connector's maximum excursion from the baseline, negative for valley
// links (opening downward), so callers can derive axis bounds with a plain
// min/max over all links and never branch on direction.
package link

import (
	"math"

	"github.com/seqviz/seqviz/pkg/shape"
)

// LineStyle carries the stroke attributes shared by all link shapes.
type LineStyle struct {
	Color     string
	Opacity   float64
	LineWidth float64
}

// DefaultLineStyle returns an opaque one-point stroke in the given color.
func DefaultLineStyle(color string) LineStyle {
	return LineStyle{Color: color, Opacity: 1, LineWidth: 1}
}

// tickLen is the length of the perpendicular bar on range-bracket ticks,
// in points.
const tickLen = 3

func (s LineStyle) strokeStyle() shape.Style {
	return shape.Style{
		Fill:      "none",
		Edge:      s.Color,
		EdgeWidth: s.LineWidth,
		Opacity:   s.Opacity,
	}
}

// Semicircle builds a semicircular link between (x1, y) and (x2, y).
// A valley link opens downward; otherwise the arc opens upward. When
// x1 == x2 the semicircle is degenerate: extent 0 and no shape.
func Semicircle(x1, x2, y float64, valley bool, style LineStyle) (float64, shape.Shape) {
	middle := (x1 + x2) / 2
	height := 2 * math.Abs(x1-middle)
	if height == 0 {
		return 0, nil
	}

	arc := shape.Arc{
		CX: middle, CY: y,
		W: height, H: height,
		Style: style.strokeStyle(),
	}
	if valley {
		arc.Theta1, arc.Theta2 = 180, 360
		return -height, arc
	}
	arc.Theta1, arc.Theta2 = 0, 180
	return height, arc
}

// Curve builds a quadratic link between (x1, y) and (x2, y) whose control
// point sits at the midpoint, 2*|x1-midpoint| above (peak) or below
// (valley) the baseline. The arrow style follows Connection conventions.
func Curve(x1, x2, y float64, valley bool, arrowStyle string, style LineStyle) (float64, shape.Shape) {
	middle := (x1 + x2) / 2
	height := 2 * math.Abs(x1-middle)

	peak := y + height
	extent := height
	if valley {
		peak = y - height
		extent = -height
	}
	return extent, shape.Curve{
		X1: x1, Y1: y,
		CX: middle, CY: peak,
		X2: x2, Y2: y,
		ArrowStyle: arrowStyle,
		Style:      style.strokeStyle(),
	}
}

// Connection builds a straight line between two arbitrary points with the
// given arrowhead style ("-", "->", "<-", "<->"). Its extent is always 0:
// a straight connection never overshoots its endpoints.
func Connection(x1, y1, x2, y2 float64, arrowStyle string, style LineStyle) (float64, shape.Shape) {
	return 0, shape.Connection{
		X1: x1, Y1: y1,
		X2: x2, Y2: y2,
		ArrowStyle: arrowStyle,
		Style:      style.strokeStyle(),
	}
}

// bracketTick builds one perpendicular bracket tick from (x, y0) to (x, y1).
func bracketTick(x, y0, y1 float64, style LineStyle) shape.Shape {
	return shape.BracketTick{
		X:       x,
		Y0:      y0,
		Y1:      y1,
		TickLen: tickLen,
		Style:   style.strokeStyle(),
	}
}

// bracketAnchors computes the two tick x-positions for a range bracket:
// the midpoints of (x11, x21) and (x12, x22).
func bracketAnchors(x11, x12, x21, x22 float64) (float64, float64) {
	return (x11 + x21) / 2, (x12 + x22) / 2
}

// SemicircleBracket draws bracket ticks over the ranges [x11, x12] and
// [x21, x22], offset one unit from the baseline, and joins the tick tips
// with a semicircle.
func SemicircleBracket(x11, x12, x21, x22, y float64, valley bool, style LineStyle) (float64, []shape.Shape) {
	m1, m2 := bracketAnchors(x11, x12, x21, x22)
	y1 := y + 1
	if valley {
		y1 = y - 1
	}

	shapes := []shape.Shape{bracketTick(m1, y, y1, style)}
	extent, arc := Semicircle(m1, m2, y1, valley, style)
	if arc != nil {
		shapes = append(shapes, arc)
	}
	shapes = append(shapes, bracketTick(m2, y, y1, style))
	return extent, shapes
}

// CurveBracket is SemicircleBracket with a quadratic curve joining the
// tick tips instead of a semicircle.
func CurveBracket(x11, x12, x21, x22, y float64, valley bool, arrowStyle string, style LineStyle) (float64, []shape.Shape) {
	m1, m2 := bracketAnchors(x11, x12, x21, x22)
	y1 := y + 1
	if valley {
		y1 = y - 1
	}

	extent, curve := Curve(m1, m2, y1, valley, arrowStyle, style)
	shapes := []shape.Shape{
		bracketTick(m1, y, y1, style),
		curve,
		bracketTick(m2, y, y1, style),
	}
	return extent, shapes
}

// ConnectionBracket draws bracket ticks over the two ranges at their own
// baselines y1 and y2, one unit above each, and joins the tips with a
// straight connection. Extent is 0, matching Connection.
func ConnectionBracket(x11, x12, x21, x22, y1, y2 float64, arrowStyle string, style LineStyle) (float64, []shape.Shape) {
	m1, m2 := bracketAnchors(x11, x12, x21, x22)
	y11 := y1 + 1
	y21 := y2 + 1

	_, conn := Connection(m1, y11, m2, y21, arrowStyle, style)
	shapes := []shape.Shape{
		bracketTick(m1, y1, y11, style),
		conn,
		bracketTick(m2, y2, y21, style),
	}
	return 0, shapes
}

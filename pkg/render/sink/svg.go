// Package sink serializes shape lists to output formats. Every sink takes
// the same flat []shape.Shape the layout engines emit, so a scene built
// from several engines renders with one call.
//
// Shape coordinates use a y-up data space; the sinks flip to the y-down
// device space and add a margin, so callers never deal with device
// coordinates.
package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/seqviz/seqviz/pkg/shape"
)

// DefaultScale is the device-pixels-per-data-unit factor applied when no
// WithScale option is given.
const DefaultScale = 40.0

// DefaultMargin is the frame margin in data units.
const DefaultMargin = 1.0

const arrowMarkerDefs = `  <defs>
    <marker id="arrow-end" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="context-stroke"/>
    </marker>
  </defs>
`

// Tick is one axis label at a data-space x position.
type Tick struct {
	X     float64
	Label string
}

// Ticks pairs tick positions with their labels. Extra labels are dropped;
// extra positions get blank labels, matching axis conventions where the
// label list may be ragged.
func Ticks(positions []int, labels []string) []Tick {
	ticks := make([]Tick, 0, len(positions))
	for i, p := range positions {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		ticks = append(ticks, Tick{X: float64(p), Label: label})
	}
	return ticks
}

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64
	margin     float64
	background string
	ticks      []Tick
}

// WithScale sets the device-pixels-per-data-unit factor.
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithMargin sets the frame margin in data units.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithBackground fills the frame with a solid color before drawing.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithTicks draws axis labels below the scene baseline.
func WithTicks(ticks []Tick) SVGOption { return func(r *svgRenderer) { r.ticks = ticks } }

// frame maps data space to device space: uniform scale, y flip, margin.
type frame struct {
	minX, minY    float64
	maxX, maxY    float64
	scale, margin float64
}

func newFrame(shapes []shape.Shape, ticks []Tick, scale, margin float64) frame {
	f := frame{scale: scale, margin: margin, maxX: 1, maxY: 1}
	if x0, y0, x1, y1, ok := shape.TotalBounds(shapes); ok {
		f.minX, f.minY, f.maxX, f.maxY = x0, y0, x1, y1
	}
	if len(ticks) > 0 {
		for _, t := range ticks {
			f.minX = min(f.minX, t.X)
			f.maxX = max(f.maxX, t.X)
		}
		// Reserve one data unit below the scene for the label row.
		f.minY--
	}
	return f
}

func (f frame) width() float64  { return (f.maxX - f.minX + 2*f.margin) * f.scale }
func (f frame) height() float64 { return (f.maxY - f.minY + 2*f.margin) * f.scale }

// px and py map a data point to device coordinates.
func (f frame) px(x float64) float64 { return (x - f.minX + f.margin) * f.scale }
func (f frame) py(y float64) float64 { return (f.maxY - y + f.margin) * f.scale }

// RenderSVG serializes shapes to a standalone SVG document. Shapes are
// painted in ascending z-order; ties keep emission order.
func RenderSVG(shapes []shape.Shape, opts ...SVGOption) []byte {
	r := svgRenderer{scale: DefaultScale, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	ordered := append([]shape.Shape(nil), shapes...)
	shape.SortByZOrder(ordered)

	f := newFrame(ordered, r.ticks, r.scale, r.margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.width(), f.height(), f.width(), f.height())
	buf.WriteString(arrowMarkerDefs)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			f.width(), f.height(), r.background)
	}

	for _, s := range ordered {
		writeShape(&buf, f, s)
	}
	writeTicks(&buf, f, r.ticks)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeShape(buf *bytes.Buffer, f frame, s shape.Shape) {
	switch v := s.(type) {
	case shape.Outline:
		fmt.Fprintf(buf, `  <path d="%s"%s/>`+"\n", pathData(f, v.Path), styleAttrs(v.Style))
	case shape.Ellipse:
		fmt.Fprintf(buf, `  <ellipse cx="%s" cy="%s" rx="%s" ry="%s"%s/>`+"\n",
			num(f.px(v.CX)), num(f.py(v.CY)), num(v.W/2*f.scale), num(v.H/2*f.scale), styleAttrs(v.Style))
	case shape.Rect:
		fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
			num(f.px(v.X)), num(f.py(v.Y+v.H)), num(v.W*f.scale), num(v.H*f.scale), styleAttrs(v.Style))
	case shape.Arc:
		fmt.Fprintf(buf, `  <path d="%s"%s/>`+"\n", arcPathData(f, v), styleAttrs(v.Style))
	case shape.FancyArrow:
		fmt.Fprintf(buf, `  <polygon points="%s"%s/>`+"\n", arrowPoints(f, v), styleAttrs(v.Style))
	case shape.Connection:
		fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s"%s%s/>`+"\n",
			num(f.px(v.X1)), num(f.py(v.Y1)), num(f.px(v.X2)), num(f.py(v.Y2)),
			styleAttrs(v.Style), markerAttrs(v.ArrowStyle))
	case shape.Curve:
		fmt.Fprintf(buf, `  <path d="M %s %s Q %s %s %s %s"%s%s/>`+"\n",
			num(f.px(v.X1)), num(f.py(v.Y1)),
			num(f.px(v.CX)), num(f.py(v.CY)),
			num(f.px(v.X2)), num(f.py(v.Y2)),
			styleAttrs(v.Style), markerAttrs(v.ArrowStyle))
	case shape.BracketTick:
		fmt.Fprintf(buf, `  <path d="M %s %s L %s %s M %s %s L %s %s"%s/>`+"\n",
			num(f.px(v.X)), num(f.py(v.Y0)), num(f.px(v.X)), num(f.py(v.Y1)),
			num(f.px(v.X)-v.TickLen/2), num(f.py(v.Y0)), num(f.px(v.X)+v.TickLen/2), num(f.py(v.Y0)),
			styleAttrs(v.Style))
	}
}

func writeTicks(buf *bytes.Buffer, f frame, ticks []Tick) {
	if len(ticks) == 0 {
		return
	}
	fontSize := f.scale * 0.35
	y := f.py(f.minY + 0.35)
	for _, t := range ticks {
		if t.Label == "" || t.Label == " " {
			continue
		}
		fmt.Fprintf(buf, `  <text x="%s" y="%s" font-family="sans-serif" font-size="%s" text-anchor="middle">%s</text>`+"\n",
			num(f.px(t.X)), num(y), num(fontSize), t.Label)
	}
}

// styleAttrs serializes a shape style to SVG presentation attributes.
func styleAttrs(s shape.Style) string {
	var buf bytes.Buffer
	if s.Fill == "" || s.Fill == "none" {
		buf.WriteString(` fill="none"`)
	} else {
		fmt.Fprintf(&buf, ` fill="%s"`, s.Fill)
	}
	if s.Edge != "" && s.Edge != "none" {
		fmt.Fprintf(&buf, ` stroke="%s"`, s.Edge)
		if s.EdgeWidth > 0 {
			fmt.Fprintf(&buf, ` stroke-width="%s"`, num(s.EdgeWidth))
		}
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		fmt.Fprintf(&buf, ` opacity="%s"`, num(s.Opacity))
	}
	return buf.String()
}

func markerAttrs(arrowStyle string) string {
	switch arrowStyle {
	case "->":
		return ` marker-end="url(#arrow-end)"`
	case "<-":
		return ` marker-start="url(#arrow-end)"`
	case "<->":
		return ` marker-start="url(#arrow-end)" marker-end="url(#arrow-end)"`
	}
	return ""
}

// pathData serializes a glyph path, mapping every point through the frame.
func pathData(f frame, p shape.Path) string {
	var buf bytes.Buffer
	for i, seg := range p.Segments {
		if i > 0 {
			buf.WriteByte(' ')
		}
		switch seg.Op {
		case shape.MoveTo:
			fmt.Fprintf(&buf, "M %s %s", num(f.px(seg.Pts[0].X)), num(f.py(seg.Pts[0].Y)))
		case shape.LineTo:
			fmt.Fprintf(&buf, "L %s %s", num(f.px(seg.Pts[0].X)), num(f.py(seg.Pts[0].Y)))
		case shape.QuadTo:
			fmt.Fprintf(&buf, "Q %s %s %s %s",
				num(f.px(seg.Pts[0].X)), num(f.py(seg.Pts[0].Y)),
				num(f.px(seg.Pts[1].X)), num(f.py(seg.Pts[1].Y)))
		case shape.CubicTo:
			fmt.Fprintf(&buf, "C %s %s %s %s %s %s",
				num(f.px(seg.Pts[0].X)), num(f.py(seg.Pts[0].Y)),
				num(f.px(seg.Pts[1].X)), num(f.py(seg.Pts[1].Y)),
				num(f.px(seg.Pts[2].X)), num(f.py(seg.Pts[2].Y)))
		case shape.ClosePath:
			buf.WriteByte('Z')
		}
	}
	return buf.String()
}

// arcPathData approximates an elliptical arc with cubic segments of at
// most 90 degrees each. Cubics survive the y flip without sweep-flag
// bookkeeping, and the approximation error is invisible at any scale the
// sinks produce.
func arcPathData(f frame, a shape.Arc) string {
	rx, ry := a.W/2, a.H/2
	t1 := a.Theta1 * math.Pi / 180
	t2 := a.Theta2 * math.Pi / 180

	point := func(t float64) (float64, float64) {
		return f.px(a.CX + rx*math.Cos(t)), f.py(a.CY + ry*math.Sin(t))
	}
	// Derivative of the parametrization, mapped to device space. The y
	// component flips sign with the frame.
	deriv := func(t float64) (float64, float64) {
		return -rx * math.Sin(t) * f.scale, -ry * math.Cos(t) * f.scale
	}

	segments := int(math.Ceil(math.Abs(t2-t1) / (math.Pi / 2)))
	if segments < 1 {
		segments = 1
	}
	step := (t2 - t1) / float64(segments)

	var buf bytes.Buffer
	x, y := point(t1)
	fmt.Fprintf(&buf, "M %s %s", num(x), num(y))
	for i := 0; i < segments; i++ {
		a0 := t1 + float64(i)*step
		a1 := a0 + step
		k := 4.0 / 3.0 * math.Tan((a1-a0)/4)

		x0, y0 := point(a0)
		x3, y3 := point(a1)
		dx0, dy0 := deriv(a0)
		dx3, dy3 := deriv(a1)

		fmt.Fprintf(&buf, " C %s %s %s %s %s %s",
			num(x0+k*dx0), num(y0+k*dy0),
			num(x3-k*dx3), num(y3-k*dy3),
			num(x3), num(y3))
	}
	return buf.String()
}

// arrowPoints computes the seven-corner polygon of a flat arrow, rotated
// along its direction vector.
func arrowPoints(f frame, a shape.FancyArrow) string {
	length := math.Hypot(a.DX, a.DY)
	if length == 0 {
		return ""
	}
	ux, uy := a.DX/length, a.DY/length

	local := arrowOutline(length, a.HeadLength, a.HeadWidth, a.TailWidth)
	var buf bytes.Buffer
	for i, p := range local {
		wx := a.X + p.X*ux - p.Y*uy
		wy := a.Y + p.X*uy + p.Y*ux
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%s,%s", num(f.px(wx)), num(f.py(wy)))
	}
	return buf.String()
}

// arrowOutline returns the arrow polygon in local coordinates: x along the
// shaft from tail to tip, y perpendicular.
func arrowOutline(length, headLen, headWidth, tailWidth float64) []shape.Point {
	neck := length - headLen
	return []shape.Point{
		{X: 0, Y: tailWidth / 2},
		{X: neck, Y: tailWidth / 2},
		{X: neck, Y: headWidth / 2},
		{X: length, Y: 0},
		{X: neck, Y: -headWidth / 2},
		{X: neck, Y: -tailWidth / 2},
		{X: 0, Y: -tailWidth / 2},
	}
}

// num formats device coordinates compactly: fixed two decimals with
// trailing zeros kept, so output is stable across runs.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

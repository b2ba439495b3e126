package sink

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/seqviz/seqviz/pkg/shape"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	generator string
	ticks     []Tick
	now       func() time.Time
	newID     func() string
}

// WithJSONGenerator records the producing engine ("logo", "coevolution",
// "structure") in the document for downstream consumers.
func WithJSONGenerator(name string) JSONOption {
	return func(r *jsonRenderer) { r.generator = name }
}

// WithJSONTicks includes the axis ticks in the document.
func WithJSONTicks(ticks []Tick) JSONOption {
	return func(r *jsonRenderer) { r.ticks = ticks }
}

// withJSONStamp overrides the document id and timestamp, for tests.
func withJSONStamp(id string, at time.Time) JSONOption {
	return func(r *jsonRenderer) {
		r.newID = func() string { return id }
		r.now = func() time.Time { return at }
	}
}

type jsonDocument struct {
	ID        string      `json:"id"`
	Generator string      `json:"generator,omitempty"`
	CreatedAt string      `json:"created_at"`
	Bounds    *jsonBounds `json:"bounds,omitempty"`
	Shapes    []jsonShape `json:"shapes"`
	Ticks     []jsonTick  `json:"ticks,omitempty"`
}

type jsonBounds struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// jsonShape is a discriminated union over the shape primitives; Type
// selects which coordinate fields are populated.
type jsonShape struct {
	Type string `json:"type"`

	// outline
	Path []jsonSegment `json:"path,omitempty"`

	// ellipse and arc
	CX float64 `json:"cx,omitempty"`
	CY float64 `json:"cy,omitempty"`

	// rect and arrow anchor
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	Theta1 float64 `json:"theta1,omitempty"`
	Theta2 float64 `json:"theta2,omitempty"`

	DX         float64 `json:"dx,omitempty"`
	DY         float64 `json:"dy,omitempty"`
	HeadLength float64 `json:"head_length,omitempty"`
	HeadWidth  float64 `json:"head_width,omitempty"`
	TailWidth  float64 `json:"tail_width,omitempty"`

	// connection, curve, bracket tick
	X1         float64 `json:"x1,omitempty"`
	Y1         float64 `json:"y1,omitempty"`
	X2         float64 `json:"x2,omitempty"`
	Y2         float64 `json:"y2,omitempty"`
	Y0         float64 `json:"y0,omitempty"`
	TickLen    float64 `json:"tick_len,omitempty"`
	ArrowStyle string  `json:"arrow_style,omitempty"`

	Style jsonStyle `json:"style"`
}

type jsonSegment struct {
	Op     string       `json:"op"`
	Points [][2]float64 `json:"points,omitempty"`
}

type jsonStyle struct {
	Fill      string  `json:"fill,omitempty"`
	Edge      string  `json:"edge,omitempty"`
	EdgeWidth float64 `json:"edge_width,omitempty"`
	Opacity   float64 `json:"opacity,omitempty"`
	ZOrder    int     `json:"z_order,omitempty"`
}

type jsonTick struct {
	X     float64 `json:"x"`
	Label string  `json:"label"`
}

// RenderJSON exports the shape list as a pretty-printed JSON document with
// a fresh UUID, suitable for caching or re-rendering by external tools.
// Shapes keep their data-space coordinates; no device mapping is applied.
func RenderJSON(shapes []shape.Shape, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&r)
	}

	doc := jsonDocument{
		ID:        r.newID(),
		Generator: r.generator,
		CreatedAt: r.now().UTC().Format(time.RFC3339),
		Shapes:    buildJSONShapes(shapes),
	}
	if x0, y0, x1, y1, ok := shape.TotalBounds(shapes); ok {
		doc.Bounds = &jsonBounds{X0: x0, Y0: y0, X1: x1, Y1: y1}
	}
	for _, t := range r.ticks {
		doc.Ticks = append(doc.Ticks, jsonTick{X: t.X, Label: t.Label})
	}

	return json.MarshalIndent(doc, "", "  ")
}

func buildJSONShapes(shapes []shape.Shape) []jsonShape {
	out := make([]jsonShape, 0, len(shapes))
	for _, s := range shapes {
		js := jsonShape{Style: buildJSONStyle(s.ShapeStyle())}
		switch v := s.(type) {
		case shape.Outline:
			js.Type = "outline"
			js.Path = buildJSONPath(v.Path)
		case shape.Ellipse:
			js.Type = "ellipse"
			js.CX, js.CY, js.W, js.H = v.CX, v.CY, v.W, v.H
		case shape.Rect:
			js.Type = "rect"
			js.X, js.Y, js.W, js.H = v.X, v.Y, v.W, v.H
		case shape.Arc:
			js.Type = "arc"
			js.CX, js.CY, js.W, js.H = v.CX, v.CY, v.W, v.H
			js.Theta1, js.Theta2 = v.Theta1, v.Theta2
		case shape.FancyArrow:
			js.Type = "arrow"
			js.X, js.Y, js.DX, js.DY = v.X, v.Y, v.DX, v.DY
			js.HeadLength, js.HeadWidth, js.TailWidth = v.HeadLength, v.HeadWidth, v.TailWidth
		case shape.Connection:
			js.Type = "connection"
			js.X1, js.Y1, js.X2, js.Y2 = v.X1, v.Y1, v.X2, v.Y2
			js.ArrowStyle = v.ArrowStyle
		case shape.Curve:
			js.Type = "curve"
			js.X1, js.Y1, js.X2, js.Y2 = v.X1, v.Y1, v.X2, v.Y2
			js.CX, js.CY = v.CX, v.CY
			js.ArrowStyle = v.ArrowStyle
		case shape.BracketTick:
			js.Type = "bracket_tick"
			js.X, js.Y0, js.Y1, js.TickLen = v.X, v.Y0, v.Y1, v.TickLen
		default:
			continue
		}
		out = append(out, js)
	}
	return out
}

func buildJSONStyle(s shape.Style) jsonStyle {
	return jsonStyle{
		Fill:      s.Fill,
		Edge:      s.Edge,
		EdgeWidth: s.EdgeWidth,
		Opacity:   s.Opacity,
		ZOrder:    s.ZOrder,
	}
}

func buildJSONPath(p shape.Path) []jsonSegment {
	segs := make([]jsonSegment, 0, len(p.Segments))
	for _, s := range p.Segments {
		js := jsonSegment{}
		var n int
		switch s.Op {
		case shape.MoveTo:
			js.Op, n = "moveto", 1
		case shape.LineTo:
			js.Op, n = "lineto", 1
		case shape.QuadTo:
			js.Op, n = "quadto", 2
		case shape.CubicTo:
			js.Op, n = "cubicto", 3
		case shape.ClosePath:
			js.Op, n = "close", 0
		}
		for i := 0; i < n; i++ {
			js.Points = append(js.Points, [2]float64{s.Pts[i].X, s.Pts[i].Y})
		}
		segs = append(segs, js)
	}
	return segs
}

package shape

// PathOp identifies a path segment command.
type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // one control point, one end point
	CubicTo // two control points, one end point
	ClosePath
)

// Point is a 2D coordinate in data units.
type Point struct {
	X, Y float64
}

// Segment is a single path command. Pts usage depends on Op: MoveTo and
// LineTo use Pts[0], QuadTo uses Pts[0..1], CubicTo uses Pts[0..2],
// ClosePath uses none.
type Segment struct {
	Op  PathOp
	Pts [3]Point
}

// Path is an ordered sequence of segments describing a character outline
// or other freeform contour.
type Path struct {
	Segments []Segment
}

func (p *Path) MoveTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: MoveTo, Pts: [3]Point{{x, y}}})
}

func (p *Path) LineTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: LineTo, Pts: [3]Point{{x, y}}})
}

func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: QuadTo, Pts: [3]Point{{cx, cy}, {x, y}}})
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: CubicTo, Pts: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Op: ClosePath})
}

// Bounds returns the control-point hull of the path. For quadratic and
// cubic segments this over-approximates the tight curve box, which is
// acceptable for frame sizing.
func (p Path) Bounds() (x0, y0, x1, y1 float64) {
	first := true
	visit := func(pt Point) {
		if first {
			x0, y0, x1, y1 = pt.X, pt.Y, pt.X, pt.Y
			first = false
			return
		}
		x0, y0 = min(x0, pt.X), min(y0, pt.Y)
		x1, y1 = max(x1, pt.X), max(y1, pt.Y)
	}
	for _, s := range p.Segments {
		switch s.Op {
		case MoveTo, LineTo:
			visit(s.Pts[0])
		case QuadTo:
			visit(s.Pts[0])
			visit(s.Pts[1])
		case CubicTo:
			visit(s.Pts[0])
			visit(s.Pts[1])
			visit(s.Pts[2])
		}
	}
	return x0, y0, x1, y1
}

// Affine is a 2D affine transform. Applying it maps (x, y) to
// (XX*x + XY*y + TX, YX*x + YY*y + TY).
type Affine struct {
	XX, XY, TX float64
	YX, YY, TY float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{XX: 1, YY: 1}
}

// Translate returns the transform shifted by (tx, ty) after a.
func (a Affine) Translate(tx, ty float64) Affine {
	a.TX += tx
	a.TY += ty
	return a
}

// Scale returns the transform scaled by (sx, sy) after a. Scaling and
// translation do not commute, so call order matters.
func (a Affine) Scale(sx, sy float64) Affine {
	a.XX *= sx
	a.XY *= sx
	a.TX *= sx
	a.YX *= sy
	a.YY *= sy
	a.TY *= sy
	return a
}

// Apply maps a single point through the transform.
func (a Affine) Apply(p Point) Point {
	return Point{
		X: a.XX*p.X + a.XY*p.Y + a.TX,
		Y: a.YX*p.X + a.YY*p.Y + a.TY,
	}
}

// TransformPath returns a copy of p with every point mapped through a.
func (a Affine) TransformPath(p Path) Path {
	out := Path{Segments: make([]Segment, len(p.Segments))}
	for i, s := range p.Segments {
		t := Segment{Op: s.Op}
		for j, pt := range s.Pts {
			t.Pts[j] = a.Apply(pt)
		}
		out.Segments[i] = t
	}
	return out
}

package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/seqviz/seqviz/pkg/colorscheme"
	"github.com/seqviz/seqviz/pkg/errors"
	"github.com/seqviz/seqviz/pkg/shape"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	margin     float64
	background string
	ticks      []Tick
}

// WithPNGScale sets the device-pixels-per-data-unit factor.
func WithPNGScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGMargin sets the frame margin in data units.
func WithPNGMargin(m float64) PNGOption { return func(r *pngRenderer) { r.margin = m } }

// WithPNGBackground fills the frame with a solid color before drawing.
// The default is white; PNG has no useful transparent default for logos.
func WithPNGBackground(color string) PNGOption {
	return func(r *pngRenderer) { r.background = color }
}

// WithPNGTicks draws axis labels below the scene baseline.
func WithPNGTicks(ticks []Tick) PNGOption { return func(r *pngRenderer) { r.ticks = ticks } }

// RenderPNG rasterizes shapes directly, without going through SVG. An
// unparseable style color aborts the render.
func RenderPNG(shapes []shape.Shape, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale, margin: DefaultMargin, background: "white"}
	for _, opt := range opts {
		opt(&r)
	}

	ordered := append([]shape.Shape(nil), shapes...)
	shape.SortByZOrder(ordered)

	f := newFrame(ordered, r.ticks, r.scale, r.margin)
	ctx := gg.NewContext(int(math.Ceil(f.width())), int(math.Ceil(f.height())))

	if r.background != "" {
		br, bg, bb, err := colorscheme.ParseColor(r.background)
		if err != nil {
			return nil, err
		}
		ctx.SetRGB(br, bg, bb)
		ctx.Clear()
	}

	for _, s := range ordered {
		if err := rasterShape(ctx, f, s); err != nil {
			return nil, err
		}
	}
	if err := rasterTicks(ctx, f, r.ticks); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ctx.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode PNG")
	}
	return buf.Bytes(), nil
}

func rasterShape(ctx *gg.Context, f frame, s shape.Shape) error {
	switch v := s.(type) {
	case shape.Outline:
		tracePath(ctx, f, v.Path)
	case shape.Ellipse:
		ctx.DrawEllipse(f.px(v.CX), f.py(v.CY), v.W/2*f.scale, v.H/2*f.scale)
	case shape.Rect:
		ctx.DrawRectangle(f.px(v.X), f.py(v.Y+v.H), v.W*f.scale, v.H*f.scale)
	case shape.Arc:
		// World angles run counter-clockwise with y up; the raster
		// context is y down, so angles negate.
		ctx.NewSubPath()
		ctx.DrawEllipticalArc(f.px(v.CX), f.py(v.CY), v.W/2*f.scale, v.H/2*f.scale,
			-v.Theta1*math.Pi/180, -v.Theta2*math.Pi/180)
	case shape.FancyArrow:
		traceArrow(ctx, f, v)
	case shape.Connection:
		ctx.MoveTo(f.px(v.X1), f.py(v.Y1))
		ctx.LineTo(f.px(v.X2), f.py(v.Y2))
		if err := paintStroke(ctx, v.Style); err != nil {
			return err
		}
		return rasterArrowheads(ctx, f, v)
	case shape.Curve:
		ctx.MoveTo(f.px(v.X1), f.py(v.Y1))
		ctx.QuadraticTo(f.px(v.CX), f.py(v.CY), f.px(v.X2), f.py(v.Y2))
		return paintStroke(ctx, v.Style)
	case shape.BracketTick:
		ctx.MoveTo(f.px(v.X), f.py(v.Y0))
		ctx.LineTo(f.px(v.X), f.py(v.Y1))
		ctx.MoveTo(f.px(v.X)-v.TickLen/2, f.py(v.Y0))
		ctx.LineTo(f.px(v.X)+v.TickLen/2, f.py(v.Y0))
		return paintStroke(ctx, v.Style)
	default:
		return nil
	}
	return paint(ctx, s.ShapeStyle())
}

func tracePath(ctx *gg.Context, f frame, p shape.Path) {
	for _, seg := range p.Segments {
		switch seg.Op {
		case shape.MoveTo:
			ctx.MoveTo(f.px(seg.Pts[0].X), f.py(seg.Pts[0].Y))
		case shape.LineTo:
			ctx.LineTo(f.px(seg.Pts[0].X), f.py(seg.Pts[0].Y))
		case shape.QuadTo:
			ctx.QuadraticTo(
				f.px(seg.Pts[0].X), f.py(seg.Pts[0].Y),
				f.px(seg.Pts[1].X), f.py(seg.Pts[1].Y))
		case shape.CubicTo:
			ctx.CubicTo(
				f.px(seg.Pts[0].X), f.py(seg.Pts[0].Y),
				f.px(seg.Pts[1].X), f.py(seg.Pts[1].Y),
				f.px(seg.Pts[2].X), f.py(seg.Pts[2].Y))
		case shape.ClosePath:
			ctx.ClosePath()
		}
	}
}

func traceArrow(ctx *gg.Context, f frame, a shape.FancyArrow) {
	length := math.Hypot(a.DX, a.DY)
	if length == 0 {
		return
	}
	ux, uy := a.DX/length, a.DY/length
	for i, p := range arrowOutline(length, a.HeadLength, a.HeadWidth, a.TailWidth) {
		wx := a.X + p.X*ux - p.Y*uy
		wy := a.Y + p.X*uy + p.Y*ux
		if i == 0 {
			ctx.MoveTo(f.px(wx), f.py(wy))
		} else {
			ctx.LineTo(f.px(wx), f.py(wy))
		}
	}
	ctx.ClosePath()
}

// rasterArrowheads draws filled triangles for connection arrow styles.
func rasterArrowheads(ctx *gg.Context, f frame, c shape.Connection) error {
	if c.ArrowStyle == "" || c.ArrowStyle == "-" {
		return nil
	}

	headLen := 7.0 + c.Style.EdgeWidth
	x1, y1 := f.px(c.X1), f.py(c.Y1)
	x2, y2 := f.px(c.X2), f.py(c.Y2)
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return nil
	}
	ux, uy := dx/dist, dy/dist

	head := func(tipX, tipY, dirX, dirY float64) {
		bx, by := tipX-dirX*headLen, tipY-dirY*headLen
		px, py := -dirY*headLen/2, dirX*headLen/2
		ctx.MoveTo(tipX, tipY)
		ctx.LineTo(bx+px, by+py)
		ctx.LineTo(bx-px, by-py)
		ctx.ClosePath()
	}

	if c.ArrowStyle == "->" || c.ArrowStyle == "<->" {
		head(x2, y2, ux, uy)
	}
	if c.ArrowStyle == "<-" || c.ArrowStyle == "<->" {
		head(x1, y1, -ux, -uy)
	}

	return paint(ctx, shape.Style{Fill: c.Style.Edge, Opacity: c.Style.Opacity})
}

func rasterTicks(ctx *gg.Context, f frame, ticks []Tick) error {
	if len(ticks) == 0 {
		return nil
	}
	ctx.SetRGB(0, 0, 0)
	y := f.py(f.minY + 0.35)
	for _, t := range ticks {
		if t.Label == "" || t.Label == " " {
			continue
		}
		ctx.DrawStringAnchored(t.Label, f.px(t.X), y, 0.5, 0.5)
	}
	return nil
}

// paint fills and strokes the current path per the style, clearing it
// afterwards.
func paint(ctx *gg.Context, s shape.Style) error {
	opacity := s.Opacity
	if opacity == 0 {
		opacity = 1
	}

	hasFill := s.Fill != "" && s.Fill != "none"
	hasEdge := s.Edge != "" && s.Edge != "none"

	if hasFill {
		r, g, b, err := colorscheme.ParseColor(s.Fill)
		if err != nil {
			return err
		}
		ctx.SetRGBA(r, g, b, opacity)
		if hasEdge {
			ctx.FillPreserve()
		} else {
			ctx.Fill()
		}
	}
	if hasEdge {
		r, g, b, err := colorscheme.ParseColor(s.Edge)
		if err != nil {
			return err
		}
		ctx.SetRGBA(r, g, b, opacity)
		width := s.EdgeWidth
		if width == 0 {
			width = 1
		}
		ctx.SetLineWidth(width)
		ctx.Stroke()
	}
	if !hasFill && !hasEdge {
		ctx.ClearPath()
	}
	return nil
}

func paintStroke(ctx *gg.Context, s shape.Style) error {
	s.Fill = "none"
	return paint(ctx, s)
}

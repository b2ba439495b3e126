// Package fonts implements the glyph.OutlineProvider contract on top of
// TrueType fonts. Fonts are located on the host system with go-findfont and
// parsed with freetype; quadratic contours are converted to shape paths at
// a fixed nominal size.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/seqviz/seqviz/pkg/errors"
	"github.com/seqviz/seqviz/pkg/glyph"
	"github.com/seqviz/seqviz/pkg/shape"
)

// nominalSize is the pixel size outlines are extracted at. The glyph
// builder rescales outlines to its target box, so the value only needs to
// be large enough to keep quantization error negligible.
const nominalSize = 64

// defaultFamilies is the lookup chain used by Default, ordered by how
// commonly the fonts ship on Linux and macOS hosts.
var defaultFamilies = []string{
	"DejaVuSans.ttf",
	"DejaVu Sans",
	"Arial",
	"Helvetica",
	"FreeSans",
}

// Provider extracts character outlines from a parsed TrueType font.
// Outlines are cached per rune; the cache is the only mutable state and is
// mutex-guarded, so a Provider is safe for concurrent use.
type Provider struct {
	font  *truetype.Font
	scale fixed.Int26_6

	mu    sync.Mutex
	cache map[rune]glyph.Outline
}

var _ glyph.OutlineProvider = (*Provider)(nil)

// Load parses the TrueType font file at path.
func Load(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "read font %s", path)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "parse font %s", path)
	}
	return &Provider{
		font:  f,
		scale: fixed.I(nominalSize),
		cache: make(map[rune]glyph.Outline),
	}, nil
}

// Find locates the first resolvable font name on the host system and loads
// it. Names can be file names ("DejaVuSans.ttf") or family names.
func Find(names ...string) (*Provider, error) {
	for _, name := range names {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		return Load(path)
	}
	return nil, errors.New(errors.ErrCodeFontNotFound,
		"no usable font among %v", names)
}

// Default loads a sans-serif font from the standard fallback chain.
func Default() (*Provider, error) {
	return Find(defaultFamilies...)
}

// Outline returns the unscaled outline for r at the nominal size.
func (p *Provider) Outline(r rune) (glyph.Outline, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if o, ok := p.cache[r]; ok {
		return o, nil
	}

	idx := p.font.Index(r)
	if idx == 0 {
		return glyph.Outline{}, errors.New(errors.ErrCodeUnknownSymbol,
			"font has no glyph for %q", r)
	}

	var buf truetype.GlyphBuf
	if err := buf.Load(p.font, p.scale, idx, font.HintingNone); err != nil {
		return glyph.Outline{}, errors.Wrap(errors.ErrCodeInternal, err,
			"load glyph %q", r)
	}

	var path shape.Path
	start := 0
	for _, end := range buf.Ends {
		emitContour(&path, buf.Points[start:end])
		start = end
	}

	o := glyph.Outline{
		Path: path,
		MinX: f26ToFloat(buf.Bounds.Min.X),
		MinY: f26ToFloat(buf.Bounds.Min.Y),
		W:    f26ToFloat(buf.Bounds.Max.X - buf.Bounds.Min.X),
		H:    f26ToFloat(buf.Bounds.Max.Y - buf.Bounds.Min.Y),
	}
	p.cache[r] = o
	return o, nil
}

func f26ToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func pointOf(q truetype.Point) shape.Point {
	return shape.Point{X: f26ToFloat(q.X), Y: f26ToFloat(q.Y)}
}

func onCurve(q truetype.Point) bool {
	return q.Flags&0x01 != 0
}

// emitContour converts one TrueType contour to path segments. TrueType
// stores quadratic splines where consecutive off-curve points imply an
// on-curve midpoint between them.
func emitContour(path *shape.Path, pts []truetype.Point) {
	n := len(pts)
	if n == 0 {
		return
	}

	var start shape.Point
	var ring []truetype.Point
	switch {
	case onCurve(pts[0]):
		start = pointOf(pts[0])
		ring = pts[1:]
	case onCurve(pts[n-1]):
		start = pointOf(pts[n-1])
		ring = pts[:n-1]
	default:
		// Contour starts and ends off-curve: open at the implied midpoint.
		start = midpoint(pointOf(pts[n-1]), pointOf(pts[0]))
		ring = pts
	}

	path.MoveTo(start.X, start.Y)
	var ctrl *shape.Point
	for _, q := range ring {
		cur := pointOf(q)
		if onCurve(q) {
			if ctrl == nil {
				path.LineTo(cur.X, cur.Y)
			} else {
				path.QuadTo(ctrl.X, ctrl.Y, cur.X, cur.Y)
				ctrl = nil
			}
			continue
		}
		if ctrl != nil {
			mid := midpoint(*ctrl, cur)
			path.QuadTo(ctrl.X, ctrl.Y, mid.X, mid.Y)
		}
		c := cur
		ctrl = &c
	}
	if ctrl != nil {
		path.QuadTo(ctrl.X, ctrl.Y, start.X, start.Y)
	} else {
		path.LineTo(start.X, start.Y)
	}
	path.Close()
}

func midpoint(a, b shape.Point) shape.Point {
	return shape.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Package structure lays out secondary-structure cartoons: a label
// sequence is segmented into maximal runs of the same structural class and
// each run is rendered as a class-specific primitive (helix wave or
// cylinder, sheet arrow, turn arc, coil connector).
package structure

import (
	"github.com/seqviz/seqviz/pkg/colorscheme"
	"github.com/seqviz/seqviz/pkg/errors"
	"github.com/seqviz/seqviz/pkg/shape"
)

// Class is a normalized secondary-structure class.
type Class byte

const (
	Helix Class = 'H'
	Sheet Class = 'E'
	Turn  Class = 'T'
	Coil  Class = 'C'
)

// classOf folds the eight DSSP labels onto the four drawn classes.
var classOf = map[byte]Class{
	'H': Helix, 'G': Helix, 'I': Helix,
	'B': Sheet, 'E': Sheet,
	'T': Turn, 'S': Turn,
	'C': Coil,
}

// Normalize maps a raw label to its drawn class. Labels outside the DSSP
// set (DSSP emits '-' and ' ' for unassigned residues) map to coil.
func Normalize(label byte) Class {
	if c, ok := classOf[label]; ok {
		return c
	}
	return Coil
}

// Block is a maximal run of one structural class over the label sequence.
// End is inclusive.
type Block struct {
	Class Class
	Start int
	End   int
}

// Len returns the number of residues the block spans.
func (b Block) Len() int { return b.End - b.Start + 1 }

// Segment splits a raw label sequence into maximal same-class runs. The
// final run is closed with the sequence's last raw label as its class, so
// a trailing run of helix synonyms ('G', 'I') keeps the raw letter; such
// blocks draw nothing, matching long-standing cartoon behavior.
func Segment(labels string) ([]Block, error) {
	if len(labels) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLabels, "empty structure label sequence")
	}

	var blocks []Block
	prev := Class(0)
	runStart := 0
	for i := 0; i < len(labels); i++ {
		c := Normalize(labels[i])
		if prev == 0 {
			prev = c
		}
		if c != prev {
			blocks = append(blocks, Block{Class: prev, Start: runStart, End: i - 1})
			prev = c
			runStart = i
		}
	}
	blocks = append(blocks, Block{Class: Class(labels[len(labels)-1]), Start: runStart, End: len(labels) - 1})
	return blocks, nil
}

// HelixStyle selects how helix runs are drawn.
type HelixStyle int

const (
	// HelixWave draws consecutive half-ellipse arcs with alternating phase.
	HelixWave HelixStyle = iota
	// HelixCylinder draws a capped cylinder spanning the run.
	HelixCylinder
)

// Config holds cartoon layout options. The zero value draws wave helices
// of width 2 at the origin with the builtin colors.
type Config struct {
	// X, Y offset every primitive.
	X, Y float64
	// Helix selects wave (default) or cylinder rendering.
	Helix HelixStyle
	// Width scales all elements. Defaults to 2.
	Width float64
	// Colors fills the four classes. Zero value selects the builtin scheme.
	Colors colorscheme.Structure
}

const (
	// DefaultWidth is the cartoon-wide scale factor.
	DefaultWidth = 2.0

	// edgeOffset keeps cap ellipses and arrow heads fractionally smaller
	// than the body so their edges do not poke past it.
	edgeOffset = 0.001

	// arcOverdraw extends each wave arc by one degree on both sides;
	// exact 180-degree joints leave hairline gaps in rendered output.
	arcOverdraw = 1.0

	arcSpan       = 0.5 // horizontal span of one wave half-turn
	arcLineWidth  = 2.0
	edgeThickness = 1.0

	sheetTailRatio = 2.0 / 3.0
	coilThickness  = 0.8

	// Coil trimming toward dissimilar neighbors: a small fixed fraction
	// of a point toward helix and turn shapes, half a residue toward the
	// recessed tail or head of a sheet arrow.
	trimRound = 4.0 / 72.0
	trimSheet = 0.5
)

// Cartoon lays out one secondary-structure label sequence.
type Cartoon struct {
	cfg    Config
	blocks []Block
}

// New segments labels and validates the configuration.
func New(labels string, cfg Config) (*Cartoon, error) {
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Colors == (colorscheme.Structure{}) {
		cfg.Colors = colorscheme.StructureDefault()
	}
	for _, c := range []string{cfg.Colors.Helix, cfg.Colors.Sheet, cfg.Colors.Turn, cfg.Colors.Coil} {
		if !colorscheme.ValidColor(c) {
			return nil, errors.New(errors.ErrCodeInvalidScheme, "unparseable structure color %q", c)
		}
	}

	blocks, err := Segment(labels)
	if err != nil {
		return nil, err
	}
	return &Cartoon{cfg: cfg, blocks: blocks}, nil
}

// Blocks returns the segmented runs in left-to-right order.
func (c *Cartoon) Blocks() []Block {
	return append([]Block(nil), c.blocks...)
}

// Build emits the shape descriptors for every block in left-to-right
// order. Helix waves contribute several arcs per block; every other class
// contributes a single primitive. Blocks whose class is not one of the
// four drawn classes emit nothing.
func (c *Cartoon) Build() []shape.Shape {
	var shapes []shape.Shape
	for i, b := range c.blocks {
		switch b.Class {
		case Helix:
			shapes = append(shapes, c.helix(b)...)
		case Sheet:
			shapes = append(shapes, c.sheet(b))
		case Turn:
			shapes = append(shapes, c.turn(b))
		case Coil:
			prev, next := Class(0), Class(0)
			if i > 0 {
				prev = c.blocks[i-1].Class
			}
			if i+1 < len(c.blocks) {
				next = c.blocks[i+1].Class
			}
			shapes = append(shapes, c.coil(b, prev, next))
		}
	}
	return shapes
}

func (c *Cartoon) helix(b Block) []shape.Shape {
	if c.cfg.Helix == HelixCylinder {
		return c.helixCylinder(b)
	}
	return c.helixWave(b)
}

// helixWave draws one pair of half-turns per residue: consecutive
// half-ellipse arcs of span arcSpan with 180-degree phase alternation.
func (c *Cartoon) helixWave(b Block) []shape.Shape {
	var shapes []shape.Shape
	theta1, theta2 := 0.0, 180.0
	for arcStart := float64(b.Start); arcStart < float64(b.End)+1; arcStart += arcSpan {
		shapes = append(shapes, shape.Arc{
			CX:     arcStart + arcSpan/2 + c.cfg.X,
			CY:     c.cfg.Width/2 + c.cfg.Y,
			W:      arcSpan,
			H:      c.cfg.Width,
			Theta1: theta1 - arcOverdraw,
			Theta2: theta2 + arcOverdraw,
			Style: shape.Style{
				Fill:      "none",
				Edge:      c.cfg.Colors.Helix,
				EdgeWidth: arcLineWidth,
				Opacity:   1,
			},
		})
		theta1 += 180
		theta2 += 180
	}
	return shapes
}

// helixCylinder draws a start-cap ellipse, a body rectangle, and an
// end-cap ellipse whose combined length equals the block's span.
func (c *Cartoon) helixCylinder(b Block) []shape.Shape {
	capW := c.cfg.Width / 2
	capH := c.cfg.Width - edgeOffset
	span := float64(b.Len())

	capStyle := shape.Style{
		Fill:      c.cfg.Colors.Helix,
		Edge:      "black",
		EdgeWidth: edgeThickness,
		Opacity:   1,
	}
	bodyStyle := shape.Style{
		Fill:    c.cfg.Colors.Helix,
		Edge:    "none",
		Opacity: 1,
	}

	return []shape.Shape{
		shape.Ellipse{
			CX: float64(b.Start) + capW/2 + c.cfg.X, CY: capH/2 + c.cfg.Y,
			W: capW, H: capH,
			Style: capStyle,
		},
		shape.Rect{
			X: float64(b.Start) + capW/2 + c.cfg.X, Y: c.cfg.Y,
			W: span - capW, H: c.cfg.Width,
			Style: bodyStyle,
		},
		shape.Ellipse{
			CX: float64(b.End) + 1 - capW/2 + c.cfg.X, CY: capH/2 + c.cfg.Y,
			W: capW, H: capH,
			Style: capStyle,
		},
	}
}

// sheet draws a flat arrow spanning the block with a head a quarter of
// the span long.
func (c *Cartoon) sheet(b Block) shape.Shape {
	span := float64(b.Len())
	return shape.FancyArrow{
		X:          float64(b.Start) + c.cfg.X,
		Y:          c.cfg.Width/2 + c.cfg.Y,
		DX:         span,
		DY:         0,
		HeadLength: span / 4,
		HeadWidth:  c.cfg.Width - edgeOffset,
		TailWidth:  c.cfg.Width * sheetTailRatio,
		Style: shape.Style{
			Fill:      c.cfg.Colors.Sheet,
			Edge:      "none",
			EdgeWidth: edgeThickness,
			Opacity:   1,
		},
	}
}

// turn draws a single semi-elliptical arc spanning the block.
func (c *Cartoon) turn(b Block) shape.Shape {
	span := float64(b.Len())
	return shape.Arc{
		CX:     float64(b.Start) + span/2 + c.cfg.X,
		CY:     c.cfg.Width/2 + c.cfg.Y,
		W:      span,
		H:      c.cfg.Width,
		Theta1: 0,
		Theta2: 180,
		Style: shape.Style{
			Fill:      "none",
			Edge:      c.cfg.Colors.Turn,
			EdgeWidth: arcLineWidth,
			Opacity:   1,
		},
	}
}

// coil draws a straight connector spanning the block, extended toward
// dissimilar neighbors so the joints close visually. Trimming is applied
// independently at each end based on that end's neighbor; sequence
// boundaries and coil neighbors get no extension.
func (c *Cartoon) coil(b Block, prev, next Class) shape.Shape {
	start := float64(b.Start)
	length := float64(b.Len())

	switch prev {
	case Helix, Turn:
		start -= trimRound
		length += trimRound
	case Sheet:
		start -= trimSheet
		length += trimSheet
	}
	switch next {
	case Helix, Turn:
		length += trimRound
	case Sheet:
		length += trimSheet
	}

	y := c.cfg.Width/2 + c.cfg.Y
	return shape.Connection{
		X1: start + c.cfg.X, Y1: y,
		X2: start + length + c.cfg.X, Y2: y,
		ArrowStyle: "-",
		Style: shape.Style{
			Fill:      "none",
			Edge:      c.cfg.Colors.Coil,
			EdgeWidth: c.cfg.Width * coilThickness,
			Opacity:   1,
		},
	}
}

package link

import (
	"testing"

	"github.com/seqviz/seqviz/pkg/shape"
)

func TestSemicircle(t *testing.T) {
	style := DefaultLineStyle("black")

	t.Run("peak", func(t *testing.T) {
		extent, s := Semicircle(2, 6, 0, false, style)
		if extent != 4 {
			t.Errorf("extent = %v, want 4", extent)
		}
		arc, ok := s.(shape.Arc)
		if !ok {
			t.Fatalf("shape = %T, want Arc", s)
		}
		if arc.CX != 4 || arc.CY != 0 {
			t.Errorf("center = (%v, %v), want (4, 0)", arc.CX, arc.CY)
		}
		if arc.W != 4 || arc.H != 4 {
			t.Errorf("axes = (%v, %v), want (4, 4)", arc.W, arc.H)
		}
		if arc.Theta1 != 0 || arc.Theta2 != 180 {
			t.Errorf("thetas = (%v, %v), want (0, 180)", arc.Theta1, arc.Theta2)
		}
	})

	t.Run("valley", func(t *testing.T) {
		extent, s := Semicircle(2, 6, 0, true, style)
		if extent != -4 {
			t.Errorf("extent = %v, want -4", extent)
		}
		arc := s.(shape.Arc)
		if arc.Theta1 != 180 || arc.Theta2 != 360 {
			t.Errorf("thetas = (%v, %v), want (180, 360)", arc.Theta1, arc.Theta2)
		}
	})

	t.Run("degenerate", func(t *testing.T) {
		extent, s := Semicircle(3, 3, 0, false, style)
		if extent != 0 || s != nil {
			t.Errorf("degenerate link = (%v, %v), want (0, nil)", extent, s)
		}
	})
}

func TestCurve(t *testing.T) {
	style := DefaultLineStyle("red")

	extent, s := Curve(1, 5, 2, false, "->", style)
	if extent != 4 {
		t.Errorf("extent = %v, want 4", extent)
	}
	c, ok := s.(shape.Curve)
	if !ok {
		t.Fatalf("shape = %T, want Curve", s)
	}
	if c.CX != 3 || c.CY != 6 {
		t.Errorf("control = (%v, %v), want (3, 6)", c.CX, c.CY)
	}
	if c.ArrowStyle != "->" {
		t.Errorf("ArrowStyle = %q", c.ArrowStyle)
	}
	if c.Style.Edge != "red" {
		t.Errorf("Edge = %q, want red", c.Style.Edge)
	}

	extent, s = Curve(1, 5, 2, true, "-", style)
	if extent != -4 {
		t.Errorf("valley extent = %v, want -4", extent)
	}
	if got := s.(shape.Curve).CY; got != -2 {
		t.Errorf("valley control y = %v, want -2", got)
	}
}

func TestConnection(t *testing.T) {
	extent, s := Connection(0, 0, 3, 4, "<->", DefaultLineStyle("black"))
	if extent != 0 {
		t.Errorf("extent = %v, want 0", extent)
	}
	c := s.(shape.Connection)
	if c.X2 != 3 || c.Y2 != 4 {
		t.Errorf("end = (%v, %v), want (3, 4)", c.X2, c.Y2)
	}
	if c.Style.Fill != "none" {
		t.Errorf("Fill = %q, want none", c.Style.Fill)
	}
}

func TestSemicircleBracket(t *testing.T) {
	extent, shapes := SemicircleBracket(0, 2, 8, 10, 1, false, DefaultLineStyle("black"))

	if len(shapes) != 3 {
		t.Fatalf("got %d shapes, want tick, arc, tick", len(shapes))
	}
	t1, ok1 := shapes[0].(shape.BracketTick)
	arc, ok2 := shapes[1].(shape.Arc)
	t2, ok3 := shapes[2].(shape.BracketTick)
	if !ok1 || !ok2 || !ok3 {
		t.Fatalf("shape types = %T, %T, %T", shapes[0], shapes[1], shapes[2])
	}

	// Anchors at the range midpoints (0+8)/2 and (2+10)/2.
	if t1.X != 4 || t2.X != 6 {
		t.Errorf("tick positions = (%v, %v), want (4, 6)", t1.X, t2.X)
	}
	// Ticks rise one unit off the baseline; the arc sits on the tips.
	if t1.Y0 != 1 || t1.Y1 != 2 {
		t.Errorf("tick span = (%v, %v), want (1, 2)", t1.Y0, t1.Y1)
	}
	if arc.CY != 2 {
		t.Errorf("arc baseline = %v, want 2", arc.CY)
	}
	if extent != 2 {
		t.Errorf("extent = %v, want 2", extent)
	}
}

func TestCurveBracketValley(t *testing.T) {
	extent, shapes := CurveBracket(0, 2, 8, 10, 0, true, "->", DefaultLineStyle("black"))

	if len(shapes) != 3 {
		t.Fatalf("got %d shapes", len(shapes))
	}
	c := shapes[1].(shape.Curve)
	if c.Y1 != -1 || c.Y2 != -1 {
		t.Errorf("curve baseline = (%v, %v), want (-1, -1)", c.Y1, c.Y2)
	}
	if extent != -2 {
		t.Errorf("extent = %v, want -2", extent)
	}
}

func TestConnectionBracket(t *testing.T) {
	extent, shapes := ConnectionBracket(0, 2, 8, 10, 0, 4, "-", DefaultLineStyle("black"))

	if extent != 0 {
		t.Errorf("extent = %v, want 0", extent)
	}
	conn := shapes[1].(shape.Connection)
	if conn.Y1 != 1 || conn.Y2 != 5 {
		t.Errorf("connection y = (%v, %v), want (1, 5)", conn.Y1, conn.Y2)
	}
	t2 := shapes[2].(shape.BracketTick)
	if t2.Y0 != 4 || t2.Y1 != 5 {
		t.Errorf("second tick span = (%v, %v), want (4, 5)", t2.Y0, t2.Y1)
	}
}

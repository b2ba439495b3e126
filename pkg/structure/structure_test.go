package structure

import (
	"math"
	"testing"

	"github.com/seqviz/seqviz/pkg/colorscheme"
	"github.com/seqviz/seqviz/pkg/errors"
	"github.com/seqviz/seqviz/pkg/shape"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		label byte
		want  Class
	}{
		{'H', Helix},
		{'G', Helix},
		{'I', Helix},
		{'B', Sheet},
		{'E', Sheet},
		{'T', Turn},
		{'S', Turn},
		{'C', Coil},
		{'-', Coil},
		{' ', Coil},
		{'Z', Coil},
	}
	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			if got := Normalize(tt.label); got != tt.want {
				t.Errorf("Normalize(%q) = %c, want %c", tt.label, got, tt.want)
			}
		})
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name   string
		labels string
		want   []Block
	}{
		{
			name:   "three classes",
			labels: "HHHTTTEEE",
			want: []Block{
				{Helix, 0, 2},
				{Turn, 3, 5},
				{Sheet, 6, 8},
			},
		},
		{
			name:   "synonyms fold into one run",
			labels: "HGIH",
			want:   []Block{{Helix, 0, 3}},
		},
		{
			name:   "single label",
			labels: "E",
			want:   []Block{{Sheet, 0, 0}},
		},
		{
			name:   "unassigned labels become coil",
			labels: "H--C",
			want: []Block{
				{Helix, 0, 0},
				{Coil, 1, 3},
			},
		},
		{
			// The closing run keeps the raw label, not the normalized
			// class, so a trailing 3-10 helix run stays 'G'.
			name:   "trailing synonym keeps raw label",
			labels: "EEHG",
			want: []Block{
				{Sheet, 0, 1},
				{Class('G'), 2, 3},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Segment(tt.labels)
			if err != nil {
				t.Fatalf("Segment(%q): %v", tt.labels, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Segment(%q) = %v, want %v", tt.labels, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("block %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSegmentEmpty(t *testing.T) {
	_, err := Segment("")
	if errors.GetCode(err) != errors.ErrCodeInvalidLabels {
		t.Fatalf("expected %s, got %v", errors.ErrCodeInvalidLabels, err)
	}
}

func TestNewRejectsBadColor(t *testing.T) {
	_, err := New("HHH", Config{Colors: colorscheme.Structure{
		Helix: "not-a-color",
		Sheet: "purple",
		Turn:  "gray",
		Coil:  "gray",
	}})
	if errors.GetCode(err) != errors.ErrCodeInvalidScheme {
		t.Fatalf("expected %s, got %v", errors.ErrCodeInvalidScheme, err)
	}
}

func TestHelixWave(t *testing.T) {
	c, err := New("HHH", Config{})
	if err != nil {
		t.Fatal(err)
	}
	shapes := c.Build()

	// Two half-turn arcs per residue.
	if len(shapes) != 6 {
		t.Fatalf("got %d shapes, want 6", len(shapes))
	}
	for i, s := range shapes {
		arc, ok := s.(shape.Arc)
		if !ok {
			t.Fatalf("shape %d is %T, want Arc", i, s)
		}
		wantCX := float64(i)*0.5 + 0.25
		if math.Abs(arc.CX-wantCX) > 1e-9 {
			t.Errorf("arc %d CX = %v, want %v", i, arc.CX, wantCX)
		}
		if arc.W != 0.5 || arc.H != DefaultWidth {
			t.Errorf("arc %d size = %v x %v, want 0.5 x %v", i, arc.W, arc.H, DefaultWidth)
		}
		wantTheta1 := float64(i)*180 - 1
		wantTheta2 := float64(i)*180 + 181
		if arc.Theta1 != wantTheta1 || arc.Theta2 != wantTheta2 {
			t.Errorf("arc %d angles = [%v, %v], want [%v, %v]",
				i, arc.Theta1, arc.Theta2, wantTheta1, wantTheta2)
		}
	}
}

func TestHelixCylinder(t *testing.T) {
	c, err := New("HHHH", Config{Helix: HelixCylinder, X: 10, Y: 5})
	if err != nil {
		t.Fatal(err)
	}
	shapes := c.Build()
	if len(shapes) != 3 {
		t.Fatalf("got %d shapes, want 3", len(shapes))
	}

	head, ok := shapes[0].(shape.Ellipse)
	if !ok {
		t.Fatalf("shape 0 is %T, want Ellipse", shapes[0])
	}
	body, ok := shapes[1].(shape.Rect)
	if !ok {
		t.Fatalf("shape 1 is %T, want Rect", shapes[1])
	}
	tail, ok := shapes[2].(shape.Ellipse)
	if !ok {
		t.Fatalf("shape 2 is %T, want Ellipse", shapes[2])
	}

	if head.CX != 10.5 || tail.CX != 13.5 {
		t.Errorf("cap centers = %v, %v, want 10.5, 13.5", head.CX, tail.CX)
	}
	if head.W != 1 || head.H != 2-0.001 {
		t.Errorf("cap size = %v x %v, want 1 x 1.999", head.W, head.H)
	}
	if body.X != 10.5 || body.W != 3 || body.H != 2 || body.Y != 5 {
		t.Errorf("body = %+v, want X=10.5 W=3 H=2 Y=5", body)
	}
}

func TestSheetArrow(t *testing.T) {
	c, err := New("EEEE", Config{})
	if err != nil {
		t.Fatal(err)
	}
	shapes := c.Build()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	arrow, ok := shapes[0].(shape.FancyArrow)
	if !ok {
		t.Fatalf("shape is %T, want FancyArrow", shapes[0])
	}
	if arrow.DX != 4 || arrow.HeadLength != 1 {
		t.Errorf("arrow DX = %v, head = %v, want 4, 1", arrow.DX, arrow.HeadLength)
	}
	if arrow.HeadWidth != DefaultWidth-0.001 {
		t.Errorf("head width = %v, want %v", arrow.HeadWidth, DefaultWidth-0.001)
	}
	if want := DefaultWidth * 2 / 3; math.Abs(arrow.TailWidth-want) > 1e-9 {
		t.Errorf("tail width = %v, want %v", arrow.TailWidth, want)
	}
	if arrow.Y != DefaultWidth/2 {
		t.Errorf("arrow Y = %v, want %v", arrow.Y, DefaultWidth/2)
	}
}

func TestTurnArc(t *testing.T) {
	c, err := New("TT", Config{})
	if err != nil {
		t.Fatal(err)
	}
	shapes := c.Build()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	arc, ok := shapes[0].(shape.Arc)
	if !ok {
		t.Fatalf("shape is %T, want Arc", shapes[0])
	}
	if arc.CX != 1 || arc.W != 2 || arc.H != DefaultWidth {
		t.Errorf("arc = %+v, want CX=1 W=2 H=%v", arc, DefaultWidth)
	}
	if arc.Theta1 != 0 || arc.Theta2 != 180 {
		t.Errorf("arc angles = [%v, %v], want [0, 180]", arc.Theta1, arc.Theta2)
	}
}

func TestCoilTrimming(t *testing.T) {
	tests := []struct {
		name   string
		labels string
		wantX1 float64
		wantX2 float64
	}{
		{
			// No neighbors: the connector spans the block exactly.
			name:   "isolated",
			labels: "CCC",
			wantX1: 0,
			wantX2: 3,
		},
		{
			// Helix before and sheet after: a sliver toward the helix,
			// half a residue into the arrow tail.
			name:   "between helix and sheet",
			labels: "HCCE",
			wantX1: 1 - 4.0/72,
			wantX2: 3.5,
		},
		{
			name:   "between turns",
			labels: "TCT",
			wantX1: 1 - 4.0/72,
			wantX2: 2 + 4.0/72,
		},
		{
			name:   "sheet before only",
			labels: "ECC",
			wantX1: 0.5,
			wantX2: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.labels, Config{})
			if err != nil {
				t.Fatal(err)
			}
			var conn *shape.Connection
			for _, s := range c.Build() {
				if cn, ok := s.(shape.Connection); ok {
					conn = &cn
					break
				}
			}
			if conn == nil {
				t.Fatal("no coil connector emitted")
			}
			if math.Abs(conn.X1-tt.wantX1) > 1e-9 || math.Abs(conn.X2-tt.wantX2) > 1e-9 {
				t.Errorf("coil spans [%v, %v], want [%v, %v]", conn.X1, conn.X2, tt.wantX1, tt.wantX2)
			}
			if conn.Style.EdgeWidth != DefaultWidth*0.8 {
				t.Errorf("coil width = %v, want %v", conn.Style.EdgeWidth, DefaultWidth*0.8)
			}
		})
	}
}

func TestBuildSkipsUndrawnClass(t *testing.T) {
	// A trailing run closed with a raw synonym label draws nothing.
	c, err := New("EEG", Config{})
	if err != nil {
		t.Fatal(err)
	}
	shapes := c.Build()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want only the sheet arrow", len(shapes))
	}
	if _, ok := shapes[0].(shape.FancyArrow); !ok {
		t.Fatalf("shape is %T, want FancyArrow", shapes[0])
	}
}

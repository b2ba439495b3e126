package cli

import (
	"strings"
	"testing"

	"github.com/seqviz/seqviz/pkg/align"
	"github.com/seqviz/seqviz/pkg/logo"
	"github.com/seqviz/seqviz/pkg/shape"
)

func testLogoAlignment(t *testing.T) *align.Alignment {
	t.Helper()
	entries, err := align.ReadFASTA(strings.NewReader(">s1\nACDE\n>s2\nACDE\n"))
	if err != nil {
		t.Fatal(err)
	}
	a, err := align.New(entries)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestBuildArcLinks(t *testing.T) {
	a := testLogoAlignment(t)
	cfg := logo.Config{Spacing: 1}
	l, err := logo.NewSequenceLogo(a, nil, cfg)
	if err != nil {
		t.Fatal(err)
	}

	shapes, err := buildArcLinks(l, cfg, "0:3")
	if err != nil {
		t.Fatalf("buildArcLinks failed: %v", err)
	}
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	arc, ok := shapes[0].(shape.Arc)
	if !ok {
		t.Fatalf("shape = %T, want Arc", shapes[0])
	}
	if arc.CX != 1.5 || arc.CY != 1 {
		t.Errorf("arc center = (%v, %v), want (1.5, 1)", arc.CX, arc.CY)
	}
	if arc.W != 3 {
		t.Errorf("arc width = %v, want 3", arc.W)
	}
}

func TestBuildArcLinksUnknownPosition(t *testing.T) {
	a := testLogoAlignment(t)
	cfg := logo.Config{Spacing: 1}
	l, err := logo.NewSequenceLogo(a, []int{0, 1}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := buildArcLinks(l, cfg, "0:3"); err == nil {
		t.Error("expected error for arc to an unrendered position")
	}
}

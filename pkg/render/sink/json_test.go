package sink

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/seqviz/seqviz/pkg/shape"
)

func TestRenderJSON(t *testing.T) {
	stamp := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	data, err := RenderJSON(testScene(),
		WithJSONGenerator("logo"),
		WithJSONTicks(Ticks([]int{0, 1}, []string{"0", "1"})),
		withJSONStamp("doc-1", stamp),
	)
	if err != nil {
		t.Fatal(err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if doc.ID != "doc-1" {
		t.Errorf("id = %q, want doc-1", doc.ID)
	}
	if doc.Generator != "logo" {
		t.Errorf("generator = %q, want logo", doc.Generator)
	}
	if doc.CreatedAt != "2026-03-14T12:00:00Z" {
		t.Errorf("created_at = %q", doc.CreatedAt)
	}
	if len(doc.Shapes) != 3 {
		t.Fatalf("got %d shapes, want 3", len(doc.Shapes))
	}
	if doc.Shapes[0].Type != "rect" || doc.Shapes[1].Type != "ellipse" || doc.Shapes[2].Type != "connection" {
		t.Errorf("shape types = %s, %s, %s", doc.Shapes[0].Type, doc.Shapes[1].Type, doc.Shapes[2].Type)
	}
	if len(doc.Ticks) != 2 {
		t.Errorf("got %d ticks, want 2", len(doc.Ticks))
	}
	if doc.Bounds == nil || doc.Bounds.X1 != 2 {
		t.Errorf("bounds = %+v", doc.Bounds)
	}
}

func TestRenderJSONFreshIDs(t *testing.T) {
	a, err := RenderJSON(testScene())
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderJSON(testScene())
	if err != nil {
		t.Fatal(err)
	}

	var docA, docB jsonDocument
	if err := json.Unmarshal(a, &docA); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(b, &docB); err != nil {
		t.Fatal(err)
	}
	if docA.ID == "" || docA.ID == docB.ID {
		t.Errorf("document ids not unique: %q, %q", docA.ID, docB.ID)
	}
}

func TestRenderJSONOutlinePath(t *testing.T) {
	var p shape.Path
	p.MoveTo(0, 0)
	p.QuadTo(0.5, 1, 1, 0)
	p.Close()

	data, err := RenderJSON([]shape.Shape{shape.Outline{Path: p, Style: shape.Style{Fill: "green"}}})
	if err != nil {
		t.Fatal(err)
	}
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	if len(doc.Shapes) != 1 || doc.Shapes[0].Type != "outline" {
		t.Fatalf("unexpected shapes: %+v", doc.Shapes)
	}
	segs := doc.Shapes[0].Path
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	if segs[0].Op != "moveto" || segs[1].Op != "quadto" || segs[2].Op != "close" {
		t.Errorf("ops = %s, %s, %s", segs[0].Op, segs[1].Op, segs[2].Op)
	}
	if len(segs[1].Points) != 2 {
		t.Errorf("quadto has %d points, want 2", len(segs[1].Points))
	}
}

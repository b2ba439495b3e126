package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seqviz/seqviz/pkg/errors"
)

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.ttf")
	if !errors.Is(err, errors.ErrCodeFontNotFound) {
		t.Errorf("Load error = %v, want FONT_NOT_FOUND", err)
	}
}

func TestLoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeFontNotFound) {
		t.Errorf("Load error = %v, want FONT_NOT_FOUND", err)
	}
}

func TestFindNoCandidates(t *testing.T) {
	_, err := Find("definitely-not-a-font-name-xyz")
	if !errors.Is(err, errors.ErrCodeFontNotFound) {
		t.Errorf("Find error = %v, want FONT_NOT_FOUND", err)
	}
}

func TestDefaultOutline(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Skipf("no system font available: %v", err)
	}

	o, err := p.Outline('E')
	if err != nil {
		t.Fatalf("Outline(E) failed: %v", err)
	}
	if o.W <= 0 || o.H <= 0 {
		t.Errorf("degenerate outline: W=%v H=%v", o.W, o.H)
	}
	if len(o.Path.Segments) == 0 {
		t.Error("outline has no path segments")
	}

	// Second lookup hits the cache and must agree.
	again, err := p.Outline('E')
	if err != nil {
		t.Fatalf("cached Outline(E) failed: %v", err)
	}
	if again.W != o.W || len(again.Path.Segments) != len(o.Path.Segments) {
		t.Error("cached outline differs from first lookup")
	}
}

package pairgraph

import (
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	couplings := []Coupling{
		{First: 5, Second: 9, Score: 0.8},
		{First: 9, Second: 12, Score: 0.4},
	}
	dot := ToDOT(couplings, Options{})

	for _, want := range []string{
		"graph G {",
		`5 [label="5"];`,
		`9 [label="9"];`,
		`12 [label="12"];`,
		"5 -- 9 [penwidth=3.00];",
		"9 -- 12 [penwidth=1.75];",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT([]Coupling{{First: 1, Second: 2}, {First: 2, Second: 3}}, Options{Detailed: true})
	if !strings.Contains(dot, `2 [label="2\ndeg: 2"];`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTUnscored(t *testing.T) {
	dot := ToDOT([]Coupling{{First: 1, Second: 2}}, Options{})
	if !strings.Contains(dot, "1 -- 2;") {
		t.Errorf("unscored edge should have no penwidth:\n%s", dot)
	}
	if strings.Contains(dot, "penwidth") {
		t.Errorf("unexpected penwidth in:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="134pt" height="188pt" viewBox="0.00 0.00 133.78 188.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 133.78 188.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="134" height="188"`) {
		t.Errorf("pixel dimensions missing: %s", out)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	in := []byte("<svg><g/></svg>")
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("input without viewBox should pass through, got %s", got)
	}
}

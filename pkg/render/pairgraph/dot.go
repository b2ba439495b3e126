// Package pairgraph renders co-evolving position pairs as an undirected
// coupling graph: one node per alignment position, one edge per pair,
// laid out by Graphviz.
package pairgraph

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/seqviz/seqviz/pkg/errors"
	"github.com/seqviz/seqviz/pkg/render"
)

// Coupling is one scored position pair. Score is optional; zero scores
// render with the default edge weight.
type Coupling struct {
	First  int
	Second int
	Score  float64
}

// Options configures coupling-graph rendering.
type Options struct {
	// Detailed includes each node's coupling degree in its label.
	Detailed bool
}

// ToDOT converts the couplings to Graphviz DOT. Nodes appear in ascending
// position order; edge pen width scales with the coupling score relative
// to the maximum, so the strongest pair always draws at full width.
func ToDOT(couplings []Coupling, opts Options) string {
	positions := make(map[int]int)
	maxScore := 0.0
	for _, c := range couplings {
		positions[c.First]++
		positions[c.Second]++
		maxScore = max(maxScore, c.Score)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("  edge [color=\"#4682B4\"];\n")
	buf.WriteString("\n")

	for _, p := range slices.Sorted(maps.Keys(positions)) {
		label := strconv.Itoa(p)
		if opts.Detailed {
			label = fmt.Sprintf("%d\ndeg: %d", p, positions[p])
		}
		fmt.Fprintf(&buf, "  %d [label=%q];\n", p, label)
	}

	buf.WriteString("\n")
	for _, c := range couplings {
		if c.Score > 0 && maxScore > 0 {
			fmt.Fprintf(&buf, "  %d -- %d [penwidth=%.2f];\n", c.First, c.Second, 0.5+2.5*c.Score/maxScore)
		} else {
			fmt.Fprintf(&buf, "  %d -- %d;\n", c.First, c.Second)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz. The returned bytes
// are ready for display or further conversion with [render.ToPDF].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render coupling graph")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz svg element to a zero-origin
// viewBox with explicit pixel dimensions, which browsers and rsvg size
// consistently.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

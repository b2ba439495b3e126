// Package render holds format conversion helpers shared by the sinks.
//
// The sinks under render/sink consume shape lists produced by the layout
// engines (logo, structure, link) and serialize them to SVG, PNG, PDF, or
// JSON. Package render itself only knows how to convert finished SVG
// bytes to other formats.
package render

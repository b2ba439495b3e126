// Package colorscheme maps category labels (amino acids, secondary
// structure classes) to colors. Schemes are immutable once constructed and
// are injected into the layout engines rather than imported by them, so
// components stay testable in isolation.
//
// Lookups fail loudly: there is no fallback color. Callers must ensure a
// scheme covers every symbol that can appear, including the configured gap
// character.
package colorscheme

import (
	"maps"
	"strings"

	"github.com/seqviz/seqviz/pkg/errors"
)

// Base palette shared by the builtin schemes.
const (
	lightGreen = "#94CD8C"
	green      = "#B7D885"
	darkGreen  = "#6FB344"
	blue       = "#7FBBE6"
	purple     = "#999FD0"
	darkBlue   = "#5569B1"
	orange     = "#F9CC89"
	pink       = "#E7BAB9"
	red        = "#ED5961"
	black      = "black"
	lightBlue  = "lightsteelblue"
	gray       = "#747274"
)

// Scheme maps a symbol to a color string (hex or named).
type Scheme struct {
	name    string
	symbols map[string]string
}

// New builds a scheme from a symbol-to-color map. The map is copied, so
// later mutation of m does not affect the scheme.
func New(name string, m map[string]string) Scheme {
	return Scheme{name: name, symbols: maps.Clone(m)}
}

// Name returns the scheme's display name.
func (s Scheme) Name() string { return s.name }

// Len returns the number of symbols the scheme covers.
func (s Scheme) Len() int { return len(s.symbols) }

// Color returns the color for symbol. It returns an UNKNOWN_SYMBOL error
// when the scheme has no entry; there is deliberately no default color.
func (s Scheme) Color(symbol string) (string, error) {
	c, ok := s.symbols[symbol]
	if !ok {
		return "", errors.New(errors.ErrCodeUnknownSymbol,
			"scheme %q has no color for symbol %q", s.name, symbol)
	}
	return c, nil
}

// Has reports whether the scheme covers symbol.
func (s Scheme) Has(symbol string) bool {
	_, ok := s.symbols[symbol]
	return ok
}

// aminoAcidGroups assigns one color per physicochemical group; individual
// residues are expanded from the comma-separated group keys.
var aminoAcidGroups = map[string]string{
	"A, G":       lightGreen,
	"C":          green,
	"D, E, N, Q": darkGreen,
	"I, L, M, V": blue,
	"F, W, Y":    purple,
	"H":          darkBlue,
	"K, R":       orange,
	"P":          pink,
	"S, T":       red,
	"X":          black,
}

// AminoAcid returns the builtin amino-acid scheme. 'X' (the default gap
// substitution character) maps to black.
func AminoAcid() Scheme {
	m := make(map[string]string)
	for group, color := range aminoAcidGroups {
		for _, sym := range strings.Split(group, ", ") {
			m[sym] = color
		}
	}
	return Scheme{name: "amino-acid", symbols: m}
}

// Structure holds the fill colors for secondary-structure cartoons.
type Structure struct {
	Helix string
	Sheet string
	Turn  string
	Coil  string
}

// StructureDefault returns the builtin secondary-structure colors.
func StructureDefault() Structure {
	return Structure{
		Helix: lightBlue,
		Sheet: purple,
		Turn:  gray,
		Coil:  gray,
	}
}

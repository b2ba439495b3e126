package colorscheme

import (
	"fmt"
	"strings"

	"github.com/seqviz/seqviz/pkg/errors"
)

// namedColors covers the CSS color names used by the builtin schemes plus
// the handful that commonly appear in custom scheme files. Anything else
// must be written as hex.
var namedColors = map[string][3]uint8{
	"black":          {0x00, 0x00, 0x00},
	"white":          {0xFF, 0xFF, 0xFF},
	"gray":           {0x80, 0x80, 0x80},
	"grey":           {0x80, 0x80, 0x80},
	"red":            {0xFF, 0x00, 0x00},
	"green":          {0x00, 0x80, 0x00},
	"blue":           {0x00, 0x00, 0xFF},
	"orange":         {0xFF, 0xA5, 0x00},
	"purple":         {0x80, 0x00, 0x80},
	"pink":           {0xFF, 0xC0, 0xCB},
	"lightsteelblue": {0xB0, 0xC4, 0xDE},
	"steelblue":      {0x46, 0x82, 0xB4},
	"none":           {0x00, 0x00, 0x00},
}

// ParseColor resolves a color string to RGB components in [0, 1].
// Accepted forms: "#RRGGBB", "#RGB", and the named colors above.
func ParseColor(s string) (r, g, b float64, err error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return float64(c[0]) / 255, float64(c[1]) / 255, float64(c[2]) / 255, nil
	}

	if strings.HasPrefix(name, "#") {
		hex := name[1:]
		switch len(hex) {
		case 3:
			var ri, gi, bi uint8
			if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &ri, &gi, &bi); err == nil {
				return float64(ri*17) / 255, float64(gi*17) / 255, float64(bi*17) / 255, nil
			}
		case 6:
			var ri, gi, bi uint8
			if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &ri, &gi, &bi); err == nil {
				return float64(ri) / 255, float64(gi) / 255, float64(bi) / 255, nil
			}
		}
	}

	return 0, 0, 0, errors.New(errors.ErrCodeInvalidColor, "unparseable color %q", s)
}

// IsNone reports whether a color string means "do not paint".
func IsNone(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	return t == "" || t == "none"
}

// ValidColor reports whether s parses as a color.
func ValidColor(s string) bool {
	_, _, _, err := ParseColor(s)
	return err == nil
}

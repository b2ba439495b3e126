package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/seqviz/seqviz/pkg/logo"
	"github.com/seqviz/seqviz/pkg/render/pairgraph"
)

// parsePositions parses a positions flag like "2,5,8-11" into a list of
// column indices in written order. Ranges are inclusive. An empty string
// returns nil, which the logo engines treat as "all columns".
func parsePositions(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}

	var positions []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if from, to, ok := strings.Cut(part, "-"); ok {
			lo, err := strconv.Atoi(strings.TrimSpace(from))
			if err != nil {
				return nil, fmt.Errorf("invalid position range %q", part)
			}
			hi, err := strconv.Atoi(strings.TrimSpace(to))
			if err != nil {
				return nil, fmt.Errorf("invalid position range %q", part)
			}
			if hi < lo {
				return nil, fmt.Errorf("descending position range %q", part)
			}
			for p := lo; p <= hi; p++ {
				positions = append(positions, p)
			}
			continue
		}

		p, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid position %q", part)
		}
		positions = append(positions, p)
	}
	return positions, nil
}

// parsePairs parses a pairs flag like "3:17,5:9" into position pairs.
func parsePairs(s string) ([]logo.PositionPair, error) {
	if s == "" {
		return nil, nil
	}

	var pairs []logo.PositionPair
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		first, second, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid pair %q (want first:second)", part)
		}
		a, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			return nil, fmt.Errorf("invalid pair %q", part)
		}
		b, err := strconv.Atoi(strings.TrimSpace(second))
		if err != nil {
			return nil, fmt.Errorf("invalid pair %q", part)
		}
		pairs = append(pairs, logo.PositionPair{First: a, Second: b})
	}
	return pairs, nil
}

// parseCouplings parses a couplings flag like "3:17:0.8,5:9" into scored
// pairs. The score component is optional.
func parseCouplings(s string) ([]pairgraph.Coupling, error) {
	if s == "" {
		return nil, nil
	}

	var couplings []pairgraph.Coupling
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 2 && len(fields) != 3 {
			return nil, fmt.Errorf("invalid coupling %q (want first:second[:score])", part)
		}
		a, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid coupling %q", part)
		}
		b, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid coupling %q", part)
		}
		c := pairgraph.Coupling{First: a, Second: b}
		if len(fields) == 3 {
			score, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
			if err != nil || score < 0 {
				return nil, fmt.Errorf("invalid coupling score in %q", part)
			}
			c.Score = score
		}
		couplings = append(couplings, c)
	}
	return couplings, nil
}

// parseKeys splits a comma-separated key list, returning nil for "all".
func parseKeys(s string) []string {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "json": true, "pdf": true, "png": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'json', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, the input path loses its extension; if output ends
// in a known format extension, that extension is stripped. Used when one
// run emits several files.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

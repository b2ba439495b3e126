package colorscheme

import (
	"github.com/BurntSushi/toml"

	"github.com/seqviz/seqviz/pkg/errors"
)

// schemeFile is the on-disk TOML representation of a custom scheme:
//
//	name = "hydrophobicity"
//
//	[symbols]
//	A = "#94CD8C"
//	X = "black"
type schemeFile struct {
	Name    string            `toml:"name"`
	Symbols map[string]string `toml:"symbols"`
}

// LoadTOML reads a custom scheme from a TOML file. Every color value is
// validated up front so later lookups can only fail on missing symbols.
func LoadTOML(path string) (Scheme, error) {
	var f schemeFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return Scheme{}, errors.Wrap(errors.ErrCodeInvalidScheme, err, "read scheme %s", path)
	}
	if len(f.Symbols) == 0 {
		return Scheme{}, errors.New(errors.ErrCodeInvalidScheme, "scheme %s defines no symbols", path)
	}
	if f.Name == "" {
		f.Name = path
	}
	for sym, color := range f.Symbols {
		if !ValidColor(color) {
			return Scheme{}, errors.New(errors.ErrCodeInvalidScheme,
				"scheme %s: symbol %q has unparseable color %q", path, sym, color)
		}
	}
	return New(f.Name, f.Symbols), nil
}

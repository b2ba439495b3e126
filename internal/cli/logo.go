package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seqviz/seqviz/pkg/align"
	"github.com/seqviz/seqviz/pkg/colorscheme"
	"github.com/seqviz/seqviz/pkg/fonts"
	"github.com/seqviz/seqviz/pkg/glyph"
	"github.com/seqviz/seqviz/pkg/link"
	"github.com/seqviz/seqviz/pkg/logo"
	"github.com/seqviz/seqviz/pkg/observability"
	"github.com/seqviz/seqviz/pkg/render/sink"
	"github.com/seqviz/seqviz/pkg/shape"
)

// logoOpts holds the command-line flags for the logo command.
type logoOpts struct {
	output      string   // output file path or base path
	formats     []string // output formats: svg, png, pdf, json
	positions   string   // column subset, e.g. "2,5,8-11"
	pairs       string   // co-evolving pairs, e.g. "3:17,5:9"
	arcs        string   // position pairs joined by arcs above the logo
	keys        string   // sequence subset, comma-separated
	interactive bool     // pick sequences in a TUI
	scheme      string   // TOML color scheme path
	gapChar     string   // symbol substituted for alignment gaps
	spacing     int      // horizontal distance between columns
	glyphWidth  float64  // glyph box width
	font        string   // TrueType font path
	scale       float64  // device pixels per data unit
}

// logoCommand creates the logo command for rendering sequence and
// co-evolution logos from an aligned FASTA file.
func (c *CLI) logoCommand() *cobra.Command {
	var formatsStr string
	opts := logoOpts{
		spacing:    logo.DefaultSpacing,
		glyphWidth: logo.DefaultGlyphWidth,
		scale:      sink.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "logo [fasta]",
		Short: "Render a sequence logo from an alignment",
		Long: `Render a frequency logo from an aligned FASTA file. Each column stacks
the observed symbols with heights proportional to their frequency. With
--pairs, renders a co-evolution logo over the given position pairs
instead, stacking two-character symbols side by side.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runLogo(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.positions, "positions", "p", "", "column subset, e.g. \"2,5,8-11\" (default all)")
	cmd.Flags().StringVar(&opts.pairs, "pairs", "", "co-evolving position pairs, e.g. \"3:17,5:9\"")
	cmd.Flags().StringVar(&opts.arcs, "arcs", "", "position pairs to join with arcs above the logo, e.g. \"3:17\"")
	cmd.Flags().StringVarP(&opts.keys, "keys", "k", "", "sequence subset, comma-separated (default all)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick sequences interactively")
	cmd.Flags().StringVar(&opts.scheme, "scheme", "", "TOML color scheme file (default builtin amino acid)")
	cmd.Flags().StringVar(&opts.gapChar, "gap-char", "X", "symbol substituted for alignment gaps")
	cmd.Flags().IntVar(&opts.spacing, "spacing", opts.spacing, "horizontal distance between columns")
	cmd.Flags().Float64Var(&opts.glyphWidth, "glyph-width", opts.glyphWidth, "glyph box width")
	cmd.Flags().StringVar(&opts.font, "font", "", "TrueType font file (default system DejaVu Sans)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "device pixels per data unit")

	return cmd
}

func (c *CLI) runLogo(ctx context.Context, input string, opts *logoOpts) error {
	ctx = withLogger(ctx, c.Logger)
	prog := newProgress(c.Logger)

	a, err := align.LoadFASTA(input)
	if err != nil {
		return err
	}
	c.Logger.Infof("Loaded alignment: %d sequences, %d columns", a.NumSeqs(), a.Length())

	cfg, err := buildLogoConfig(a, opts)
	if err != nil {
		return err
	}
	if cfg.Keys != nil && len(cfg.Keys) == 0 {
		printWarning("no sequences selected")
		return nil
	}

	provider, err := loadFont(opts.font)
	if err != nil {
		return err
	}

	shapes, ticks, kind, columns, err := buildLogoScene(ctx, a, cfg, opts, provider)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %s layout: %d shapes", kind, len(shapes)))

	base := basePath(opts.output, input)
	if err := writeScene(ctx, shapes, ticks, opts.formats, base, kind, opts.scale); err != nil {
		return err
	}
	printSuccess("Rendered %s", input)
	printStats(columns, "columns", len(shapes), false)
	return nil
}

// buildLogoConfig resolves flags into an engine config, running the
// interactive picker when requested.
func buildLogoConfig(a *align.Alignment, opts *logoOpts) (logo.Config, error) {
	cfg := logo.Config{
		Keys:       parseKeys(opts.keys),
		Spacing:    opts.spacing,
		GlyphWidth: opts.glyphWidth,
	}

	if opts.interactive {
		keys, err := pickKeys(a)
		if err != nil {
			return cfg, err
		}
		cfg.Keys = keys
		if keys == nil {
			cfg.Keys = []string{} // picker quit: caller renders nothing
		}
	}

	if opts.scheme != "" {
		scheme, err := colorscheme.LoadTOML(opts.scheme)
		if err != nil {
			return cfg, err
		}
		cfg.Scheme = scheme
	}

	if len(opts.gapChar) > 0 {
		cfg.GapChar = []rune(opts.gapChar)[0]
	}
	return cfg, nil
}

// buildLogoScene builds the shape list and axis ticks for either logo
// engine, reporting timing through the layout hooks. The int result is the
// number of layout columns (pairs count twice).
func buildLogoScene(ctx context.Context, a *align.Alignment, cfg logo.Config, opts *logoOpts, provider glyph.OutlineProvider) ([]shape.Shape, []sink.Tick, string, int, error) {
	hooks := observability.Layout()

	if opts.pairs != "" {
		pairs, err := parsePairs(opts.pairs)
		if err != nil {
			return nil, nil, "", 0, err
		}

		hooks.OnLayoutStart(ctx, "coevolution", len(pairs))
		start := time.Now()
		l, err := logo.NewCoevolutionLogo(a, pairs, cfg)
		if err != nil {
			hooks.OnLayoutComplete(ctx, "coevolution", 0, time.Since(start), err)
			return nil, nil, "", 0, err
		}
		shapes, err := l.Build(provider)
		hooks.OnLayoutComplete(ctx, "coevolution", len(shapes), time.Since(start), err)
		if err != nil {
			return nil, nil, "", 0, err
		}
		positions, labels := l.Ticks()
		return shapes, sink.Ticks(positions, labels), "coevolution", 2 * len(pairs), nil
	}

	positions, err := parsePositions(opts.positions)
	if err != nil {
		return nil, nil, "", 0, err
	}

	hooks.OnLayoutStart(ctx, "logo", len(positions))
	start := time.Now()
	l, err := logo.NewSequenceLogo(a, positions, cfg)
	if err != nil {
		hooks.OnLayoutComplete(ctx, "logo", 0, time.Since(start), err)
		return nil, nil, "", 0, err
	}
	shapes, err := l.Build(provider)
	hooks.OnLayoutComplete(ctx, "logo", len(shapes), time.Since(start), err)
	if err != nil {
		return nil, nil, "", 0, err
	}

	if opts.arcs != "" {
		arcShapes, err := buildArcLinks(l, cfg, opts.arcs)
		if err != nil {
			return nil, nil, "", 0, err
		}
		shapes = append(shapes, arcShapes...)
	}

	tickPositions, labels := l.Ticks()
	return shapes, sink.Ticks(tickPositions, labels), "logo", len(l.Positions()), nil
}

// buildArcLinks joins pairs of rendered columns with semicircle links above
// the logo. Both positions of each pair must be part of the layout.
func buildArcLinks(l *logo.SequenceLogo, cfg logo.Config, spec string) ([]shape.Shape, error) {
	pairs, err := parsePairs(spec)
	if err != nil {
		return nil, err
	}

	columns := make(map[int]int, len(l.Positions()))
	for i, p := range l.Positions() {
		columns[p] = i
	}

	style := link.DefaultLineStyle("black")
	var shapes []shape.Shape
	for _, pr := range pairs {
		i, ok := columns[pr.First]
		j, ok2 := columns[pr.Second]
		if !ok || !ok2 {
			return nil, fmt.Errorf("arc pair %d:%d is not among the rendered positions", pr.First, pr.Second)
		}
		_, arc := link.Semicircle(float64(cfg.Spacing*i), float64(cfg.Spacing*j), 1, false, style)
		if arc != nil {
			shapes = append(shapes, arc)
		}
	}
	return shapes, nil
}

// loadFont loads the glyph outline provider, showing a spinner because
// system font discovery can be slow on first run.
func loadFont(path string) (*fonts.Provider, error) {
	spin := newSpinner("loading font")
	spin.Start()

	var p *fonts.Provider
	var err error
	if path != "" {
		p, err = fonts.Load(path)
	} else {
		p, err = fonts.Default()
	}
	if err != nil {
		spin.StopWithError("font loading failed")
		return nil, err
	}
	spin.Stop()
	return p, nil
}

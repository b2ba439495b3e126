package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seqviz/seqviz/pkg/colorscheme"
	"github.com/seqviz/seqviz/pkg/observability"
	"github.com/seqviz/seqviz/pkg/render/sink"
	"github.com/seqviz/seqviz/pkg/structure"
)

// structureOpts holds the command-line flags for the structure command.
type structureOpts struct {
	output  string   // output file path or base path
	formats []string // output formats: svg, png, pdf, json
	labels  string   // inline label sequence, alternative to a file
	helix   string   // helix style: wave or cylinder
	width   float64  // cartoon width scale
	scale   float64  // device pixels per data unit
	helixC  string   // helix color override
	sheetC  string   // sheet color override
	turnC   string   // turn color override
	coilC   string   // coil color override
}

// structureCommand creates the structure command for rendering
// secondary-structure cartoons from DSSP label sequences.
func (c *CLI) structureCommand() *cobra.Command {
	var formatsStr string
	opts := structureOpts{
		helix: "wave",
		width: structure.DefaultWidth,
		scale: sink.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "structure [file]",
		Short: "Render a secondary-structure cartoon",
		Long: `Render a cartoon from a DSSP label sequence: helices as waves or
cylinders, sheets as arrows, turns as arcs, and coil as connecting
lines. Labels come from a file argument or the --labels flag.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if input == "" && opts.labels == "" {
				return fmt.Errorf("provide a label file or --labels")
			}
			return c.runStructure(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.labels, "labels", "l", "", "inline DSSP label sequence, e.g. \"HHHTTTEEE\"")
	cmd.Flags().StringVar(&opts.helix, "helix", opts.helix, "helix style: wave (default), cylinder")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "cartoon width scale")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "device pixels per data unit")
	cmd.Flags().StringVar(&opts.helixC, "helix-color", "", "helix color override")
	cmd.Flags().StringVar(&opts.sheetC, "sheet-color", "", "sheet color override")
	cmd.Flags().StringVar(&opts.turnC, "turn-color", "", "turn color override")
	cmd.Flags().StringVar(&opts.coilC, "coil-color", "", "coil color override")

	return cmd
}

func (c *CLI) runStructure(ctx context.Context, input string, opts *structureOpts) error {
	ctx = withLogger(ctx, c.Logger)
	prog := newProgress(c.Logger)

	labels := opts.labels
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		labels = strings.TrimSpace(string(data))
	}

	cfg, err := buildStructureConfig(opts)
	if err != nil {
		return err
	}

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, "structure", len(labels))
	start := time.Now()

	cartoon, err := structure.New(labels, cfg)
	if err != nil {
		hooks.OnLayoutComplete(ctx, "structure", 0, time.Since(start), err)
		return err
	}
	shapes := cartoon.Build()
	hooks.OnLayoutComplete(ctx, "structure", len(shapes), time.Since(start), nil)

	blocks := cartoon.Blocks()
	c.Logger.Infof("Segmented %d labels into %d blocks", len(labels), len(blocks))
	prog.done(fmt.Sprintf("Built structure layout: %d shapes", len(shapes)))

	base := opts.output
	if base == "" {
		if input != "" {
			base = basePath("", input)
		} else {
			base = "structure"
		}
	} else {
		base = basePath(base, "")
	}

	if err := writeScene(ctx, shapes, nil, opts.formats, base, "structure", opts.scale); err != nil {
		return err
	}
	printSuccess("Rendered structure cartoon")
	printStats(len(blocks), "blocks", len(shapes), false)
	return nil
}

// buildStructureConfig resolves flags into a cartoon config.
func buildStructureConfig(opts *structureOpts) (structure.Config, error) {
	cfg := structure.Config{Width: opts.width}

	switch opts.helix {
	case "wave", "":
		cfg.Helix = structure.HelixWave
	case "cylinder":
		cfg.Helix = structure.HelixCylinder
	default:
		return cfg, fmt.Errorf("invalid helix style: %s (must be 'wave' or 'cylinder')", opts.helix)
	}

	colors := colorscheme.StructureDefault()
	if opts.helixC != "" {
		colors.Helix = opts.helixC
	}
	if opts.sheetC != "" {
		colors.Sheet = opts.sheetC
	}
	if opts.turnC != "" {
		colors.Turn = opts.turnC
	}
	if opts.coilC != "" {
		colors.Coil = opts.coilC
	}
	cfg.Colors = colors

	return cfg, nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/seqviz/seqviz/pkg/observability"
	"github.com/seqviz/seqviz/pkg/render/pairgraph"
)

// pairsOpts holds the command-line flags for the pairs command.
type pairsOpts struct {
	output    string // output file path
	format    string // output format: svg, pdf, dot
	couplings string // scored pairs, e.g. "3:17:0.8,5:9"
	detailed  bool   // include coupling degree in node labels
}

// pairsCommand creates the pairs command for rendering coupling graphs of
// co-evolving positions via Graphviz.
func (c *CLI) pairsCommand() *cobra.Command {
	opts := pairsOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Render a coupling graph of co-evolving positions",
		Long: `Render co-evolving position pairs as an undirected graph: one node
per position, one edge per pair. Edge width scales with the coupling
score when scores are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.couplings == "" {
				return fmt.Errorf("provide position pairs with --pairs")
			}
			return c.runPairs(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "pairs.svg", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), pdf, dot")
	cmd.Flags().StringVar(&opts.couplings, "pairs", "", "position pairs with optional scores, e.g. \"3:17:0.8,5:9\"")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include coupling degree in node labels")

	return cmd
}

func (c *CLI) runPairs(ctx context.Context, opts *pairsOpts) error {
	couplings, err := parseCouplings(opts.couplings)
	if err != nil {
		return err
	}

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, "pairgraph", len(couplings))
	start := time.Now()

	dot := pairgraph.ToDOT(couplings, pairgraph.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = pairgraph.RenderSVG(dot)
	case "pdf":
		data, err = pairgraph.RenderPDF(dot)
	default:
		err = fmt.Errorf("invalid format: %s (must be 'svg', 'pdf', or 'dot')", opts.format)
	}
	hooks.OnLayoutComplete(ctx, "pairgraph", len(couplings), time.Since(start), err)
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return err
	}
	c.Logger.Infof("Rendered coupling graph: %d pairs", len(couplings))
	printFile(opts.output)
	return nil
}

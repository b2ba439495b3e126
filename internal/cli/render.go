package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/seqviz/seqviz/pkg/observability"
	"github.com/seqviz/seqviz/pkg/render/sink"
	"github.com/seqviz/seqviz/pkg/shape"
)

// renderScene serializes a shape list to one output format, reporting
// timing through the layout hooks.
func renderScene(ctx context.Context, shapes []shape.Shape, ticks []sink.Tick, format, generator string, scale float64) ([]byte, error) {
	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	var data []byte
	var err error
	switch format {
	case "svg":
		data = sink.RenderSVG(shapes, sink.WithScale(scale), sink.WithTicks(ticks))
	case "png":
		data, err = sink.RenderPNG(shapes, sink.WithPNGScale(scale), sink.WithPNGTicks(ticks))
	case "pdf":
		data, err = sink.RenderPDF(shapes, sink.WithPDFSVGOptions(sink.WithScale(scale), sink.WithTicks(ticks)))
	case "json":
		data, err = sink.RenderJSON(shapes, sink.WithJSONGenerator(generator), sink.WithJSONTicks(ticks))
	default:
		err = fmt.Errorf("unknown format: %s", format)
	}

	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}

// writeScene renders every requested format and writes one file per
// format next to the base path. It logs through the context logger.
func writeScene(ctx context.Context, shapes []shape.Shape, ticks []sink.Tick, formats []string, base, generator string, scale float64) error {
	logger := loggerFromContext(ctx)
	for _, format := range formats {
		data, err := renderScene(ctx, shapes, ticks, format, generator, scale)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		logger.Debugf("Generated %s: %d bytes", format, len(data))

		path := base + "." + format
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

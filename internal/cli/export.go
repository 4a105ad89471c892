package cli

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/steve02081504/animate-SVG/svganim"
	"github.com/steve02081504/animate-SVG/svgdom"
	"github.com/steve02081504/animate-SVG/svgfetch"
)

// loadDocument reads the input document from a local path or an
// http(s) URL.
func loadDocument(ctx context.Context, source string) (*svgdom.Document, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return svgfetch.Load(ctx, source)
	}
	return svgdom.ParseFile(source)
}

func newExportCmd() *cobra.Command {
	var (
		opts   pipelineOpts
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [file|url]",
		Short: "Export a standalone animated SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}

			doc, err := loadDocument(ctx, args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded document", "source", args[0])

			start := time.Now()
			out, err := svganim.ExportAnimated(ctx, doc, cfg)
			if err != nil {
				return err
			}
			logger.Info("animated document",
				"source", args[0],
				"took", time.Since(start).Round(time.Millisecond))

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write([]byte(out))
				return err
			}
			return os.WriteFile(output, []byte(out), 0o644)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

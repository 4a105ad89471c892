package cli

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/steve02081504/animate-SVG/svganim"
	"github.com/steve02081504/animate-SVG/svgraster"
)

func newPreviewCmd() *cobra.Command {
	var (
		opts   pipelineOpts
		output string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "preview [file|url]",
		Short: "Rasterize the expanded document to a PNG",
		Long:  `Preview expands reuse references and rasterizes the resulting geometry to a PNG, so the final frame of the animation can be checked without a browser.`,
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
			if doc.Root == nil {
				return fmt.Errorf("preview: %s has no root element", args[0])
			}
			base := cfg.BasePath
			if base == "" {
				base = doc.URL
			}
			svganim.Expand(ctx, doc.Root, base, cfg.MaxDepth)
			logger.Debug("expanded references", "source", args[0])

			img, err := svgraster.Render(doc, width)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return err
			}
			logger.Info("wrote preview", "file", output,
				"size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()))
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "preview.png", "output PNG file")
	cmd.Flags().IntVar(&width, "width", 800, "output image width in pixels")
	return cmd
}

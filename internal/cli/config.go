package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/steve02081504/animate-SVG/svganim"
)

// pipelineOpts holds the flags shared by the export and preview
// commands, plus an optional TOML config file providing defaults.
type pipelineOpts struct {
	duration   time.Duration
	thickness  float64
	base       string
	depth      int
	configPath string
}

func (o *pipelineOpts) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&o.duration, "duration", svganim.DefaultDuration, "total animation duration")
	cmd.Flags().Float64Var(&o.thickness, "thickness", svganim.DefaultLineThickness, "stroke width percentage while drawing")
	cmd.Flags().StringVar(&o.base, "base", "", "base URL for relative reference targets")
	cmd.Flags().IntVar(&o.depth, "depth", svganim.DefaultMaxDepth, "maximum reference expansion depth")
	cmd.Flags().StringVar(&o.configPath, "config", "", "TOML config file with pipeline defaults")
}

// fileConfig mirrors pipelineOpts in a TOML config file. Flags set
// explicitly on the command line win over the file.
type fileConfig struct {
	Duration  string  `toml:"duration"`
	Thickness float64 `toml:"thickness"`
	Base      string  `toml:"base"`
	Depth     int     `toml:"depth"`
}

// config resolves the effective pipeline configuration: the TOML
// file, when given, supplies values only for flags left at their
// defaults.
func (o *pipelineOpts) config(cmd *cobra.Command) (*svganim.Config, error) {
	cfg := &svganim.Config{
		AnimationDuration: o.duration,
		LineThickness:     o.thickness,
		BasePath:          o.base,
		MaxDepth:          o.depth,
	}
	if o.configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(o.configPath)
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("config %s: %w", o.configPath, err)
	}

	if fc.Duration != "" && !cmd.Flags().Changed("duration") {
		d, err := time.ParseDuration(fc.Duration)
		if err != nil {
			return nil, fmt.Errorf("config %s: duration: %w", o.configPath, err)
		}
		cfg.AnimationDuration = d
	}
	if fc.Thickness > 0 && !cmd.Flags().Changed("thickness") {
		cfg.LineThickness = fc.Thickness
	}
	if fc.Base != "" && !cmd.Flags().Changed("base") {
		cfg.BasePath = fc.Base
	}
	if fc.Depth > 0 && !cmd.Flags().Changed("depth") {
		cfg.MaxDepth = fc.Depth
	}
	return cfg, nil
}

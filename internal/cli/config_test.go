package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/steve02081504/animate-SVG/svganim"
)

func testCmd(t *testing.T, opts *pipelineOpts, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	opts.register(cmd)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "animate.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigDefaults(t *testing.T) {
	var opts pipelineOpts
	cmd := testCmd(t, &opts)

	cfg, err := opts.config(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AnimationDuration != svganim.DefaultDuration {
		t.Errorf("duration = %s", cfg.AnimationDuration)
	}
	if cfg.LineThickness != svganim.DefaultLineThickness {
		t.Errorf("thickness = %g", cfg.LineThickness)
	}
	if cfg.MaxDepth != svganim.DefaultMaxDepth {
		t.Errorf("depth = %d", cfg.MaxDepth)
	}
}

func TestConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
duration = "5s"
thickness = 1.25
base = "https://icons.example.com/"
depth = 4
`)
	var opts pipelineOpts
	cmd := testCmd(t, &opts, "--config", path)

	cfg, err := opts.config(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AnimationDuration != 5*time.Second {
		t.Errorf("duration = %s, want 5s", cfg.AnimationDuration)
	}
	if cfg.LineThickness != 1.25 {
		t.Errorf("thickness = %g, want 1.25", cfg.LineThickness)
	}
	if cfg.BasePath != "https://icons.example.com/" {
		t.Errorf("base = %q", cfg.BasePath)
	}
	if cfg.MaxDepth != 4 {
		t.Errorf("depth = %d, want 4", cfg.MaxDepth)
	}
}

func TestConfigFlagsWinOverFile(t *testing.T) {
	path := writeConfig(t, `
duration = "5s"
depth = 4
`)
	var opts pipelineOpts
	cmd := testCmd(t, &opts, "--config", path, "--duration", "8s")

	cfg, err := opts.config(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AnimationDuration != 8*time.Second {
		t.Errorf("duration = %s, want the flag value 8s", cfg.AnimationDuration)
	}
	if cfg.MaxDepth != 4 {
		t.Errorf("depth = %d, want the file value 4", cfg.MaxDepth)
	}
}

func TestConfigRejectsBadFile(t *testing.T) {
	var opts pipelineOpts
	cmd := testCmd(t, &opts, "--config", writeConfig(t, `duration = "not a duration"`))
	if _, err := opts.config(cmd); err == nil {
		t.Error("expected error for malformed duration")
	}

	var missing pipelineOpts
	cmd = testCmd(t, &missing, "--config", "/does/not/exist.toml")
	if _, err := missing.config(cmd); err == nil {
		t.Error("expected error for missing file")
	}
}

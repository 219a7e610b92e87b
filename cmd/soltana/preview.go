package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/soltana/internal/preview"
	"github.com/jmylchreest/soltana/internal/style"
)

var previewOpts struct {
	chart  string
	out    string
	width  int
	height int
	title  string
}

var previewCmd = &cobra.Command{
	Use:   "preview [theme|style]",
	Short: "Render a sample chart as PNG",
	Long: `Render one of the sample charts (line, bar, scatter, histogram, box,
heatmap) styled by a theme or stylesheet and write it as PNG.

The output defaults to <name>-<chart>.png in the current directory. Use
--out - to write the image to stdout.

Examples:
  soltana preview sepia --chart histogram
  soltana preview light --chart box
  soltana preview dark --chart scatter --out /tmp/dark.png --width 1024 --height 768`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewOpts.chart, "chart", "c", "",
		"Sample chart: line, bar, scatter, histogram, box, heatmap (default from config)")
	previewCmd.Flags().StringVarP(&previewOpts.out, "out", "o", "",
		"Output file (default: <name>-<chart>.png, - for stdout)")
	previewCmd.Flags().IntVar(&previewOpts.width, "width", 0,
		"Image width in pixels (default from config)")
	previewCmd.Flags().IntVar(&previewOpts.height, "height", 0,
		"Image height in pixels (default from config)")
	previewCmd.Flags().StringVar(&previewOpts.title, "title", "",
		"Chart title (default: the chart's own title)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	name := cfg.Theme.Default
	if len(args) > 0 {
		name = args[0]
	}

	opts := cfg.PreviewOptions()
	if previewOpts.chart != "" {
		chart, err := preview.ParseChart(previewOpts.chart)
		if err != nil {
			return err
		}
		opts.Chart = chart
	}
	if previewOpts.width > 0 {
		opts.Width = previewOpts.width
	}
	if previewOpts.height > 0 {
		opts.Height = previewOpts.height
	}
	opts.Title = previewOpts.title

	params, err := loadParams(name)
	if err != nil {
		return err
	}

	out := previewOpts.out
	if out == "" {
		out = defaultPreviewName(name, opts.Chart)
	}
	return writePreview(params, opts, out)
}

// defaultPreviewName derives "<name>-<chart>.png" from a theme name or a
// stylesheet path.
func defaultPreviewName(name string, chart preview.Chart) string {
	base := strings.TrimSuffix(filepath.Base(name), style.Extension)
	return fmt.Sprintf("%s-%s.png", base, chart)
}

// writePreview renders and writes a preview. out "-" writes to stdout.
func writePreview(params style.Params, opts preview.Options, out string) error {
	img, err := preview.Render(params, opts)
	if err != nil {
		return err
	}

	if out == "-" {
		return preview.EncodePNG(os.Stdout, img)
	}

	// Write atomically via temp file so viewers never see a partial image
	tmpPath := out + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	if err := preview.EncodePNG(f, img); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write preview file: %w", err)
	}
	if err := os.Rename(tmpPath, out); err != nil {
		return fmt.Errorf("failed to write preview file: %w", err)
	}

	if info, err := os.Stat(out); err == nil {
		logger.Info("wrote preview", "path", out, "chart", opts.Chart, "size", humanize.Bytes(uint64(info.Size())))
	}
	return nil
}

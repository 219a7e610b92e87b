package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/soltana/internal/style"
)

var watchOpts struct {
	preview string
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Reload a stylesheet whenever it changes",
	Long: `Apply a stylesheet and re-apply it every time the file is written,
printing the keys whose values changed.

With --preview, a sample chart is re-rendered to the given PNG path after each
reload, which makes it easy to tune a stylesheet with an image viewer open.

Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOpts.preview, "preview", "p", "",
		"Re-render a preview PNG to this path on every change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := cfg.ResolveStyle(args[0])
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	engine := style.NewEngine(logger)
	if err := engine.Use(path); err != nil {
		return err
	}

	render := func() {
		if watchOpts.preview == "" {
			return
		}
		if err := writePreview(engine.Params(), cfg.PreviewOptions(), watchOpts.preview); err != nil {
			logger.Warn("failed to render preview", "error", err)
		}
	}
	render()

	watcher := style.NewWatcher(engine, path, logger)
	watcher.SetDebounce(cfg.Watch.Debounce.Duration())
	watcher.SetChangeCallback(func(changed []string) {
		for _, key := range changed {
			v, _ := engine.Get(key)
			fmt.Printf("%s: %s\n", key, v)
		}
		render()
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()

	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", path)
	<-ctx.Done()
	return nil
}

package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jmylchreest/soltana/internal/config"
)

// ErrNoClipboard is returned when no clipboard command is configured or found.
var ErrNoClipboard = errors.New("no clipboard command available")

// clipboardCandidates are tried in order when no command is configured.
// Stylesheets are plain text, so each tool is told so rather than left to
// sniff the content type.
var clipboardCandidates = []string{
	"wl-copy --type text/plain",                // Wayland
	"xclip -selection clipboard -t text/plain", // X11
	"xsel --clipboard --input",
	"pbcopy", // macOS
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// copyText copies a stylesheet to the system clipboard.
func copyText(text string, cfg *config.Config) error {
	parts := strings.Fields(detectClipboardCommand(cfg))
	if len(parts) == 0 {
		return ErrNoClipboard
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var stderr bytes.Buffer
	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdin = strings.NewReader(text)
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", parts[0], err, msg)
		}
		return fmt.Errorf("%s: %w", parts[0], err)
	}
	return nil
}

// detectClipboardCommand returns the configured clipboard command, or the
// first candidate whose binary is on PATH.
func detectClipboardCommand(cfg *config.Config) string {
	if cfg != nil && strings.TrimSpace(cfg.Clipboard.Command) != "" {
		return cfg.Clipboard.Command
	}

	for _, candidate := range clipboardCandidates {
		bin, _, _ := strings.Cut(candidate, " ")
		if _, err := lookPath(bin); err == nil {
			return candidate
		}
	}
	return ""
}

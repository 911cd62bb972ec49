// Package notify runs completion actions after a successful batch.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// Result describes what a batch wrote.
type Result struct {
	Directory string
	Files     []string
}

// Notifier is one completion action.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, r Result) error
}

// Run calls every notifier in order. Failures are logged and never
// returned: the batch outcome does not depend on them.
func Run(ctx context.Context, log *zap.Logger, r Result, ns ...Notifier) {
	for _, n := range ns {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, r); err != nil {
			log.Warn("notification failed",
				zap.String("notifier", n.Name()),
				zap.String("directory", r.Directory),
				zap.Error(err),
			)
			continue
		}
		log.Debug("notification sent", zap.String("notifier", n.Name()))
	}
}

// OpenFolder opens the output directory in the desktop file browser.
type OpenFolder struct {
	// Command builds the opener; nil uses the platform default.
	Command func(ctx context.Context, dir string) *exec.Cmd
}

func (OpenFolder) Name() string { return "open-folder" }

func (o OpenFolder) Notify(ctx context.Context, r Result) error {
	build := o.Command
	if build == nil {
		build = defaultOpener
	}
	cmd := build(ctx, r.Directory)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", r.Directory, err)
	}
	// The browser outlives us; reap the child in the background.
	go func() { _ = cmd.Wait() }()
	return nil
}

func defaultOpener(ctx context.Context, dir string) *exec.Cmd {
	switch runtime.GOOS {
	case "windows":
		return exec.CommandContext(ctx, "explorer", dir)
	case "darwin":
		return exec.CommandContext(ctx, "open", dir)
	default:
		return exec.CommandContext(ctx, "xdg-open", dir)
	}
}

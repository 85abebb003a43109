// Package sync keeps the quest data directory in a git repository.
package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Git runs git commands against one directory.
type Git struct {
	Dir    string
	Out    io.Writer
	Logger *slog.Logger
}

func (g Git) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", g.Dir}, args...)...)
	if g.Out != nil {
		cmd.Stdout = g.Out
		cmd.Stderr = g.Out
	}
	return cmd
}

func (g Git) run(ctx context.Context, args ...string) error {
	if g.Logger != nil {
		g.Logger.Debug("git", "dir", g.Dir, "args", args)
	}
	return g.command(ctx, args...).Run()
}

func (g Git) printf(format string, a ...any) {
	if g.Out != nil {
		fmt.Fprintf(g.Out, format, a...)
	}
}

// IsRepo reports whether Dir already holds a git repository.
func (g Git) IsRepo() bool {
	_, err := os.Stat(filepath.Join(g.Dir, ".git"))
	return err == nil
}

// InitRepo initializes the data directory as a git repository when needed
// and points origin at remote.
func (g Git) InitRepo(ctx context.Context, remote string) error {
	if !g.IsRepo() {
		if err := g.run(ctx, "init"); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		g.printf("Initialized git repository in %s\n", g.Dir)
	}

	if remote == "" {
		g.printf("No remote specified. Use --remote <url> to set one.\n")
		return nil
	}

	// origin may not exist yet
	_ = g.command(ctx, "remote", "remove", "origin").Run()

	if err := g.run(ctx, "remote", "add", "origin", remote); err != nil {
		return fmt.Errorf("setting remote: %w", err)
	}
	g.printf("Remote set to: %s\n", remote)
	return nil
}

// SyncRepo commits local changes, rebases onto the remote (falling back to a
// merge), then pushes.
func (g Git) SyncRepo(ctx context.Context) error {
	if !g.IsRepo() {
		return fmt.Errorf("not a git repository. Run 'quest init' first")
	}

	g.printf("Staging changes...\n")
	if err := g.run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	if err := g.command(ctx, "diff", "--cached", "--quiet").Run(); err != nil {
		msg := "quest sync " + time.Now().Format("2006-01-02 15:04:05")
		if err := g.run(ctx, "commit", "-m", msg); err != nil {
			return fmt.Errorf("git commit: %w", err)
		}
	}

	g.printf("Pulling...\n")
	if err := g.run(ctx, "pull", "--rebase"); err != nil {
		g.printf("Rebase failed, trying merge...\n")
		_ = g.command(ctx, "rebase", "--abort").Run()

		if err := g.run(ctx, "pull", "--no-rebase"); err != nil {
			_ = g.command(ctx, "merge", "--abort").Run()
			return fmt.Errorf("sync failed: could not rebase or merge. Resolve conflicts manually")
		}
	}

	g.printf("Pushing...\n")
	if err := g.run(ctx, "push"); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	g.printf("Sync complete.\n")
	return nil
}

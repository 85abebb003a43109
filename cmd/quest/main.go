package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stefanpenner/quest/pkg/config"
	"github.com/stefanpenner/quest/pkg/menu"
	"github.com/stefanpenner/quest/pkg/quest"
	"github.com/stefanpenner/quest/pkg/store"
	gsync "github.com/stefanpenner/quest/pkg/sync"
	"github.com/stefanpenner/quest/pkg/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the persistent flags shared by every command.
type options struct {
	dir     string
	file    string
	jsonOut bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "quest",
		Short:         "Track goals, earn points, level up",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, opts, runTUI)
		},
	}
	root.PersistentFlags().StringVar(&opts.dir, "dir", "", "data directory (default $QUEST_DIR or the OS data dir)")
	root.PersistentFlags().StringVar(&opts.file, "file", "", "snapshot file name or absolute path; .yaml/.yml selects YAML (default $QUEST_FILE)")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print JSON output")

	root.AddCommand(
		newCreateCmd(opts),
		newRecordCmd(opts),
		newListCmd(opts),
		newScoreCmd(opts),
		newHistoryCmd(opts),
		newMenuCmd(opts),
		newInitCmd(opts),
		newSyncCmd(opts),
	)
	return root
}

// loadConfig merges the environment with command-line overrides.
func loadConfig(opts *options) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if opts.dir != "" {
		cfg.DataDir = opts.dir
	}
	if opts.file != "" {
		cfg.File = opts.file
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return cfg.NewLogger(cmd.ErrOrStderr())
}

func withStore(cmd *cobra.Command, opts *options, fn func(*cobra.Command, *store.Store) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	s, err := store.NewStore(cmd.Context(), cfg.DataDir,
		store.WithFile(cfg.File),
		store.WithHistory(cfg.History),
		store.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn("closing store", "error", err)
		}
	}()
	return fn(cmd, s)
}

func runTUI(cmd *cobra.Command, s *store.Store) error {
	m := tui.NewModel(cmd.Context(), s)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	cleanup, err := tui.StartWatcher(s.SnapshotPath(), p)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: file watcher failed: %v\n", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}

func newCreateCmd(opts *options) *cobra.Command {
	var points, target, total int

	cmd := &cobra.Command{
		Use:   "create <simple|eternal|checklist|progress|negative> <name>",
		Short: "Create a goal",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[1:], " ")
			return withStore(cmd, opts, func(cmd *cobra.Command, s *store.Store) error {
				g, err := s.CreateGoal(args[0], name, points, quest.Params{Target: target, Total: total})
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return outputJSON(cmd.OutOrStdout(), goalToMap(g))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", g.Display())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&points, "points", 0, "points per event (penalty for negative goals)")
	cmd.Flags().IntVar(&target, "target", 0, "checklist: events needed to complete")
	cmd.Flags().IntVar(&total, "total", 0, "progress: total steps to complete")
	return cmd
}

func newRecordCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "record <name>",
		Short: "Record an event for a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return withStore(cmd, opts, func(cmd *cobra.Command, s *store.Store) error {
				out, err := s.RecordEvent(cmd.Context(), name)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return outputJSON(cmd.OutOrStdout(), outcomeToMap(out))
				}
				printOutcome(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func printOutcome(w io.Writer, out quest.Outcome) {
	if out.Closed {
		fmt.Fprintf(w, "Goal '%s' is already complete.\n", out.Goal.Name())
		return
	}
	fmt.Fprintf(w, "%s: %+d points\n", out.Goal.Display(), out.Awarded)
	for lvl := out.Level - out.LevelsGained + 1; lvl <= out.Level; lvl++ {
		fmt.Fprintf(w, "Level Up! You are now level %d.\n", lvl)
	}
	fmt.Fprintf(w, "Score: %d, Level: %d\n", out.Score, out.Level)
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Display goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, opts, func(cmd *cobra.Command, s *store.Store) error {
				r, _, err := s.LoadOrNew()
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return outputJSON(cmd.OutOrStdout(), goalsToMap(r.Goals()))
				}
				if r.Len() == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No goals yet. Use 'quest create' to add one.")
					return nil
				}
				for i, line := range r.DisplayGoals() {
					fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, line)
				}
				return nil
			})
		},
	}
}

func newScoreCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Display score and level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, opts, func(cmd *cobra.Command, s *store.Store) error {
				r, _, err := s.LoadOrNew()
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return outputJSON(cmd.OutOrStdout(), map[string]interface{}{
						"score": r.Score(),
						"level": r.Level(),
						"goals": r.Len(),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), r.DisplayScore())
				return nil
			})
		},
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently recorded events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, opts, func(cmd *cobra.Command, s *store.Store) error {
				events, err := s.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return outputJSON(cmd.OutOrStdout(), events)
				}
				if len(events) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No events recorded.")
					return nil
				}
				for _, e := range events {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %+6d  %s (score %d, level %d)\n",
						e.RecordedAt.Local().Format("2006-01-02 15:04"), e.Awarded, e.Goal, e.Score, e.Level)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of events to show")
	return cmd
}

func newMenuCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the numbered console menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, opts, func(cmd *cobra.Command, s *store.Store) error {
				return menu.New(s, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
			})
		},
	}
}

func newInitCmd(opts *options) *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize git in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
				return fmt.Errorf("creating data directory: %w", err)
			}
			warnUnsynced(cmd, cfg)
			g := gsync.Git{Dir: cfg.DataDir, Out: cmd.OutOrStdout(), Logger: newLogger(cmd, cfg)}
			return g.InitRepo(cmd.Context(), remote)
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "git remote URL for origin")
	return cmd
}

func newSyncCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Commit, pull and push the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			warnUnsynced(cmd, cfg)
			g := gsync.Git{Dir: cfg.DataDir, Out: cmd.OutOrStdout(), Logger: newLogger(cmd, cfg)}
			return g.SyncRepo(cmd.Context())
		},
	}
}

// snapshotOutsideDataDir reports the snapshot path when an absolute --file
// or QUEST_FILE places it outside the git-tracked data directory.
func snapshotOutsideDataDir(cfg config.Config) (string, bool) {
	if !filepath.IsAbs(cfg.File) {
		return "", false
	}
	dir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return cfg.File, true
	}
	rel, err := filepath.Rel(dir, filepath.Clean(cfg.File))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return cfg.File, true
	}
	return "", false
}

func warnUnsynced(cmd *cobra.Command, cfg config.Config) {
	if path, outside := snapshotOutsideDataDir(cfg); outside {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s is outside %s and is not synced\n", path, cfg.DataDir)
	}
}

// JSON helpers

func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func goalToMap(g quest.Goal) map[string]interface{} {
	m := map[string]interface{}{
		"name":      g.Name(),
		"kind":      g.Kind().String(),
		"points":    g.Points(),
		"completed": g.Completed(),
		"display":   g.Display(),
	}
	switch g := g.(type) {
	case *quest.Checklist:
		m["target"] = g.Target()
		m["count"] = g.Count()
	case *quest.Progress:
		m["total"] = g.Total()
		m["current"] = g.Current()
	}
	return m
}

func goalsToMap(goals []quest.Goal) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(goals))
	for _, g := range goals {
		result = append(result, goalToMap(g))
	}
	return result
}

func outcomeToMap(out quest.Outcome) map[string]interface{} {
	return map[string]interface{}{
		"goal":          goalToMap(out.Goal),
		"awarded":       out.Awarded,
		"score":         out.Score,
		"level":         out.Level,
		"levels_gained": out.LevelsGained,
		"closed":        out.Closed,
	}
}

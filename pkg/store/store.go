package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stefanpenner/quest/pkg/quest"
)

// DefaultFile is the snapshot file name used when none is configured.
const DefaultFile = "eternal_quest.json"

const historyFile = "history.db"

// Store manages the filesystem-backed registry snapshot and event history.
type Store struct {
	Root string // e.g., ~/.local/share/quest
	File string // snapshot file name under Root

	logger  *slog.Logger
	history *History
	useHist bool
}

// Option configures a Store.
type Option func(*Store)

// WithFile sets the snapshot file name (or an absolute path).
func WithFile(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.File = name
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHistory toggles the SQLite event ledger. It is on by default.
func WithHistory(enabled bool) Option {
	return func(s *Store) { s.useHist = enabled }
}

// NewStore creates a Store rooted at the given directory.
// It creates the directory if it doesn't exist.
func NewStore(ctx context.Context, root string, opts ...Option) (*Store, error) {
	s := &Store{
		Root:    root,
		File:    DefaultFile,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		useHist: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if s.useHist {
		h, err := OpenHistory(ctx, s.HistoryPath())
		if err != nil {
			return nil, err
		}
		s.history = h
	}
	return s, nil
}

// SnapshotPath returns the path to the registry snapshot.
func (s *Store) SnapshotPath() string {
	if filepath.IsAbs(s.File) {
		return s.File
	}
	return filepath.Join(s.Root, s.File)
}

// Logger returns the logger the store writes to.
func (s *Store) Logger() *slog.Logger { return s.logger }

// HistoryPath returns the path to the history database.
func (s *Store) HistoryPath() string {
	return filepath.Join(s.Root, historyFile)
}

// Load reads the saved registry. A missing snapshot yields quest.ErrNotFound.
func (s *Store) Load() (*quest.Registry, error) {
	return LoadFile(s.SnapshotPath())
}

// LoadOrNew returns the saved registry, or an empty one when nothing is saved yet.
// fresh reports which case applied.
func (s *Store) LoadOrNew() (r *quest.Registry, fresh bool, err error) {
	r, err = s.Load()
	if errors.Is(err, quest.ErrNotFound) {
		s.logger.Debug("no saved data, starting fresh", "path", s.SnapshotPath())
		return quest.NewRegistry(), true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return r, false, nil
}

// Save writes the registry snapshot to disk.
func (s *Store) Save(r *quest.Registry) error {
	if err := SaveFile(s.SnapshotPath(), r); err != nil {
		return err
	}
	s.logger.Debug("saved snapshot", "path", s.SnapshotPath(), "goals", r.Len(), "score", r.Score())
	return nil
}

// CreateGoal adds a goal to the saved registry.
func (s *Store) CreateGoal(variant, name string, points int, p quest.Params) (quest.Goal, error) {
	r, _, err := s.LoadOrNew()
	if err != nil {
		return nil, err
	}
	g, err := r.CreateGoal(variant, name, points, p)
	if err != nil {
		return nil, err
	}
	if err := s.Save(r); err != nil {
		return nil, err
	}
	s.logger.Info("created goal", "goal", g.Name(), "kind", g.Kind().String(), "points", g.Points())
	return g, nil
}

// RecordEvent records one event against the saved registry and appends it to
// the history. Events on already completed goals are not saved or logged.
func (s *Store) RecordEvent(ctx context.Context, name string) (quest.Outcome, error) {
	r, _, err := s.LoadOrNew()
	if err != nil {
		return quest.Outcome{}, err
	}
	out, err := r.RecordEvent(name)
	if err != nil {
		return quest.Outcome{}, err
	}
	if out.Closed {
		return out, nil
	}
	if err := s.Save(r); err != nil {
		return quest.Outcome{}, err
	}
	if err := s.AppendHistory(ctx, out); err != nil {
		s.logger.Warn("history append failed", "goal", name, "error", err)
	}
	s.logger.Info("recorded event", "goal", name, "awarded", out.Awarded, "score", out.Score, "level", out.Level)
	return out, nil
}

// AppendHistory adds an outcome to the event ledger. Closed outcomes are skipped.
func (s *Store) AppendHistory(ctx context.Context, out quest.Outcome) error {
	if s.history == nil || out.Closed || out.Goal == nil {
		return nil
	}
	_, err := s.history.Append(ctx, Event{
		Goal:    out.Goal.Name(),
		Kind:    out.Goal.Kind().String(),
		Awarded: out.Awarded,
		Score:   out.Score,
		Level:   out.Level,
	})
	return err
}

// History lists recorded events, newest first. It is empty when history is disabled.
func (s *Store) History(ctx context.Context, limit int) ([]Event, error) {
	if s.history == nil {
		return []Event{}, nil
	}
	return s.history.List(ctx, limit)
}

// Close releases the history database.
func (s *Store) Close() error {
	if s.history == nil {
		return nil
	}
	return s.history.Close()
}

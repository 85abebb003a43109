package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stefanpenner/quest/pkg/quest"
	"gopkg.in/yaml.v3"
)

// NewSnapshot captures the registry's current state.
func NewSnapshot(r *quest.Registry) (*Snapshot, error) {
	snap := &Snapshot{
		Version: SnapshotVersion,
		Score:   r.Score(),
		Level:   r.Level(),
		Goals:   make([]GoalRecord, 0, r.Len()),
	}
	for _, g := range r.Goals() {
		rec, err := recordFor(g)
		if err != nil {
			return nil, err
		}
		snap.Goals = append(snap.Goals, rec)
	}
	return snap, nil
}

func recordFor(g quest.Goal) (GoalRecord, error) {
	rec := GoalRecord{
		Kind:      g.Kind().String(),
		Name:      g.Name(),
		Points:    g.Points(),
		Completed: g.Completed(),
	}
	switch g := g.(type) {
	case *quest.Simple, *quest.Eternal, *quest.Negative:
	case *quest.Checklist:
		rec.Checklist = &ChecklistRecord{Target: g.Target(), Count: g.Count()}
	case *quest.Progress:
		rec.Progress = &ProgressRecord{Total: g.Total(), Current: g.Current()}
	default:
		return GoalRecord{}, fmt.Errorf("%w: %T", quest.ErrUnknownKind, g)
	}
	return rec, nil
}

// Registry rebuilds the registry the snapshot describes.
func (s *Snapshot) Registry() (*quest.Registry, error) {
	goals := make([]quest.Goal, 0, len(s.Goals))
	for i, rec := range s.Goals {
		g, err := rec.Goal()
		if err != nil {
			return nil, fmt.Errorf("goal %d: %w", i, err)
		}
		goals = append(goals, g)
	}
	level := s.Level
	if level == 0 {
		level = 1
	}
	return quest.Restore(s.Score, level, goals)
}

// Goal dispatches on the kind tag to the matching variant constructor.
func (rec GoalRecord) Goal() (quest.Goal, error) {
	kind, err := quest.ParseKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case quest.KindSimple:
		return quest.NewSimple(rec.Name, rec.Points, rec.Completed), nil
	case quest.KindEternal:
		return quest.NewEternal(rec.Name, rec.Points), nil
	case quest.KindChecklist:
		if rec.Checklist == nil {
			return nil, fmt.Errorf("%w: checklist goal %q has no checklist state", quest.ErrInvalidArgument, rec.Name)
		}
		return quest.NewChecklist(rec.Name, rec.Points, rec.Checklist.Target, rec.Checklist.Count), nil
	case quest.KindProgress:
		if rec.Progress == nil {
			return nil, fmt.Errorf("%w: progress goal %q has no progress state", quest.ErrInvalidArgument, rec.Name)
		}
		return quest.NewProgress(rec.Name, rec.Points, rec.Progress.Total, rec.Progress.Current), nil
	case quest.KindNegative:
		return quest.NewNegative(rec.Name, rec.Points), nil
	default:
		return nil, fmt.Errorf("%w: %s", quest.ErrUnknownKind, kind)
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// MarshalSnapshot encodes as YAML for .yaml/.yml paths and JSON otherwise.
func MarshalSnapshot(path string, snap *Snapshot) ([]byte, error) {
	if isYAML(path) {
		data, err := yaml.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("serializing snapshot YAML: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing snapshot JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// UnmarshalSnapshot is the inverse of MarshalSnapshot.
func UnmarshalSnapshot(path string, data []byte) (*Snapshot, error) {
	var snap Snapshot
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing snapshot YAML: %w", err)
		}
		return &snap, nil
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot JSON: %w", err)
	}
	return &snap, nil
}

// SaveFile writes the registry snapshot to path.
func SaveFile(path string, r *quest.Registry) error {
	snap, err := NewSnapshot(r)
	if err != nil {
		return err
	}
	data, err := MarshalSnapshot(path, snap)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a registry snapshot. A missing file yields quest.ErrNotFound.
func LoadFile(path string) (*quest.Registry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("snapshot %s: %w", path, quest.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	snap, err := UnmarshalSnapshot(path, data)
	if err != nil {
		return nil, err
	}
	r, err := snap.Registry()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return r, nil
}

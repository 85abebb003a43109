package store

import "time"

// SnapshotVersion is written into every snapshot file.
const SnapshotVersion = 1

// Snapshot is the on-disk form of a registry.
type Snapshot struct {
	Version int          `json:"version" yaml:"version"`
	Score   int          `json:"score" yaml:"score"`
	Level   int          `json:"level,omitempty" yaml:"level,omitempty"`
	Goals   []GoalRecord `json:"goals" yaml:"goals"`
}

// GoalRecord is one goal. Kind selects which variant sub-record is present.
type GoalRecord struct {
	Kind      string           `json:"kind" yaml:"kind"`
	Name      string           `json:"name" yaml:"name"`
	Points    int              `json:"points" yaml:"points"`
	Completed bool             `json:"completed" yaml:"completed"`
	Checklist *ChecklistRecord `json:"checklist,omitempty" yaml:"checklist,omitempty"`
	Progress  *ProgressRecord  `json:"progress,omitempty" yaml:"progress,omitempty"`
}

type ChecklistRecord struct {
	Target int `json:"target" yaml:"target"`
	Count  int `json:"count" yaml:"count"`
}

type ProgressRecord struct {
	Total   int `json:"total" yaml:"total"`
	Current int `json:"current" yaml:"current"`
}

// Event is one row of the recorded-event history.
type Event struct {
	ID         int64     `json:"id"`
	Goal       string    `json:"goal"`
	Kind       string    `json:"kind"`
	Awarded    int       `json:"awarded"`
	Score      int       `json:"score"`
	Level      int       `json:"level"`
	RecordedAt time.Time `json:"recorded_at"`
}

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stefanpenner/quest/pkg/quest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry(t *testing.T) *quest.Registry {
	t.Helper()
	r := quest.NewRegistry()
	create := func(kind, name string, points int, p quest.Params) {
		_, err := r.CreateGoal(kind, name, points, p)
		require.NoError(t, err)
	}
	create("simple", "Read Scriptures", 100, quest.Params{})
	create("eternal", "Pray", 5, quest.Params{})
	create("checklist", "Attend Temple", 50, quest.Params{Target: 10})
	create("progress", "Marathon", 10, quest.Params{Total: 3})
	create("negative", "Junk food", 30, quest.Params{})

	for _, name := range []string{"Read Scriptures", "Pray", "Attend Temple", "Attend Temple", "Marathon", "Junk food"} {
		_, err := r.RecordEvent(name)
		require.NoError(t, err)
	}
	return r
}

func assertSameRegistry(t *testing.T, want, got *quest.Registry) {
	t.Helper()
	assert.Equal(t, want.Score(), got.Score())
	assert.Equal(t, want.Level(), got.Level())
	assert.Equal(t, want.Goals(), got.Goals())
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, name := range []string{"quest.json", "quest.yaml", "quest.yml", "quest"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := sampleRegistry(t)

			require.NoError(t, SaveFile(path, want))
			got, err := LoadFile(path)
			require.NoError(t, err)
			assertSameRegistry(t, want, got)
		})
	}
}

func TestSnapshotRoundTripAfterLevelUp(t *testing.T) {
	r := quest.NewRegistry()
	_, err := r.CreateGoal("checklist", "Attend Temple", 50, quest.Params{Target: 10})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		_, err := r.RecordEvent("Attend Temple")
		require.NoError(t, err)
	}
	require.Equal(t, 2, r.Level())

	path := filepath.Join(t.TempDir(), "q.json")
	require.NoError(t, SaveFile(path, r))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assertSameRegistry(t, r, got)
	g, _ := got.Goal("Attend Temple")
	assert.True(t, g.Completed())
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{
			name:    "unknown kind",
			file:    "q.json",
			content: `{"score": 0, "level": 1, "goals": [{"kind": "daily", "name": "x", "points": 1}]}`,
			wantErr: quest.ErrUnknownKind,
		},
		{
			name:    "checklist missing state",
			file:    "q.json",
			content: `{"score": 0, "goals": [{"kind": "checklist", "name": "x", "points": 1}]}`,
			wantErr: quest.ErrInvalidArgument,
		},
		{
			name: "duplicate names",
			file: "q.yaml",
			content: `score: 0
goals:
  - {kind: simple, name: a, points: 1}
  - {kind: eternal, name: a, points: 1}
`,
			wantErr: quest.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := LoadFile(path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFileMissingLevelDefaultsToOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"score": 40, "goals": [{"kind": "negative", "name": "n", "points": -20}]}`), 0644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Level())
	assert.Equal(t, 40, r.Score())
	g, _ := r.Goal("n")
	assert.Equal(t, -20, g.Points())
}

func TestLoadFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, quest.ErrNotFound)
}

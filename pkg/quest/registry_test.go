package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Score())
	assert.Equal(t, 1, r.Level())
	assert.Empty(t, r.Goals())
	assert.Equal(t, "Score: 0, Level: 1", r.DisplayScore())
}

func TestRecordSimpleGoal(t *testing.T) {
	r := NewRegistry()
	_, err := r.CreateGoal("simple", "Read Scriptures", 100, Params{})
	require.NoError(t, err)

	out, err := r.RecordEvent("Read Scriptures")
	require.NoError(t, err)
	assert.Equal(t, 100, out.Awarded)
	assert.Equal(t, 100, r.Score())
	assert.Equal(t, 1, r.Level())
	assert.Equal(t, []string{"[X] Read Scriptures"}, r.DisplayGoals())
}

func TestRecordChecklistLevelsUp(t *testing.T) {
	r := NewRegistry()
	_, err := r.CreateGoal("checklist", "Attend Temple", 50, Params{Target: 10})
	require.NoError(t, err)

	for i := 0; i < 9; i++ {
		out, err := r.RecordEvent("Attend Temple")
		require.NoError(t, err)
		assert.Equal(t, 50, out.Awarded)
		assert.Zero(t, out.LevelsGained)
	}
	assert.Equal(t, 450, r.Score())
	g, _ := r.Goal("Attend Temple")
	assert.False(t, g.Completed())

	out, err := r.RecordEvent("Attend Temple")
	require.NoError(t, err)
	assert.Equal(t, 550, out.Awarded)
	assert.Equal(t, 1000, r.Score())
	assert.True(t, g.Completed())
	assert.Equal(t, 2, r.Level())
	assert.Equal(t, 1, out.LevelsGained)

	// closed: no further points
	out, err = r.RecordEvent("Attend Temple")
	require.NoError(t, err)
	assert.True(t, out.Closed)
	assert.Zero(t, out.Awarded)
	assert.Equal(t, 1000, r.Score())
}

func TestRecordUnknownGoal(t *testing.T) {
	r := NewRegistry()
	_, err := r.CreateGoal("eternal", "Pray", 5, Params{})
	require.NoError(t, err)
	_, err = r.RecordEvent("Pray")
	require.NoError(t, err)
	before := r.DisplayGoals()

	_, err = r.RecordEvent("pray")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 5, r.Score())
	assert.Equal(t, 1, r.Level())
	assert.Equal(t, before, r.DisplayGoals())
}

func TestNegativeGoalLowersScore(t *testing.T) {
	r := NewRegistry()
	_, err := r.CreateGoal("eternal", "Exercise", 300, Params{})
	require.NoError(t, err)
	_, err = r.CreateGoal("negative", "Skip workout", 120, Params{})
	require.NoError(t, err)

	_, err = r.RecordEvent("Exercise")
	require.NoError(t, err)
	out, err := r.RecordEvent("Skip workout")
	require.NoError(t, err)
	assert.Equal(t, -120, out.Awarded)
	assert.Equal(t, 180, r.Score())
}

func TestLevelNeverDecreases(t *testing.T) {
	r := NewRegistry()
	_, err := r.CreateGoal("eternal", "Big", 1000, Params{})
	require.NoError(t, err)
	_, err = r.CreateGoal("negative", "Bad", 1500, Params{})
	require.NoError(t, err)

	_, err = r.RecordEvent("Big")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Level())

	_, err = r.RecordEvent("Bad")
	require.NoError(t, err)
	assert.Equal(t, -500, r.Score())
	assert.Equal(t, 2, r.Level())

	// climbing back must pass level*1000 again before the next level
	_, err = r.RecordEvent("Big")
	require.NoError(t, err)
	assert.Equal(t, 500, r.Score())
	assert.Equal(t, 2, r.Level())
}

func TestLevelCrossesSeveralThresholds(t *testing.T) {
	r := NewRegistry()
	_, err := r.CreateGoal("simple", "Jackpot", 3500, Params{})
	require.NoError(t, err)

	out, err := r.RecordEvent("Jackpot")
	require.NoError(t, err)
	assert.Equal(t, 3, out.LevelsGained)
	assert.Equal(t, 4, r.Level())
}

func TestCreateGoalValidation(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		goal    string
		points  int
		params  Params
		wantErr error
	}{
		{"unknown variant", "daily", "x", 10, Params{}, ErrUnknownKind},
		{"empty name", "simple", "  ", 10, Params{}, ErrInvalidArgument},
		{"negative points", "simple", "x", -10, Params{}, ErrInvalidArgument},
		{"checklist without target", "checklist", "x", 10, Params{}, ErrInvalidArgument},
		{"progress without total", "progress", "x", 10, Params{}, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			_, err := r.CreateGoal(tt.variant, tt.goal, tt.points, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, r.Len())
		})
	}
}

func TestCreateGoalDuplicate(t *testing.T) {
	r := NewRegistry()
	_, err := r.CreateGoal("simple", "Read", 10, Params{})
	require.NoError(t, err)

	_, err = r.CreateGoal("eternal", "Read", 10, Params{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, r.Len())
}

func TestGoalsKeepInsertionOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		_, err := r.CreateGoal("simple", name, 1, Params{})
		require.NoError(t, err)
	}

	var names []string
	for _, g := range r.Goals() {
		names = append(names, g.Name())
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestRestore(t *testing.T) {
	r, err := Restore(1200, 2, []Goal{
		NewSimple("a", 10, true),
		NewChecklist("b", 5, 3, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1200, r.Score())
	assert.Equal(t, 2, r.Level())
	assert.Equal(t, 2, r.Len())

	_, err = Restore(0, 1, []Goal{NewSimple("a", 1, false), NewEternal("a", 1)})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Restore(0, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "simple", want: KindSimple},
		{input: "Eternal", want: KindEternal},
		{input: " CHECKLIST ", want: KindChecklist},
		{input: "progress", want: KindProgress},
		{input: "negative", want: KindNegative},
		{input: "SimpleGoal", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownKind)
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Kind {
	t.Helper()
	k, err := ParseKind(s)
	require.NoError(t, err)
	return k
}

func TestChecklistScoring(t *testing.T) {
	for _, target := range []int{1, 2, 5, 10} {
		g := NewChecklist("Attend Temple", 50, target, 0)
		for i := 1; i < target; i++ {
			assert.Equal(t, 50, g.record(), "event %d of %d", i, target)
			assert.False(t, g.Completed())
		}
		assert.Equal(t, 550, g.record())
		assert.True(t, g.Completed())
		assert.Equal(t, target, g.Count())
	}
}

func TestChecklistClosedAfterCompletion(t *testing.T) {
	g := NewChecklist("Run", 10, 2, 1)
	assert.Equal(t, 110, g.record())
	assert.Equal(t, 0, g.record())
	assert.Equal(t, 2, g.Count())
	assert.True(t, g.Completed())
}

func TestProgressCompletion(t *testing.T) {
	g := NewProgress("Read book", 20, 3, 0)
	assert.Equal(t, 20, g.record())
	assert.Equal(t, 20, g.record())
	assert.False(t, g.Completed())
	assert.Equal(t, 20, g.record())
	assert.True(t, g.Completed())

	// completed goals stay completed and stop scoring
	assert.Equal(t, 0, g.record())
	assert.True(t, g.Completed())
	assert.Equal(t, 3, g.Current())
}

func TestRestoredProgressDerivesCompletion(t *testing.T) {
	assert.True(t, NewProgress("p", 1, 3, 4).Completed())
	assert.False(t, NewProgress("p", 1, 3, 2).Completed())
	assert.True(t, NewChecklist("c", 1, 3, 3).Completed())
}

func TestNegativeAlwaysCosts(t *testing.T) {
	assert.Equal(t, -30, NewNegative("Junk food", 30).Points())
	assert.Equal(t, -30, NewNegative("Junk food", -30).Points())

	g := NewNegative("Junk food", 30)
	for i := 0; i < 3; i++ {
		assert.Equal(t, -30, g.record())
		assert.False(t, g.Completed())
	}
}

func TestEternalNeverCompletes(t *testing.T) {
	g := NewEternal("Pray", 5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 5, g.record())
	}
	assert.False(t, g.Completed())
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name string
		goal Goal
		want string
	}{
		{"simple open", NewSimple("Read Scriptures", 100, false), "[ ] Read Scriptures"},
		{"simple done", NewSimple("Read Scriptures", 100, true), "[X] Read Scriptures"},
		{"eternal", NewEternal("Pray", 5), "[ ] Pray"},
		{"checklist", NewChecklist("Attend Temple", 50, 10, 3), "[ ] Attend Temple (Completed 3/10 times)"},
		{"checklist done", NewChecklist("Attend Temple", 50, 10, 10), "[X] Attend Temple (Completed 10/10 times)"},
		{"progress", NewProgress("Marathon", 10, 42, 7), "[ ] Marathon (Progress 7/42)"},
		{"negative", NewNegative("Doomscroll", 20), "[-] Doomscroll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.goal.Display())
		})
	}
}

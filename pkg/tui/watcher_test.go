package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchFileNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eternal_quest.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	changed := make(chan struct{}, 4)
	stop, err := watchFile(path, func() { changed <- struct{}{} })
	require.NoError(t, err)
	defer stop()

	// unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history.db"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte(`{"score": 1}`), 0644))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("expected change notification")
	}
}

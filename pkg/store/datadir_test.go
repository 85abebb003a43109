package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataDirFor(t *testing.T) {
	home := filepath.Join("home", "ada")

	tests := []struct {
		name string
		goos string
		env  map[string]string
		want string
	}{
		{"macOS", "darwin", nil, filepath.Join(home, "Library", "Application Support", "quest")},
		{"macOS ignores XDG", "darwin", map[string]string{"XDG_DATA_HOME": "/xdg"}, filepath.Join(home, "Library", "Application Support", "quest")},
		{"linux default", "linux", nil, filepath.Join(home, ".local", "share", "quest")},
		{"linux XDG", "linux", map[string]string{"XDG_DATA_HOME": "/custom/data"}, filepath.Join("/custom/data", "quest")},
		{"freebsd follows XDG", "freebsd", map[string]string{"XDG_DATA_HOME": "/xdg"}, filepath.Join("/xdg", "quest")},
		{"windows local", "windows", map[string]string{"LOCALAPPDATA": `C:\Local`, "APPDATA": `C:\Roaming`}, filepath.Join(`C:\Local`, "quest")},
		{"windows roaming", "windows", map[string]string{"APPDATA": `C:\Roaming`}, filepath.Join(`C:\Roaming`, "quest")},
		{"windows home", "windows", nil, filepath.Join(home, "quest")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			assert.Equal(t, tt.want, dataDirFor(tt.goos, home, getenv))
		})
	}
}

func TestDefaultDataDirHonorsXDG(t *testing.T) {
	if filepath.Separator != '/' {
		t.Skip("XDG layout applies to unix systems")
	}
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	if dir := DefaultDataDir(); dir != filepath.Join("/custom/data", "quest") {
		// macOS keeps Application Support regardless of XDG
		assert.Contains(t, dir, filepath.Join("Application Support", "quest"))
	}
}

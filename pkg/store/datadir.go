package store

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "quest"

// dataDirRule says where an OS keeps per-user application data: the first
// non-empty variable in envs, else fallback joined under the home directory.
type dataDirRule struct {
	envs     []string
	fallback []string
}

var dataDirRules = map[string]dataDirRule{
	"darwin":  {fallback: []string{"Library", "Application Support"}},
	"windows": {envs: []string{"LOCALAPPDATA", "APPDATA"}},
	"linux":   {envs: []string{"XDG_DATA_HOME"}, fallback: []string{".local", "share"}},
}

// DefaultDataDir returns where quest keeps its snapshot and history when
// QUEST_DIR is not set, e.g. ~/.local/share/quest on Linux.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return dataDirFor(runtime.GOOS, home, os.Getenv)
}

// dataDirFor resolves the data directory for goos. Unknown systems follow
// the XDG layout.
func dataDirFor(goos, home string, getenv func(string) string) string {
	rule, ok := dataDirRules[goos]
	if !ok {
		rule = dataDirRules["linux"]
	}
	for _, name := range rule.envs {
		if dir := getenv(name); dir != "" {
			return filepath.Join(dir, appName)
		}
	}
	return filepath.Join(append(append([]string{home}, rule.fallback...), appName)...)
}

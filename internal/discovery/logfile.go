package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	// logFileName is the exact name of the target's rotating log file.
	logFileName = "Antigravity.log"

	// maxLogWalkDepth bounds the recursive walk below each root.
	maxLogWalkDepth = 6
)

// FindLatestLog walks the OS-conventional data and config directories for
// the newest Antigravity.log. It returns ok=false when no log exists,
// which is a normal outcome for a target that is not installed or has not
// started. Unreadable subtrees are skipped, not errors.
func FindLatestLog() (string, bool) {
	return findLatestLogIn(logRoots())
}

func findLatestLogIn(roots []string) (string, bool) {
	var (
		best      string
		bestMtime time.Time
		found     bool
	)

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}

		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if walkDepth(root, path) >= maxLogWalkDepth {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Name() != logFileName {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			// Strictly later mtime wins; ties keep the earliest-found so
			// the result is stable under traversal order.
			if !found || info.ModTime().After(bestMtime) {
				best = path
				bestMtime = info.ModTime()
				found = true
			}
			return nil
		})
	}

	return best, found
}

// walkDepth returns how many levels below root the path sits.
func walkDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// logRoots returns the candidate directories holding the target's logs:
// <data dir>/Antigravity/logs and <config dir>/Antigravity/logs.
func logRoots() []string {
	var roots []string
	if dir, ok := dataDir(); ok {
		roots = append(roots, filepath.Join(dir, "Antigravity", "logs"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		roots = append(roots, filepath.Join(dir, "Antigravity", "logs"))
	}
	return roots
}

// dataDir resolves the per-user data directory. On Linux that is
// XDG_DATA_HOME (default ~/.local/share); elsewhere it coincides with the
// user config directory.
func dataDir() (string, bool) {
	if runtime.GOOS == "linux" {
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, true
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		return filepath.Join(home, ".local", "share"), true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return dir, true
}

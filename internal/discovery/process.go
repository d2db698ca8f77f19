package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// targetNameSubstrings identify the desktop application's processes. The
// target ships under two brand names with identical internals.
var targetNameSubstrings = []string{"antigravity", "windsurf"}

// Candidate is one process worth scanning.
type Candidate struct {
	PID  int32
	Name string
}

// FindCandidates enumerates the live process table and returns the
// processes whose image name matches a target substring, PID descending.
// Higher PIDs are scanned first: the token usually lives in the most
// recently spawned renderer or helper process.
func FindCandidates() ([]Candidate, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	var candidates []Candidate
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			// Processes can exit mid-enumeration; skip them.
			continue
		}
		if isTargetName(name) {
			candidates = append(candidates, Candidate{PID: p.Pid, Name: name})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].PID > candidates[j].PID
	})

	return candidates, nil
}

// isTargetName matches a process image name against the target
// substrings, case-insensitively and ignoring a Windows .exe suffix.
func isTargetName(name string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.TrimSuffix(normalized, ".exe")
	for _, sub := range targetNameSubstrings {
		if strings.Contains(normalized, sub) {
			return true
		}
	}
	return false
}

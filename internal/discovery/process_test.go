package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTargetName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Antigravity", true},
		{"antigravity", true},
		{"Antigravity.exe", true},
		{"ANTIGRAVITY.EXE", true},
		{"antigravity-helper", true},
		{"Windsurf", true},
		{"windsurf.exe", true},
		{"  windsurf  ", true},
		{"code", false},
		{"gravity", false},
		{"wind", false},
		{"", false},
		{"antigravity.exe.backup", true}, // substring match, suffix only stripped at the end
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isTargetName(tc.name))
		})
	}
}

func TestFindCandidates_SelfNotMatched(t *testing.T) {
	// The live process table must at least not error, and the test
	// binary itself must never appear as a candidate.
	candidates, err := FindCandidates()
	if err != nil {
		t.Skipf("process enumeration unavailable: %v", err)
	}

	for i := 1; i < len(candidates); i++ {
		assert.Greater(t, candidates[i-1].PID, candidates[i].PID, "candidates must be PID-descending")
	}
}

package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agprobe/agprobe/internal/config"
	"github.com/agprobe/agprobe/internal/memscan"
)

const testToken = "11111111-2222-3333-4444-555555555555"

const testLog = "listening on random port at 42100 for HTTPS\n"

func newTestDiscoverer() *Discoverer {
	d := New(config.DefaultConfig().Scan, zerolog.Nop())
	d.findLog = func() (string, bool) { return "/fake/Antigravity.log", true }
	d.readFile = func(string) ([]byte, error) { return []byte(testLog), nil }
	d.findCandidates = func() ([]Candidate, error) {
		return []Candidate{{PID: 4321, Name: "antigravity"}}, nil
	}
	d.scanProcess = func(pid int32, pat memscan.Pattern) (string, bool, error) {
		return testToken, true, nil
	}
	return d
}

func TestDiscover_Success(t *testing.T) {
	d := newTestDiscoverer()

	res, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint16(42100), res.Port)
	assert.Equal(t, testToken, res.Token)
	assert.Equal(t, int32(4321), res.PID)
	assert.Equal(t, "/fake/Antigravity.log", res.LogPath)
}

func TestDiscover_LogNotFound(t *testing.T) {
	d := newTestDiscoverer()
	d.findLog = func() (string, bool) { return "", false }

	_, err := d.Discover(context.Background())
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestDiscover_PortNotFound(t *testing.T) {
	d := newTestDiscoverer()
	d.readFile = func(string) ([]byte, error) {
		return []byte("log exists but announces nothing"), nil
	}

	_, err := d.Discover(context.Background())
	assert.ErrorIs(t, err, ErrPortNotFound)
}

func TestDiscover_NoCandidateProcess(t *testing.T) {
	d := newTestDiscoverer()
	d.findCandidates = func() ([]Candidate, error) { return nil, nil }

	_, err := d.Discover(context.Background())
	assert.ErrorIs(t, err, ErrNoCandidateProcess)
}

func TestDiscover_DeniedProcessFallsThroughToNext(t *testing.T) {
	d := newTestDiscoverer()
	d.findCandidates = func() ([]Candidate, error) {
		return []Candidate{
			{PID: 5000, Name: "antigravity"},
			{PID: 4000, Name: "antigravity"},
		}, nil
	}
	var scanned []int32
	d.scanProcess = func(pid int32, pat memscan.Pattern) (string, bool, error) {
		scanned = append(scanned, pid)
		if pid == 5000 {
			return "", false, errors.New("permission denied")
		}
		return testToken, true, nil
	}

	res, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testToken, res.Token)
	assert.Equal(t, int32(4000), res.PID)
	assert.Equal(t, []int32{5000, 4000}, scanned)
}

func TestDiscover_AllCandidatesExhausted(t *testing.T) {
	d := newTestDiscoverer()
	d.scanProcess = func(pid int32, pat memscan.Pattern) (string, bool, error) {
		return "", false, nil
	}

	_, err := d.Discover(context.Background())
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestDiscover_DistinctErrorKinds(t *testing.T) {
	// The terminal outcomes must stay distinguishable from each other.
	errs := []error{ErrLogNotFound, ErrPortNotFound, ErrNoCandidateProcess, ErrSecretNotFound}
	for i, a := range errs {
		for j, b := range errs {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func TestDiscover_ContextCancelled(t *testing.T) {
	d := newTestDiscoverer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Discover(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_FirstTokenWins(t *testing.T) {
	d := newTestDiscoverer()
	d.findCandidates = func() ([]Candidate, error) {
		return []Candidate{
			{PID: 9000, Name: "windsurf"},
			{PID: 8000, Name: "antigravity"},
		}, nil
	}
	d.scanProcess = func(pid int32, pat memscan.Pattern) (string, bool, error) {
		if pid == 9000 {
			return testToken, true, nil
		}
		t.Fatal("must not scan past the first hit")
		return "", false, nil
	}

	res, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(9000), res.PID)
}

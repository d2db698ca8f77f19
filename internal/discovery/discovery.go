// Package discovery locates the running Antigravity/Windsurf language
// server without its cooperation: the HTTPS port comes from the
// application's rotating log file, the CSRF token from a read-only scan
// of the process's memory.
//
// Each Discover call is an independent point-in-time lookup. Nothing is
// cached between calls and concurrent calls each pay the full scan cost.
package discovery

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agprobe/agprobe/internal/config"
	"github.com/agprobe/agprobe/internal/memscan"
)

// csrfTokenAnchor is the header name that precedes the token wherever the
// target process holds it in memory.
const csrfTokenAnchor = "x-codeium-csrf-token"

// Result is one successful discovery.
type Result struct {
	// Port is the HTTPS port of the language server.
	Port uint16
	// Token is the CSRF token extracted from process memory.
	Token string
	// LogPath is the log file the port was parsed from.
	LogPath string
	// PID is the process the token was found in.
	PID int32
}

// Discoverer runs the full port+token discovery sequence.
type Discoverer struct {
	pattern memscan.Pattern
	logger  zerolog.Logger

	// Indirection points for tests; the defaults hit the live OS.
	findLog        func() (string, bool)
	readFile       func(string) ([]byte, error)
	findCandidates func() ([]Candidate, error)
	scanProcess    func(pid int32, pat memscan.Pattern) (string, bool, error)
}

// New creates a Discoverer with the given scan budget.
func New(cfg config.ScanConfig, logger zerolog.Logger) *Discoverer {
	scanner := memscan.NewScanner(cfg, logger)
	return &Discoverer{
		pattern:        memscan.NewPattern(csrfTokenAnchor),
		logger:         logger.With().Str("component", "discovery").Logger(),
		findLog:        FindLatestLog,
		readFile:       os.ReadFile,
		findCandidates: FindCandidates,
		scanProcess:    scanner.ScanProcess,
	}
}

// Discover locates the log, parses the HTTPS port, then scans candidate
// processes newest-first until a token surfaces. It blocks on filesystem
// and process-memory I/O and should run where blocking is acceptable.
//
// Terminal failures are the sentinel errors in this package; a denied or
// exhausted candidate process is logged and the next one is tried.
func (d *Discoverer) Discover(ctx context.Context) (*Result, error) {
	logPath, ok := d.findLog()
	if !ok {
		return nil, ErrLogNotFound
	}
	d.logger.Debug().Str("log", logPath).Msg("located log file")

	content, err := d.readFile(logPath)
	if err != nil {
		return nil, fmt.Errorf("read log %s: %w", logPath, err)
	}

	ports := ParsePorts(string(content))
	if !ports.HTTPSOK {
		return nil, ErrPortNotFound
	}
	d.logger.Debug().Uint16("port", ports.HTTPS).Msg("parsed HTTPS port")

	candidates, err := d.findCandidates()
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidateProcess
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		token, found, err := d.scanProcess(c.PID, d.pattern)
		if err != nil {
			d.logger.Warn().Err(err).Int32("pid", c.PID).Str("name", c.Name).
				Msg("process scan failed, trying next candidate")
			continue
		}
		if !found {
			d.logger.Debug().Int32("pid", c.PID).Str("name", c.Name).
				Msg("no token in process")
			continue
		}

		return &Result{
			Port:    ports.HTTPS,
			Token:   token,
			LogPath: logPath,
			PID:     c.PID,
		}, nil
	}

	return nil, ErrSecretNotFound
}

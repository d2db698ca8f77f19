// Package memscan reads another process's memory and searches it for an
// anchored secret value. Region enumeration and bulk reads are implemented
// once per OS behind the ProcessMemory interface; the chunked scan loop
// and the token search are OS-agnostic.
//
// The scanner only ever reads. It never attaches a debugger to the target
// and never writes into its address space.
package memscan

import (
	"github.com/rs/zerolog"

	"github.com/agprobe/agprobe/internal/config"
)

// Region is one contiguous readable mapping in the target's address space.
// Regions are recomputed on every scan, never cached across calls.
type Region struct {
	Start uint64
	End   uint64
}

// Size returns the region length in bytes.
func (r Region) Size() uint64 {
	return r.End - r.Start
}

// ProcessMemory is an open read-only view of one process's address space.
// Implementations exist per OS; all of them preserve the same contract:
// Regions lists readable mappings in address order, ReadAt copies up to
// len(buf) bytes from the given remote address.
type ProcessMemory interface {
	// Regions enumerates the currently mapped readable regions.
	Regions() ([]Region, error)
	// ReadAt reads into buf from the remote address addr. Partial reads
	// are allowed; n reports the bytes actually copied.
	ReadAt(buf []byte, addr uint64) (n int, err error)
	Close() error
}

// Scanner walks a process's readable regions in bounded chunks and hands
// each chunk to the token searcher, stopping at the first hit.
type Scanner struct {
	cfg      config.ScanConfig
	searcher *Searcher
	logger   zerolog.Logger
}

// NewScanner creates a scanner with the given budget.
func NewScanner(cfg config.ScanConfig, logger zerolog.Logger) *Scanner {
	return &Scanner{
		cfg:      cfg,
		searcher: NewSearcher(cfg.Lookahead),
		logger:   logger.With().Str("component", "memscan").Logger(),
	}
}

// ScanProcess opens pid and scans it for a secret anchored by pat.
// It returns the secret and true on a hit, and false when the budget is
// exhausted without one. An error means the OS denied access to the
// process; per-chunk read failures are absorbed and scanning continues.
func (s *Scanner) ScanProcess(pid int32, pat Pattern) (string, bool, error) {
	proc, err := Open(pid)
	if err != nil {
		return "", false, err
	}
	defer func() {
		if cerr := proc.Close(); cerr != nil {
			s.logger.Debug().Err(cerr).Int32("pid", pid).Msg("closing process handle failed")
		}
	}()

	return s.scan(pid, proc, pat)
}

func (s *Scanner) scan(pid int32, proc ProcessMemory, pat Pattern) (string, bool, error) {
	regions, err := proc.Regions()
	if err != nil {
		return "", false, err
	}

	// The overlap guarantees an anchor plus its full lookahead window are
	// contained in at least one chunk even when split across a boundary.
	overlap := pat.MaxLen() + s.cfg.Lookahead
	chunkSize := s.cfg.ChunkSize
	buf := make([]byte, chunkSize)

	s.logger.Debug().
		Int32("pid", pid).
		Int("regions", len(regions)).
		Int("chunk_size", chunkSize).
		Int("overlap", overlap).
		Msg("scanning process memory")

	for _, region := range regions {
		capEnd := region.End
		if capped := region.Start + uint64(s.cfg.MaxRegionBytes); capped < capEnd {
			capEnd = capped
		}

		cursor := region.Start
		for cursor < capEnd {
			remaining := capEnd - cursor
			readLen := chunkSize
			if uint64(readLen) > remaining {
				readLen = int(remaining)
			}

			n, err := proc.ReadAt(buf[:readLen], cursor)
			if err != nil || n == 0 {
				// One failed chunk never aborts the region: skip ahead by a
				// full chunk (minus overlap) and keep going.
				step := uint64(stepSize(readLen, overlap))
				s.logger.Debug().
					Int32("pid", pid).
					Uint64("addr", cursor).
					Err(err).
					Msg("chunk read failed, skipping ahead")
				cursor += step
				continue
			}

			if token, ok := s.searcher.Search(buf[:n], pat); ok {
				return token, true, nil
			}

			cursor += uint64(stepSize(n, overlap))
		}
	}

	return "", false, nil
}

// stepSize computes the cursor advance for a chunk of n bytes, keeping
// overlap bytes of coverage while guaranteeing forward progress even when
// the read was shorter than the overlap.
func stepSize(n, overlap int) int {
	step := n - overlap
	if step < 1 {
		return 1
	}
	return step
}

//go:build linux

package memscan

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// linuxProcess reads a target via /proc/<pid>/maps for region enumeration
// and process_vm_readv(2) for bulk copies. Both require ptrace-read access
// to the target (same user, subject to Yama ptrace_scope).
type linuxProcess struct {
	pid int32
}

// Open prepares a read-only view of pid's address space. Access is probed
// up front so a denied process fails here, not mid-scan.
func Open(pid int32) (ProcessMemory, error) {
	mapsPath := fmt.Sprintf("/proc/%d/maps", pid)
	f, err := os.Open(mapsPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", mapsPath, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", mapsPath, err)
	}
	return &linuxProcess{pid: pid}, nil
}

func (p *linuxProcess) Regions() ([]Region, error) {
	mapsPath := fmt.Sprintf("/proc/%d/maps", p.pid)
	data, err := os.ReadFile(mapsPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", mapsPath, err)
	}
	return parseMapsRegions(bytes.NewReader(data)), nil
}

func (p *linuxProcess) ReadAt(buf []byte, addr uint64) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	local := []unix.Iovec{{Base: &buf[0]}}
	local[0].SetLen(len(buf))
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(buf)}}

	n, err := unix.ProcessVMReadv(int(p.pid), local, remote, 0)
	if err != nil {
		return 0, fmt.Errorf("process_vm_readv pid %d addr 0x%x: %w", p.pid, addr, err)
	}
	return n, nil
}

func (p *linuxProcess) Close() error {
	return nil
}

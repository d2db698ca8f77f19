//go:build windows

package memscan

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// windowsProcess reads a target via OpenProcess / VirtualQueryEx /
// ReadProcessMemory. The handle is held for the duration of one scan.
type windowsProcess struct {
	handle windows.Handle
	pid    int32
}

// Open acquires a query+read handle on pid.
func Open(pid int32) (ProcessMemory, error) {
	h, err := windows.OpenProcess(
		windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ,
		false,
		uint32(pid),
	)
	if err != nil {
		return nil, fmt.Errorf("open process %d: %w", pid, err)
	}
	return &windowsProcess{handle: h, pid: pid}, nil
}

func (p *windowsProcess) Regions() ([]Region, error) {
	var regions []Region

	var addr uintptr
	for {
		var mbi windows.MemoryBasicInformation
		err := windows.VirtualQueryEx(p.handle, addr, &mbi, unsafe.Sizeof(mbi))
		if err != nil {
			// Past the top of the usable address space.
			break
		}

		if mbi.State == windows.MEM_COMMIT && readableProtect(mbi.Protect) {
			start := uint64(mbi.BaseAddress)
			regions = append(regions, Region{Start: start, End: start + uint64(mbi.RegionSize)})
		}

		next := mbi.BaseAddress + mbi.RegionSize
		if next <= addr {
			break
		}
		addr = next
	}

	return regions, nil
}

// readableProtect reports whether a page protection allows plain reads.
// Guard pages are excluded: touching one would raise an exception in the
// target.
func readableProtect(protect uint32) bool {
	if protect&(windows.PAGE_GUARD|windows.PAGE_NOACCESS) != 0 {
		return false
	}
	const readable = windows.PAGE_READONLY |
		windows.PAGE_READWRITE |
		windows.PAGE_WRITECOPY |
		windows.PAGE_EXECUTE_READ |
		windows.PAGE_EXECUTE_READWRITE |
		windows.PAGE_EXECUTE_WRITECOPY
	return protect&readable != 0
}

func (p *windowsProcess) ReadAt(buf []byte, addr uint64) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	var n uintptr
	err := windows.ReadProcessMemory(p.handle, uintptr(addr), &buf[0], uintptr(len(buf)), &n)
	if err != nil {
		return 0, fmt.Errorf("read process memory pid %d addr 0x%x: %w", p.pid, addr, err)
	}
	return int(n), nil
}

func (p *windowsProcess) Close() error {
	return windows.CloseHandle(p.handle)
}

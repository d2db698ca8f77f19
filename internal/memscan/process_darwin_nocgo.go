//go:build darwin && !cgo

package memscan

import "errors"

// Open without cgo cannot reach the Mach VM APIs.
func Open(pid int32) (ProcessMemory, error) {
	return nil, errors.New("memory scanning on macOS requires a cgo-enabled build")
}

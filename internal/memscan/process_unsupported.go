//go:build !linux && !windows && !darwin

package memscan

import (
	"fmt"
	"runtime"
)

func Open(pid int32) (ProcessMemory, error) {
	return nil, fmt.Errorf("memory scanning is not supported on %s", runtime.GOOS)
}

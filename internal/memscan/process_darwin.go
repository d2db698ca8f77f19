//go:build darwin && cgo

package memscan

/*
#include <mach/mach.h>
#include <mach/mach_vm.h>

static kern_return_t agprobe_task_for_pid(int pid, mach_port_t *task) {
	return task_for_pid(mach_task_self(), pid, task);
}

static kern_return_t agprobe_next_region(mach_port_t task, mach_vm_address_t *addr,
		mach_vm_size_t *size, vm_prot_t *prot) {
	vm_region_basic_info_data_64_t info;
	mach_msg_type_number_t count = VM_REGION_BASIC_INFO_COUNT_64;
	mach_port_t object_name = MACH_PORT_NULL;
	kern_return_t kr = mach_vm_region(task, addr, size, VM_REGION_BASIC_INFO_64,
			(vm_region_info_t)&info, &count, &object_name);
	if (object_name != MACH_PORT_NULL) {
		mach_port_deallocate(mach_task_self(), object_name);
	}
	if (kr == KERN_SUCCESS) {
		*prot = info.protection;
	}
	return kr;
}

static kern_return_t agprobe_read_mem(mach_port_t task, mach_vm_address_t addr,
		void *buf, mach_vm_size_t len, mach_vm_size_t *nread) {
	return mach_vm_read_overwrite(task, addr, len, (mach_vm_address_t)(uintptr_t)buf, nread);
}

static void agprobe_release_task(mach_port_t task) {
	mach_port_deallocate(mach_task_self(), task);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// darwinProcess reads a target through its Mach task port. task_for_pid
// requires the caller to be root or hold the debugging entitlement; a
// refusal surfaces from Open as access denied.
type darwinProcess struct {
	task C.mach_port_t
	pid  int32
}

// Open acquires the Mach task port for pid.
func Open(pid int32) (ProcessMemory, error) {
	var task C.mach_port_t
	if kr := C.agprobe_task_for_pid(C.int(pid), &task); kr != C.KERN_SUCCESS {
		return nil, fmt.Errorf("task_for_pid %d: kern_return %d", pid, int(kr))
	}
	return &darwinProcess{task: task, pid: pid}, nil
}

func (p *darwinProcess) Regions() ([]Region, error) {
	var regions []Region

	var addr C.mach_vm_address_t
	for {
		var size C.mach_vm_size_t
		var prot C.vm_prot_t
		kr := C.agprobe_next_region(p.task, &addr, &size, &prot)
		if kr != C.KERN_SUCCESS {
			// KERN_INVALID_ADDRESS marks the end of the address space.
			break
		}

		if prot&C.VM_PROT_READ != 0 && size > 0 {
			regions = append(regions, Region{Start: uint64(addr), End: uint64(addr) + uint64(size)})
		}

		addr += size
	}

	return regions, nil
}

func (p *darwinProcess) ReadAt(buf []byte, addr uint64) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	var nread C.mach_vm_size_t
	kr := C.agprobe_read_mem(p.task, C.mach_vm_address_t(addr),
		unsafe.Pointer(&buf[0]), C.mach_vm_size_t(len(buf)), &nread)
	if kr != C.KERN_SUCCESS {
		return 0, fmt.Errorf("mach_vm_read_overwrite pid %d addr 0x%x: kern_return %d", p.pid, addr, int(kr))
	}
	return int(nread), nil
}

func (p *darwinProcess) Close() error {
	C.agprobe_release_task(p.task)
	return nil
}

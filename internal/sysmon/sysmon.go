// Package sysmon samples system-wide CPU and memory usage so that a large
// calculation can be checked against the memory the machine has free.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	// TotalMem and AvailableMem are in bytes. Both are zero when the
	// platform does not report them.
	TotalMem     uint64
	AvailableMem uint64
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.TotalMem = vmem.Total
		s.AvailableMem = vmem.Available
	}
	return s
}

// Fits reports whether required bytes fit in the available memory of s.
// An unknown amount of available memory always fits.
func (s Stats) Fits(required uint64) bool {
	return s.AvailableMem == 0 || required <= s.AvailableMem
}

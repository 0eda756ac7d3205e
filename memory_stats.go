package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// MemoryStats holds memory usage information for the current process
type MemoryStats struct {
	HeapAllocMB  float64 // currently allocated heap memory (MB)
	RSSMB        float64 // resident set size - actual physical memory used (MB)
	NumGoroutine int
}

// GetMemoryStats returns memory usage for the current process. Works
// cross-platform without CGO.
func GetMemoryStats() (*MemoryStats, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := &MemoryStats{
		HeapAllocMB:  float64(m.Alloc) / 1024 / 1024,
		NumGoroutine: runtime.NumGoroutine(),
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats, err // partial stats if process info fails
	}
	memInfo, err := proc.MemoryInfo()
	if err != nil {
		return stats, err
	}
	stats.RSSMB = float64(memInfo.RSS) / 1024 / 1024

	return stats, nil
}

// String returns a formatted string of memory stats
func (m *MemoryStats) String() string {
	return fmt.Sprintf("RSS=%.1fMB HeapAlloc=%.1fMB Goroutines=%d",
		m.RSSMB, m.HeapAllocMB, m.NumGoroutine)
}

func GetMemoryStatsString() string {
	stats, err := GetMemoryStats()
	if err != nil {
		return fmt.Sprintf("Error getting memory stats: %v", err)
	}
	return stats.String()
}

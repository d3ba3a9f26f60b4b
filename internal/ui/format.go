package ui

import (
	"fmt"
	"strconv"
)

const bytesPerMB = 1024 * 1024

// Percent1 renders a percentage with one decimal, matching the row and
// summary formats ("12.3").
func Percent1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// MemoryMB renders a byte count as megabytes with one decimal, used for
// per-process table rows.
func MemoryMB(bytes uint64) string {
	return strconv.FormatFloat(float64(bytes)/bytesPerMB, 'f', 1, 64)
}

// WholeMB renders a byte count as whole megabytes (truncating division),
// used for the memory summary.
func WholeMB(bytes uint64) string {
	return strconv.FormatUint(bytes/bytesPerMB, 10)
}

// FormatPID renders a pid for display.
func FormatPID(pid int32) string {
	return strconv.FormatInt(int64(pid), 10)
}

// Summary builds the one-line system header: global CPU with core count,
// memory percent with used/total MB, and the displayed process count.
func Summary(cpuPercent float64, cores int, memPercent float64, memUsed, memTotal uint64, processes int) string {
	return fmt.Sprintf("CPU: %s%% (Cores: %d)   Memory: %s%% (%s MB / %s MB)   Processes: %d",
		Percent1(cpuPercent), cores,
		Percent1(memPercent), WholeMB(memUsed), WholeMB(memTotal),
		processes)
}

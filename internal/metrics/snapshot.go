package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// MaxProcesses bounds how many records a snapshot carries. Sampling sorts by
// CPU% before truncating, so the snapshot always holds the busiest processes.
const MaxProcesses = 50

// idleSentinels are kernel bookkeeping placeholders that would otherwise
// dominate the CPU column (the Windows idle pseudo-process reports the unused
// share of every core).
var idleSentinels = map[string]struct{}{
	"system idle process": {},
	"idle":                {},
}

// SystemSample captures host-level utilization for one sampling cycle.
type SystemSample struct {
	CPUPercent float64
	Memory     MemoryStat
}

// MemoryStat holds global memory utilization.
type MemoryStat struct {
	UsedBytes  uint64
	TotalBytes uint64
	Percent    float64
}

// ProcessRecord is one live process as observed during a single cycle. PIDs
// are reused by the OS, so a record identifies a process only within the
// snapshot that contains it.
type ProcessRecord struct {
	PID         int32
	Name        string
	CPUPercent  float64
	MemoryBytes uint64
	Status      string
}

// NewProcessRecord validates raw per-process data at the snapshot boundary so
// the presenter never has to deal with partial records.
func NewProcessRecord(pid int32, name string, cpuPercent float64, memoryBytes uint64, status string) (ProcessRecord, error) {
	if pid < 0 {
		return ProcessRecord{}, fmt.Errorf("invalid pid %d", pid)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ProcessRecord{}, fmt.Errorf("process %d has no name", pid)
	}
	if cpuPercent < 0 {
		cpuPercent = 0
	}
	if status == "" {
		status = "unknown"
	}
	return ProcessRecord{
		PID:         pid,
		Name:        name,
		CPUPercent:  cpuPercent,
		MemoryBytes: memoryBytes,
		Status:      status,
	}, nil
}

// Snapshot is the unit handed from the sampler to the presenter. It is
// immutable after construction; consumers copy before reordering.
type Snapshot struct {
	System     SystemSample
	Processes  []ProcessRecord
	CapturedAt time.Time
}

// RawProcess is per-process data as read from the OS, before normalization
// and validation.
type RawProcess struct {
	PID         int32
	Name        string
	CPUPercent  float64
	MemoryBytes uint64
	Status      string
}

// BuildSnapshot filters, normalizes, sorts, and truncates raw process data
// into a snapshot. Per-process CPU% is divided by coreCount so values share
// the 0-100 scale of the global reading. Records that fail validation or
// match an idle sentinel are dropped; the second return value reports how
// many were dropped for validation reasons.
func BuildSnapshot(system SystemSample, raw []RawProcess, coreCount int, capturedAt time.Time) (*Snapshot, int) {
	if coreCount < 1 {
		coreCount = 1
	}
	skipped := 0
	records := make([]ProcessRecord, 0, len(raw))
	for _, p := range raw {
		if _, ok := idleSentinels[strings.ToLower(strings.TrimSpace(p.Name))]; ok {
			continue
		}
		rec, err := NewProcessRecord(p.PID, p.Name, p.CPUPercent/float64(coreCount), p.MemoryBytes, p.Status)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	// Stable keeps enumeration order for equal CPU readings.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CPUPercent > records[j].CPUPercent
	})
	if len(records) > MaxProcesses {
		records = records[:MaxProcesses]
	}
	return &Snapshot{
		System:     system,
		Processes:  records,
		CapturedAt: capturedAt,
	}, skipped
}

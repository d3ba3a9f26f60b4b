package metrics

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Source reads raw metrics from the operating system. The sampler depends on
// this interface so tests can substitute deterministic data.
type Source interface {
	// CPUPercent measures global CPU utilization over the given window,
	// already normalized across cores to a 0-100 scale.
	CPUPercent(ctx context.Context, window time.Duration) (float64, error)
	// Memory reports global memory utilization.
	Memory(ctx context.Context) (MemoryStat, error)
	// Processes enumerates live processes. Individual processes that vanish
	// or deny access mid-enumeration are skipped, not errors.
	Processes(ctx context.Context) ([]RawProcess, error)
	// CPUCount returns the logical core count, queried once at startup.
	CPUCount(ctx context.Context) (int, error)
}

// systemSource is the gopsutil-backed Source used in production.
type systemSource struct{}

// NewSystemSource returns a Source reading live OS metrics via gopsutil.
func NewSystemSource() Source {
	return systemSource{}
}

func (systemSource) CPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, nil
	}
	return percents[0], nil
}

func (systemSource) Memory(ctx context.Context) (MemoryStat, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStat{}, err
	}
	return MemoryStat{
		UsedBytes:  vm.Used,
		TotalBytes: vm.Total,
		Percent:    vm.UsedPercent,
	}, nil
}

func (systemSource) Processes(ctx context.Context) ([]RawProcess, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	raw := make([]RawProcess, 0, len(procs))
	for _, p := range procs {
		// Enumerating processes is inherently racy: any of these reads can
		// fail because the process exited or denies access. Skip and move on.
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		cpuPercent, err := p.CPUPercentWithContext(ctx)
		if err != nil {
			continue
		}
		var rss uint64
		if memInfo, err := p.MemoryInfoWithContext(ctx); err == nil && memInfo != nil {
			rss = memInfo.RSS
		}
		status := ""
		if statuses, err := p.StatusWithContext(ctx); err == nil && len(statuses) > 0 {
			status = statuses[0]
		}
		raw = append(raw, RawProcess{
			PID:         p.Pid,
			Name:        name,
			CPUPercent:  cpuPercent,
			MemoryBytes: rss,
			Status:      status,
		})
	}
	return raw, nil
}

func (systemSource) CPUCount(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

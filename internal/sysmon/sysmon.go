// Package sysmon samples host CPU and memory load for run metrics.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	apperrors "github.com/agbru/breakfast/internal/errors"
)

// Snapshot holds one host-wide resource reading.
type Snapshot struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sampler takes host snapshots.
type Sampler interface {
	Sample(ctx context.Context) (Snapshot, error)
}

// HostSampler reads the running host through gopsutil.
type HostSampler struct{}

// Sample returns CPU usage since the previous call (interval 0) and current
// memory usage. A partial snapshot is returned together with the first error.
func (HostSampler) Sample(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	cpuPcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return s, apperrors.WrapError(err, "sample cpu")
	}
	if len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return s, apperrors.WrapError(err, "sample memory")
	}
	if vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s, nil
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(ctx context.Context) (Snapshot, error)

// Sample calls f.
func (f SamplerFunc) Sample(ctx context.Context) (Snapshot, error) { return f(ctx) }

package monitor

import (
	"context"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"liftoff/internal/app/telemetry"
	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

// Stats contains process resource statistics
type Stats struct {
	CPU float64
	MEM float64 // in MB
}

// Monitor samples the controller's own process and publishes the
// readings for the dashboard footer
type Monitor interface {
	Start(ctx context.Context)
	GetStats(ctx context.Context) (Stats, error)
}

// monitor implements the Monitor interface
type monitor struct {
	bus telemetry.Bus
	log logger.Logger
}

// NewMonitor creates a new Monitor instance
func NewMonitor(bus telemetry.Bus, log logger.Logger) Monitor {
	return &monitor{
		bus: bus,
		log: log.WithComponent("MONITOR"),
	}
}

// Start samples periodically until the context ends
func (m *monitor) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(config.StatsInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats, err := m.GetStats(ctx)
				if err != nil {
					m.log.Debug().Err(err).Msg("Stats sample failed")
					continue
				}

				m.bus.Publish(telemetry.Event{
					Type: telemetry.EventStatsSampled,
					Data: telemetry.StatsSampledData{CPU: stats.CPU, MEM: stats.MEM},
				})
			}
		}
	}()
}

// GetStats retrieves CPU and memory statistics for this process
func (m *monitor) GetStats(ctx context.Context) (Stats, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())) // #nosec G115 -- PIDs fit in int32
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{}

	cpuPercent, err := proc.CPUPercentWithContext(ctx)
	if err == nil {
		stats.CPU = cpuPercent
	}

	memInfo, err := proc.MemoryInfoWithContext(ctx)
	if err == nil {
		stats.MEM = float64(memInfo.RSS) / 1024 / 1024
	}

	return stats, nil
}

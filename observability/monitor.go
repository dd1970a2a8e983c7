package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Stats aggregates the counters exposed by the health endpoint.
type Stats struct {
	JobsGenerated uint64  `json:"jobs_generated"`
	JobsImages    uint64  `json:"jobs_images"`
	JobsMerged    uint64  `json:"jobs_merged"`
	Failures      uint64  `json:"failures"`
	BytesOut      uint64  `json:"bytes_out"`
	AllocMemMb    uint64  `json:"alloc_mem_mb"`
	NumGC         uint32  `json:"num_gc"`
	CPUPercent    float64 `json:"cpu_percent"`
	RAMPercent    float32 `json:"ram_percent"`
	UptimeSeconds int64   `json:"uptime_seconds"`
}

// Monitor keeps real-time counters for the service. Counters are atomic,
// a snapshot is assembled on demand.
type Monitor struct {
	log     *slog.Logger
	started time.Time

	jobsGenerated uint64
	jobsImages    uint64
	jobsMerged    uint64
	failures      uint64
	bytesOut      uint64
}

func NewMonitor(log *slog.Logger) *Monitor {
	return &Monitor{log: log, started: time.Now()}
}

func (m *Monitor) IncrGenerated(bytes int) {
	atomic.AddUint64(&m.jobsGenerated, 1)
	atomic.AddUint64(&m.bytesOut, uint64(bytes))
}

func (m *Monitor) IncrImages(bytes int) {
	atomic.AddUint64(&m.jobsImages, 1)
	atomic.AddUint64(&m.bytesOut, uint64(bytes))
}

func (m *Monitor) IncrMerged(bytes int) {
	atomic.AddUint64(&m.jobsMerged, 1)
	atomic.AddUint64(&m.bytesOut, uint64(bytes))
}

func (m *Monitor) IncrFailures() {
	atomic.AddUint64(&m.failures, 1)
}

// Snapshot collects the counters plus process-level CPU/RAM figures.
// Process metrics are best effort: a failed probe logs and reports zero
// rather than failing the health check.
func (m *Monitor) Snapshot() Stats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := Stats{
		JobsGenerated: atomic.LoadUint64(&m.jobsGenerated),
		JobsImages:    atomic.LoadUint64(&m.jobsImages),
		JobsMerged:    atomic.LoadUint64(&m.jobsMerged),
		Failures:      atomic.LoadUint64(&m.failures),
		BytesOut:      atomic.LoadUint64(&m.bytesOut),
		AllocMemMb:    mem.Alloc / 1024 / 1024,
		NumGC:         mem.NumGC,
		UptimeSeconds: int64(time.Since(m.started).Seconds()),
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		m.log.Debug("process probe failed", "err", err)
		return stats
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	} else {
		m.log.Debug("cpu probe failed", "err", err)
	}
	if ram, err := proc.MemoryPercent(); err == nil {
		stats.RAMPercent = ram
	} else {
		m.log.Debug("ram probe failed", "err", err)
	}
	return stats
}

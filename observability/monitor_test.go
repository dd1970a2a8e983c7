package observability

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestMonitor_Counters(t *testing.T) {
	req := require.New(t)
	m := NewMonitor(logs.GetLoggerFromLevel(slog.LevelDebug))

	m.IncrGenerated(100)
	m.IncrGenerated(50)
	m.IncrImages(25)
	m.IncrMerged(10)
	m.IncrFailures()

	stats := m.Snapshot()
	req.Equal(uint64(2), stats.JobsGenerated)
	req.Equal(uint64(1), stats.JobsImages)
	req.Equal(uint64(1), stats.JobsMerged)
	req.Equal(uint64(1), stats.Failures)
	req.Equal(uint64(185), stats.BytesOut)
}

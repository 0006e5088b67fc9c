package observability

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"med-lab/contract"
)

const (
	updateInterval   = 1 * time.Second
	recentIngestions = 20
)

// IngestionInfo is one recently processed upload, shown on the debug page.
type IngestionInfo struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Status    string `json:"status"`
	Chunks    int    `json:"chunks"`
	Timestamp string `json:"timestamp"`
}

// Stats aggregates the service counters for the debug page.
type Stats struct {
	DocumentsIngested uint64 `json:"documents_ingested"`
	ChunksStored      uint64 `json:"chunks_stored"`
	IngestionFailures uint64 `json:"ingestion_failures"`

	QueueDepth    int `json:"queue_depth"`
	QueueCapacity int `json:"queue_capacity"`

	AllocMemMb uint64 `json:"alloc_mem_mb"`
	NumGC      uint32 `json:"num_gc"`

	RecentIngestions []IngestionInfo `json:"recent_ingestions"`
}

// Monitor collects ingestion metrics from the workers and keeps an
// aggregated snapshot fresh for the debug page.
type Monitor struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats Stats

	// Cumulative counters, bumped atomically from the workers
	DocumentsIngested uint64
	ChunksStored      uint64
	IngestionFailures uint64

	queueLen      func() int
	queueCapacity int
}

var _ contract.Worker = (*Monitor)(nil)

// NewMonitor builds a monitor that samples the upload queue through
// queueLen. A nil queueLen leaves the queue gauges at zero.
func NewMonitor(log *slog.Logger, queueLen func() int, queueCapacity int) *Monitor {
	return &Monitor{
		log:           log,
		queueLen:      queueLen,
		queueCapacity: queueCapacity,
		latestStats: Stats{
			QueueCapacity:    queueCapacity,
			RecentIngestions: make([]IngestionInfo, 0),
		},
	}
}

func (m *Monitor) IncrDocumentsIngested() {
	atomic.AddUint64(&m.DocumentsIngested, 1)
}

func (m *Monitor) AddChunksStored(n uint64) {
	atomic.AddUint64(&m.ChunksStored, n)
}

func (m *Monitor) IncrIngestionFailures() {
	atomic.AddUint64(&m.IngestionFailures, 1)
}

// RecordIngestion prepends one processed upload to the recent list,
// keeping only the last few entries.
func (m *Monitor) RecordIngestion(id, source, status string, chunks int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info := IngestionInfo{
		ID:        id,
		Source:    source,
		Status:    status,
		Chunks:    chunks,
		Timestamp: time.Now().Format("15:04:05"),
	}

	m.latestStats.RecentIngestions = append([]IngestionInfo{info}, m.latestStats.RecentIngestions...)
	if len(m.latestStats.RecentIngestions) > recentIngestions {
		m.latestStats.RecentIngestions = m.latestStats.RecentIngestions[:recentIngestions]
	}
}

// Run keeps the snapshot fresh until the context is canceled. It
// satisfies the worker contract so the supervisor manages it like any
// other worker.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info("Monitoring stopped")
			return ctx.Err()
		case <-ticker.C:
			m.updateStats()
		}
	}
}

func (m *Monitor) updateStats() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.latestStats.DocumentsIngested = atomic.LoadUint64(&m.DocumentsIngested)
	m.latestStats.ChunksStored = atomic.LoadUint64(&m.ChunksStored)
	m.latestStats.IngestionFailures = atomic.LoadUint64(&m.IngestionFailures)

	if m.queueLen != nil {
		m.latestStats.QueueDepth = m.queueLen()
	}
	m.latestStats.QueueCapacity = m.queueCapacity

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	m.latestStats.AllocMemMb = mem.Alloc / 1024 / 1024
	m.latestStats.NumGC = mem.NumGC
}

// GetLatest returns the last aggregated snapshot.
func (m *Monitor) GetLatest() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.latestStats
}

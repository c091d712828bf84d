package searcher

import (
	"sync/atomic"
	"time"
)

// MoveMetrics summarizes one ComputeNextMove call.
type MoveMetrics struct {
	StartTime  time.Time
	Duration   time.Duration
	Playouts   int64
	Rollouts   int64
	TreeReused bool
}

type MetricsCollector interface {
	Start()
	AddPlayout()
	AddRollout()
	ReusedTree()
	Complete() MoveMetrics
}

type metricsCollector struct {
	startTime  time.Time
	playouts   atomic.Int64
	rollouts   atomic.Int64
	treeReused atomic.Bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.playouts.Store(0)
	m.rollouts.Store(0)
}

func (m *metricsCollector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *metricsCollector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *metricsCollector) ReusedTree() {
	m.treeReused.Store(true)
}

func (m *metricsCollector) Complete() MoveMetrics {
	return MoveMetrics{
		StartTime:  m.startTime,
		Duration:   time.Since(m.startTime),
		Playouts:   m.playouts.Load(),
		Rollouts:   m.rollouts.Load(),
		TreeReused: m.treeReused.Swap(false),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                {}
func (m *noMetricsCollector) AddPlayout()           {}
func (m *noMetricsCollector) AddRollout()           {}
func (m *noMetricsCollector) ReusedTree()           {}
func (m *noMetricsCollector) Complete() MoveMetrics { return MoveMetrics{} }

package metrics

import (
	"math"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	EnsembleSize        int
	Duration            time.Duration
	Episodes            int
	FullPlayouts        int
	Batches             int
	IterationsPerSecond float64
}

type MoveMetric struct {
	Step     int
	Action   string
	Reward   float64 // Reward after the move and the environment's response
	Nodes    int
	MinDepth int
	MaxDepth int
	SearchMetric
}

type GameMetric struct {
	Seed       uint64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Reward     float64
	Terminal   bool // False if stopped by the move limit
}

// Collector gathers the metrics of one search. Start resets it.
type Collector interface {
	Start(ensembleSize int)
	AddEpisode()
	AddFullPlayout()
	AddBatch(iterationsPerSecond float64)
	Complete() SearchMetric
}

type collector struct {
	ensembleSize int
	startTime    time.Time
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
	batches      atomic.Int64
	rate         atomic.Uint64 // math.Float64bits of the latest estimate
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(ensembleSize int) {
	m.ensembleSize = ensembleSize
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.batches.Store(0)
	m.rate.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddBatch(iterationsPerSecond float64) {
	m.batches.Add(1)
	m.rate.Store(math.Float64bits(iterationsPerSecond))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		EnsembleSize:        m.ensembleSize,
		Duration:            time.Since(m.startTime),
		Episodes:            int(m.episodes.Load()),
		FullPlayouts:        int(m.fullPlayouts.Load()),
		Batches:             int(m.batches.Load()),
		IterationsPerSecond: math.Float64frombits(m.rate.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(ensembleSize int)               {}
func (m *dummyCollector) AddEpisode()                          {}
func (m *dummyCollector) AddFullPlayout()                      {}
func (m *dummyCollector) AddBatch(iterationsPerSecond float64) {}
func (m *dummyCollector) Complete() SearchMetric               { return SearchMetric{} }

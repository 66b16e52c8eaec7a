package searcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"mcts/experiments/metrics"
)

// Default batch band of SearchTime
const (
	MinBatch    = 10
	MaxBatch    = 100
	BatchCutoff = 5
)

type settings struct {
	seed        uint64
	minBatch    int
	maxBatch    int
	batchCutoff int
	metrics     metrics.Collector
}

type Option func(s *settings)

// WithSeed fixes the seed the ensemble members' generators derive from.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *settings) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// WithBatchLimits sets the batch band of SearchTime: the first batch is
// clamped to [minBatch, maxBatch], later ones to [0, maxBatch], and the search
// stops once a projected batch falls below cutoff.
func WithBatchLimits(minBatch, maxBatch, cutoff int) Option {
	return func(s *settings) {
		if minBatch > 0 {
			s.minBatch = minBatch
		}
		if maxBatch > 0 {
			s.maxBatch = maxBatch
		}
		if cutoff > 0 {
			s.batchCutoff = cutoff
		}
	}
}

type member[A comparable, S State[A, S]] struct {
	root  *Node[A, S]
	state S // Never mutated by search
	rng   *rand.Rand
}

// Ensemble runs independent searches over differently seeded clones of one
// game state and pools their root statistics.
type Ensemble[A comparable, S State[A, S]] struct {
	settings
	size                int
	members             []member[A, S]
	iterationsPerSecond float64
	err                 error // Sticky until AdvanceGame
}

func New[A comparable, S State[A, S]](state S, size int, options ...Option) *Ensemble[A, S] {
	if size < 0 {
		panic("ensemble size cannot be negative")
	}
	e := &Ensemble[A, S]{ // Default values
		settings: settings{
			seed:        uint64(time.Now().UnixNano()),
			minBatch:    MinBatch,
			maxBatch:    MaxBatch,
			batchCutoff: BatchCutoff,
			metrics:     metrics.NewDummyCollector(),
		},
		size:                size,
		iterationsPerSecond: 1.0,
	}
	for _, option := range options {
		option(&e.settings)
	}
	if e.minBatch > e.maxBatch {
		panic("minimum batch cannot exceed maximum batch")
	}
	e.AdvanceGame(state)
	return e
}

// AdvanceGame discards all trees and clones and rebuilds the ensemble from
// state. Member i searches a clone reseeded with i.
func (e *Ensemble[A, S]) AdvanceGame(state S) {
	e.members = make([]member[A, S], e.size)
	for i := range e.members {
		clone := state.Clone()
		clone.SetRNGSeed(uint64(i))
		e.members[i] = member[A, S]{
			root:  newRoot[A, S](),
			state: clone,
			rng:   rand.New(rand.NewSource(e.seed + uint64(i))),
		}
	}
	e.err = nil
}

func (e *Ensemble[A, S]) Size() int {
	return e.size
}

// Root returns the tree of member i.
func (e *Ensemble[A, S]) Root(i int) *Node[A, S] {
	return e.members[i].root
}

// IterationsPerSecond is the per-member sampling rate measured by SearchTime.
func (e *Ensemble[A, S]) IterationsPerSecond() float64 {
	return e.iterationsPerSecond
}

// Search runs samples iterations on every member, each on a fresh clone of
// the member's state.
func (e *Ensemble[A, S]) Search(samples int, c float64) error {
	if e.err != nil {
		return e.err
	}
	for i := range e.members {
		m := &e.members[i]
		for j := 0; j < samples; j++ {
			if _, err := m.root.iterate(m.state.Clone(), c, m.rng, e.metrics); err != nil {
				e.err = fmt.Errorf("ensemble member %d: %w", i, err)
				return e.err
			}
			e.metrics.AddEpisode()
		}
	}
	return nil
}

// SearchTime searches in batches until budget is spent. Batch sizes come from
// the measured rate, so the clock is read once per batch. Cancelling ctx stops
// the search before the next batch.
func (e *Ensemble[A, S]) SearchTime(ctx context.Context, budget time.Duration, c float64) error {
	if len(e.members) == 0 {
		return nil
	}
	start := time.Now()
	samples := clamp(int(e.iterationsPerSecond*budget.Seconds()), e.minBatch, e.maxBatch)
	total := 0

	for samples >= e.batchCutoff {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Search(samples, c); err != nil {
			return err
		}
		total += samples

		elapsed := time.Since(start)
		if elapsed > 0 {
			e.iterationsPerSecond = float64(total) / elapsed.Seconds()
		}
		e.metrics.AddBatch(e.iterationsPerSecond)

		left := budget - elapsed
		if left <= 0 {
			break
		}
		samples = clamp(int(e.iterationsPerSecond*left.Seconds()), 0, e.maxBatch)
		log.Debug().Msgf("searched %d samples at %.0f/s, %v left, next batch %d", total, e.iterationsPerSecond, left, samples)
	}

	if event := log.Trace(); event.Enabled() {
		var sb strings.Builder
		for i := range e.members {
			_ = e.members[i].root.Dump(&sb)
		}
		event.Msg(sb.String())
	}
	return nil
}

type actionStats struct {
	visits  int
	rewards float64
}

// BestAction pools visits and rewards of each root action over all members
// and returns the action with the best mean. Ties go to the action seen first,
// in member order then expansion order. ok is false if no member has
// expanded anything yet.
func (e *Ensemble[A, S]) BestAction() (action A, ok bool) {
	var order []A
	pooled := make(map[A]*actionStats)
	for _, m := range e.members {
		for _, child := range m.root.children {
			stats, seen := pooled[child.action]
			if !seen {
				stats = &actionStats{}
				pooled[child.action] = stats
				order = append(order, child.action)
			}
			stats.visits += child.visits
			stats.rewards += child.rewards
		}
	}

	bestMean := 0.0
	for _, candidate := range order {
		stats := pooled[candidate]
		if stats.visits == 0 {
			continue
		}
		mean := stats.rewards / float64(stats.visits)
		if !ok || mean > bestMean {
			action, bestMean, ok = candidate, mean, true
		}
	}
	return action, ok
}

// TreeStatistics pools the shape of all member trees. A fresh ensemble
// reports one node per member at depth 0.
func (e *Ensemble[A, S]) TreeStatistics() TreeStatistics {
	stats := make([]TreeStatistics, len(e.members))
	for i, m := range e.members {
		stats[i] = m.root.Statistics()
	}
	return combineStatistics(stats)
}

// BestPaths returns the greedy principal line of every member.
func (e *Ensemble[A, S]) BestPaths() [][]A {
	paths := make([][]A, len(e.members))
	for i, m := range e.members {
		paths[i] = m.root.BestPath()
	}
	return paths
}

func clamp(value, lo, hi int) int {
	return max(lo, min(value, hi))
}

// Package benchmark holds benchmark runs and their per-model aggregates.
package benchmark

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Benchmark is a single scored run of a model on a benchmark type.
type Benchmark struct {
	id       int64
	modelID  int64
	kind     string
	score    float64
	maxScore *float64
	runAt    time.Time
	metadata map[string]any
}

// New validates and creates a benchmark that has not been persisted yet.
func New(kind string, score float64, maxScore *float64, runAt time.Time, metadata map[string]any) (Benchmark, error) {
	if kind == "" {
		return Benchmark{}, fmt.Errorf("benchmark type is required")
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return Benchmark{}, fmt.Errorf("benchmark %s: score must be finite", kind)
	}
	if maxScore != nil && (math.IsNaN(*maxScore) || math.IsInf(*maxScore, 0)) {
		return Benchmark{}, fmt.Errorf("benchmark %s: max score must be finite", kind)
	}
	return Reconstruct(0, 0, kind, score, maxScore, runAt, metadata), nil
}

// Reconstruct restores a benchmark from storage without validation.
func Reconstruct(
	id, modelID int64, kind string, score float64, maxScore *float64, runAt time.Time, metadata map[string]any,
) Benchmark {
	return Benchmark{
		id:       id,
		modelID:  modelID,
		kind:     kind,
		score:    score,
		maxScore: maxScore,
		runAt:    runAt,
		metadata: metadata,
	}
}

func (b Benchmark) ID() int64                { return b.id }
func (b Benchmark) ModelID() int64           { return b.modelID }
func (b Benchmark) Type() string             { return b.kind }
func (b Benchmark) Score() float64           { return b.score }
func (b Benchmark) MaxScore() *float64       { return b.maxScore }
func (b Benchmark) RunAt() time.Time         { return b.runAt }
func (b Benchmark) Metadata() map[string]any { return b.metadata }

// SortNewestFirst orders benchmarks by run time descending, id descending on equal timestamps.
func SortNewestFirst(bs []Benchmark) {
	sort.SliceStable(bs, func(i, j int) bool {
		if !bs[i].runAt.Equal(bs[j].runAt) {
			return bs[i].runAt.After(bs[j].runAt)
		}
		return bs[i].id > bs[j].id
	})
}

package benchmark

// Summary is the mean score over at least one benchmark row.
type Summary struct {
	averageScore float64
	count        int
}

// NewSummary builds a summary. ok is false when count is zero: there is no data to summarize.
func NewSummary(averageScore float64, count int) (s Summary, ok bool) {
	if count <= 0 {
		return Summary{}, false
	}
	return Summary{averageScore: averageScore, count: count}, true
}

// Summarize computes the arithmetic mean of the scores. ok is false for an empty list.
func Summarize(bs []Benchmark) (s Summary, ok bool) {
	if len(bs) == 0 {
		return Summary{}, false
	}
	var sum float64
	for _, b := range bs {
		sum += b.score
	}
	return NewSummary(sum/float64(len(bs)), len(bs))
}

func (s Summary) AverageScore() float64 { return s.averageScore }
func (s Summary) Count() int            { return s.count }

// Aggregation always answers: Average is nil when Count is zero.
type Aggregation struct {
	Average *float64
	Count   int
}

// AggregationOf converts an optional summary into an aggregation.
func AggregationOf(s Summary, ok bool) Aggregation {
	if !ok {
		return Aggregation{}
	}
	avg := s.averageScore
	return Aggregation{Average: &avg, Count: s.count}
}

package chi

import "net/http"

// ListBenchmarks handles GET /benchmarks/models/{modelId}.
func (s *Server) ListBenchmarks(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam[int64](r, "modelId")
	if err != nil {
		s.badParam(w, r, "modelId", err)
		return
	}

	rows, err := s.benchmarks.ListForModel(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]benchmarkResponse, len(rows))
	for i, b := range rows {
		items[i] = benchmarkToResponse(b)
	}
	writeJSON(w, http.StatusOK, items)
}

// BenchmarkSummary handles GET /benchmarks/models/{modelId}/summary.
// A model without benchmarks answers 404 no_benchmark_data.
func (s *Server) BenchmarkSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam[int64](r, "modelId")
	if err != nil {
		s.badParam(w, r, "modelId", err)
		return
	}

	summary, err := s.benchmarks.SummaryForModel(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		ModelID:      id,
		AverageScore: summary.AverageScore(),
		Count:        summary.Count(),
	})
}

// BenchmarkAggregation handles GET /benchmarks/models/{modelId}/aggregation.
func (s *Server) BenchmarkAggregation(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam[int64](r, "modelId")
	if err != nil {
		s.badParam(w, r, "modelId", err)
		return
	}

	agg, err := s.benchmarks.AggregationForModel(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, aggregationResponse{
		ModelID:      id,
		AverageScore: agg.Average,
		Count:        agg.Count,
	})
}

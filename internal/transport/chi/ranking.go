package chi

import (
	"encoding/json"
	"net/http"

	"github.com/kailas-cloud/modelcatalog/internal/domain/match"
	"github.com/kailas-cloud/modelcatalog/internal/domain/suggestion"
)

const maxRequestBody = 1 << 20

// MatchModels handles POST /matching.
func (s *Server) MatchModels(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	params := match.Params{TaskDescription: req.TaskDescription, Limit: req.Limit}
	if req.Constraints != nil {
		params.MaxPrice = req.Constraints.MaxPricePerMillionTokens
	}
	if req.Preferences != nil {
		params.CostWeight = req.Preferences.CostWeight
	}

	mreq, err := match.NewRequest(params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results, err := s.matching.MatchModelsForTask(r.Context(), mreq)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]matchResultResponse, len(results))
	for i, res := range results {
		items[i] = matchResultToResponse(res)
	}
	writeJSON(w, http.StatusOK, matchResponse{
		TaskDescription: mreq.TaskDescription(),
		Results:         items,
	})
}

// SuggestionsForModel handles GET /suggestions/{modelId}.
func (s *Server) SuggestionsForModel(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam[int64](r, "modelId")
	if err != nil {
		s.badParam(w, r, "modelId", err)
		return
	}

	results, err := s.suggestions.SuggestionsForID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionsToResponse(id, results))
}

// SuggestionsForIdentity handles GET /suggestions/{name}/{version}.
func (s *Server) SuggestionsForIdentity(w http.ResponseWriter, r *http.Request) {
	name, version, ok := s.identityParams(w, r)
	if !ok {
		return
	}

	ref, err := s.catalog.ModelByIdentity(r.Context(), name, version)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results, err := s.suggestions.SuggestionsForID(r.Context(), ref.ID())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionsToResponse(ref.ID(), results))
}

func suggestionsToResponse(modelID int64, results []suggestion.Result) suggestionsResponse {
	items := make([]suggestionResponse, len(results))
	for i, res := range results {
		items[i] = suggestionToResponse(res)
	}
	return suggestionsResponse{ModelID: modelID, Suggestions: items}
}

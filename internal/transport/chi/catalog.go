package chi

import (
	"net/http"

	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
)

// ListModels handles GET /catalog/models.
// search= runs a fuzzy lookup; name= filters by exact model name.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	search, err := queryParam[string](r, "search")
	if err != nil {
		s.badParam(w, r, "search", err)
		return
	}
	limit, err := queryParam[int](r, "limit")
	if err != nil {
		s.badParam(w, r, "limit", err)
		return
	}
	name, err := queryParam[string](r, "name")
	if err != nil {
		s.badParam(w, r, "name", err)
		return
	}

	var models []catalog.Model
	switch {
	case search != nil:
		n := 0
		if limit != nil {
			n = *limit
		}
		models, err = s.catalog.SearchModels(r.Context(), *search, n)
	case name != nil:
		models, err = s.catalog.Models(r.Context(), *name)
	default:
		models, err = s.catalog.Models(r.Context(), "")
	}
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, modelsToResponse(models))
}

// GetModel handles GET /catalog/models/{modelId}.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam[int64](r, "modelId")
	if err != nil {
		s.badParam(w, r, "modelId", err)
		return
	}

	m, err := s.catalog.Model(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, modelToResponse(m))
}

// GetModelByIdentity handles GET /catalog/models/{name}/{version}.
func (s *Server) GetModelByIdentity(w http.ResponseWriter, r *http.Request) {
	name, version, ok := s.identityParams(w, r)
	if !ok {
		return
	}

	m, err := s.catalog.ModelByIdentity(r.Context(), name, version)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, modelToResponse(m))
}

// ListProviders handles GET /catalog/providers. With name= it answers a single provider.
func (s *Server) ListProviders(w http.ResponseWriter, r *http.Request) {
	name, err := queryParam[string](r, "name")
	if err != nil {
		s.badParam(w, r, "name", err)
		return
	}

	if name != nil {
		p, err := s.catalog.Provider(r.Context(), *name)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, providerToResponse(p))
		return
	}

	ps, err := s.catalog.Providers(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	items := make([]providerResponse, len(ps))
	for i, p := range ps {
		items[i] = providerToResponse(p)
	}
	writeJSON(w, http.StatusOK, items)
}

// ListFields handles GET /catalog/fields. With name= it answers a single field.
func (s *Server) ListFields(w http.ResponseWriter, r *http.Request) {
	name, err := queryParam[string](r, "name")
	if err != nil {
		s.badParam(w, r, "name", err)
		return
	}

	if name != nil {
		f, err := s.catalog.Field(r.Context(), *name)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, fieldToResponse(f))
		return
	}

	fs, err := s.catalog.Fields(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	items := make([]fieldResponse, len(fs))
	for i, f := range fs {
		items[i] = fieldToResponse(f)
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) identityParams(w http.ResponseWriter, r *http.Request) (name, version string, ok bool) {
	name, err := pathParam[string](r, "name")
	if err != nil {
		s.badParam(w, r, "name", err)
		return "", "", false
	}
	version, err = pathParam[string](r, "version")
	if err != nil {
		s.badParam(w, r, "version", err)
		return "", "", false
	}
	return name, version, true
}

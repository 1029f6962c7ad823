package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/targetlink/targetlink/domain/association"
)

// AssociationsRouter serves read access to stored associations.
type AssociationsRouter struct {
	store  association.Store
	logger *slog.Logger
}

// NewAssociationsRouter creates an AssociationsRouter.
func NewAssociationsRouter(store association.Store, logger *slog.Logger) *AssociationsRouter {
	return &AssociationsRouter{store: store, logger: logger}
}

// Routes returns the chi router for association endpoints.
func (r *AssociationsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Get("/{id}", r.Get)

	return router
}

// Get handles GET /api/v1/associations/{id}.
func (r *AssociationsRouter) Get(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")

	a, err := r.store.Get(req.Context(), id)
	if err != nil {
		writeError(w, err, r.logger)
		return
	}
	writeJSON(w, http.StatusOK, buildAssociation(a))
}

// List handles GET /api/v1/associations?target=<id>. Results are ordered by
// harmonic-sum overall score descending.
func (r *AssociationsRouter) List(w http.ResponseWriter, req *http.Request) {
	targetID := req.URL.Query().Get("target")
	if targetID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "target query parameter is required"})
		return
	}

	found, err := r.store.FindByTarget(req.Context(), targetID)
	if err != nil {
		writeError(w, fmt.Errorf("list associations: %w", err), r.logger)
		return
	}

	items := make([]associationResponse, len(found))
	for i, a := range found {
		items[i] = buildAssociation(a)
	}
	writeJSON(w, http.StatusOK, listResponse{Total: len(items), Data: items})
}

type listResponse struct {
	Total int                   `json:"total"`
	Data  []associationResponse `json:"data"`
}

type associationResponse struct {
	ID       string                   `json:"id"`
	IsDirect bool                     `json:"is_direct"`
	Target   targetResponse           `json:"target"`
	Disease  diseaseResponse          `json:"disease"`
	Scores   map[string]scoreResponse `json:"association_score"`
	Counts   countResponse            `json:"evidence_count"`
	Facets   facetResponse            `json:"facets"`
}

type targetResponse struct {
	ID              string   `json:"id"`
	Symbol          string   `json:"approved_symbol,omitempty"`
	Name            string   `json:"approved_name,omitempty"`
	Biotype         string   `json:"biotype,omitempty"`
	PathwayCodes    []string `json:"pathway_codes,omitempty"`
	GOTerms         []string `json:"go_terms,omitempty"`
	UniprotKeywords []string `json:"uniprot_keywords,omitempty"`
}

type diseaseResponse struct {
	ID               string   `json:"id"`
	Label            string   `json:"label,omitempty"`
	Path             []string `json:"path,omitempty"`
	TherapeuticAreas []string `json:"therapeutic_areas,omitempty"`
}

type scoreResponse struct {
	Overall     float64            `json:"overall"`
	Datatypes   map[string]float64 `json:"datatypes"`
	Datasources map[string]float64 `json:"datasources"`
}

type countResponse struct {
	Total       float64            `json:"total"`
	Datatypes   map[string]float64 `json:"datatypes"`
	Datasources map[string]float64 `json:"datasources"`
}

type facetResponse struct {
	Datatypes   []string `json:"datatypes"`
	Datasources []string `json:"datasources"`
}

func buildAssociation(a association.Association) associationResponse {
	scores := make(map[string]scoreResponse, 3)
	for method, s := range a.Scores() {
		scores[method.String()] = scoreResponse{
			Overall:     s.Overall(),
			Datatypes:   s.Datatypes(),
			Datasources: s.Datasources(),
		}
	}

	target := a.Target()
	dis := a.Disease()
	counts := a.EvidenceCount()

	return associationResponse{
		ID:       a.ID(),
		IsDirect: a.IsDirect(),
		Target: targetResponse{
			ID:              target.ID,
			Symbol:          target.Symbol,
			Name:            target.Name,
			Biotype:         target.Biotype,
			PathwayCodes:    target.PathwayCodes,
			GOTerms:         target.GOTerms,
			UniprotKeywords: target.UniprotKeywords,
		},
		Disease: diseaseResponse{
			ID:               dis.ID,
			Label:            dis.Label,
			Path:             dis.Path,
			TherapeuticAreas: dis.TherapeuticAreas,
		},
		Scores: scores,
		Counts: countResponse{
			Total:       counts.Total(),
			Datatypes:   counts.Datatypes(),
			Datasources: counts.Datasources(),
		},
		Facets: facetResponse{
			Datatypes:   a.Facets().Datatypes(),
			Datasources: a.Facets().Datasources(),
		},
	}
}

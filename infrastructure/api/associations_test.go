package api_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/targetlink/targetlink/domain/association"
	"github.com/targetlink/targetlink/infrastructure/api"
	"github.com/targetlink/targetlink/infrastructure/persistence"
	"github.com/targetlink/targetlink/internal/testdb"
)

func newTestServer(t *testing.T) (*httptest.Server, *persistence.AssociationStore) {
	t.Helper()

	db := testdb.New(t)
	store := persistence.NewAssociationStore(db)

	server := api.NewServer("127.0.0.1:0", slog.Default())
	api.NewAPIServer(store, slog.Default()).MountRoutes(server.Router())

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts, store
}

func storedAssociation(targetID, diseaseID string, overall float64) association.Association {
	return association.ReconstructAssociation(
		association.Target{ID: targetID, Symbol: "BRAF"},
		association.Disease{ID: diseaseID, Label: "melanoma"},
		true,
		map[association.Method]association.Score{
			association.MethodHarmonicSum: association.ReconstructScore(
				overall,
				map[string]float64{"known_drug": overall},
				map[string]float64{"chembl": overall},
			),
		},
		association.ReconstructEvidenceCount(2,
			map[string]float64{"known_drug": 2},
			map[string]float64{"chembl": 2},
		),
		association.ReconstructFacets([]string{"known_drug"}, []string{"chembl"}),
	)
}

func TestAssociations_Get(t *testing.T) {
	ts, store := newTestServer(t)

	require.NoError(t, store.SaveBatch(context.Background(), []association.Association{
		storedAssociation("ENSG01", "EFO_1", 0.7),
	}))

	resp, err := http.Get(ts.URL + "/api/v1/associations/ENSG01-EFO_1")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		ID       string `json:"id"`
		IsDirect bool   `json:"is_direct"`
		Target   struct {
			Symbol string `json:"approved_symbol"`
		} `json:"target"`
		Scores map[string]struct {
			Overall float64 `json:"overall"`
		} `json:"association_score"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "ENSG01-EFO_1", body.ID)
	assert.True(t, body.IsDirect)
	assert.Equal(t, "BRAF", body.Target.Symbol)
	assert.InDelta(t, 0.7, body.Scores["harmonic-sum"].Overall, 1e-9)
}

func TestAssociations_Get_NotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/associations/ENSG99-EFO_99")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAssociations_List(t *testing.T) {
	ts, store := newTestServer(t)

	require.NoError(t, store.SaveBatch(context.Background(), []association.Association{
		storedAssociation("ENSG01", "EFO_1", 0.3),
		storedAssociation("ENSG01", "EFO_2", 0.9),
		storedAssociation("ENSG02", "EFO_1", 0.5),
	}))

	resp, err := http.Get(ts.URL + "/api/v1/associations?target=ENSG01")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total int `json:"total"`
		Data  []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Equal(t, 2, body.Total)
	assert.Equal(t, "ENSG01-EFO_2", body.Data[0].ID)
	assert.Equal(t, "ENSG01-EFO_1", body.Data[1].ID)
}

func TestAssociations_List_MissingTarget(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/associations")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

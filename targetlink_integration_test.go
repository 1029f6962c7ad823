package targetlink_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	targetlink "github.com/targetlink/targetlink"
	"github.com/targetlink/targetlink/application/loader"
	"github.com/targetlink/targetlink/domain/association"
)

func newClient(t *testing.T) *targetlink.Client {
	t.Helper()

	dir := t.TempDir()
	client, err := targetlink.New(
		targetlink.WithDataDir(dir),
		targetlink.WithSQLite(filepath.Join(dir, "test.db")),
		targetlink.WithWorkerCount(2),
		targetlink.WithMetricsRegisterer(prometheus.NewRegistry()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestClient_LoadScoreAndRead(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()
	dir := t.TempDir()

	evidencePath := writeFile(t, dir, "evidence.jsonl",
		`{"target_id":"ENSG01","disease_id":"EFO_1","datasource":"gwas_catalog","score":0.8,"efo_codes":["EFO_1","EFO_0"]}
{"target_id":"ENSG01","disease_id":"EFO_1","datasource":"chembl","score":0.6,"efo_codes":["EFO_1","EFO_0"]}
{"target_id":"ENSG01","disease_id":"EFO_1","datasource":"chembl","score":0.4,"efo_codes":["EFO_1","EFO_0"]}
`)
	genesPath := writeFile(t, dir, "genes.jsonl",
		`{"id":"ENSG01","approved_symbol":"BRAF","biotype":"protein_coding"}
`)
	diseasesPath := writeFile(t, dir, "diseases.jsonl",
		`{"id":"EFO_1","label":"melanoma","path":["EFO_0","EFO_1"]}
{"id":"EFO_0","label":"neoplasm","path":["EFO_0"]}
`)

	loadStats, err := client.Load(ctx, loader.KindEvidence, evidencePath)
	require.NoError(t, err)
	assert.Equal(t, 3, loadStats.Loaded)

	_, err = client.Load(ctx, loader.KindGenes, genesPath)
	require.NoError(t, err)
	_, err = client.Load(ctx, loader.KindDiseases, diseasesPath)
	require.NoError(t, err)

	scoreStats, err := client.Score(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, scoreStats.Targets)
	assert.Equal(t, int64(2), scoreStats.Stored)

	got, err := client.Associations.Get(ctx, "ENSG01-EFO_1")
	require.NoError(t, err)

	hs, ok := got.ScoreFor(association.MethodHarmonicSum)
	require.True(t, ok)
	assert.InDelta(t, 1.175, hs.Overall(), 1e-9)
	assert.Equal(t, "BRAF", got.Target().Symbol)
	assert.Equal(t, "melanoma", got.Disease().Label)

	indirect, err := client.Associations.Get(ctx, "ENSG01-EFO_0")
	require.NoError(t, err)
	assert.False(t, indirect.IsDirect())
	assert.Equal(t, "neoplasm", indirect.Disease().Label)
}

func TestClient_CloseTwice(t *testing.T) {
	client := newClient(t)

	require.NoError(t, client.Close())
	assert.ErrorIs(t, client.Close(), targetlink.ErrClientClosed)
}

func TestClient_ScoreAfterClose(t *testing.T) {
	client := newClient(t)
	require.NoError(t, client.Close())

	_, err := client.Score(context.Background())
	assert.ErrorIs(t, err, targetlink.ErrClientClosed)
}

func TestClient_CustomRegistry(t *testing.T) {
	dir := t.TempDir()

	scoringPath := writeFile(t, dir, "scoring.yaml",
		`datasources:
  my_source:
    datatype: genetic_association
    weight: 0.5
`)

	client, err := targetlink.New(
		targetlink.WithDataDir(dir),
		targetlink.WithSQLite(filepath.Join(dir, "test.db")),
		targetlink.WithScoringConfig(scoringPath),
		targetlink.WithMetricsRegisterer(prometheus.NewRegistry()),
	)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.Equal(t, []string{"my_source"}, client.Registry().Datasources())
	assert.InDelta(t, 0.5, client.Registry().WeightOf("my_source"), 1e-12)
}

func TestClient_LoadAfterClose(t *testing.T) {
	client := newClient(t)
	require.NoError(t, client.Close())

	_, err := client.Load(context.Background(), loader.KindEvidence, "nope.jsonl")
	assert.ErrorIs(t, err, targetlink.ErrClientClosed)
}

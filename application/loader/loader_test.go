package loader_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/targetlink/targetlink/application/loader"
	"github.com/targetlink/targetlink/domain/evidence"
	"github.com/targetlink/targetlink/infrastructure/persistence"
	"github.com/targetlink/targetlink/internal/config"
	"github.com/targetlink/targetlink/internal/log"
	"github.com/targetlink/targetlink/internal/testdb"
)

func newLoader(t *testing.T) (*loader.Loader, *persistence.EvidenceStore, *persistence.GeneStore, *persistence.DiseaseStore) {
	t.Helper()
	db := testdb.New(t)

	evidenceStore := persistence.NewEvidenceStore(db)
	geneStore := persistence.NewGeneStore(db)
	diseaseStore := persistence.NewDiseaseStore(db)
	logger := log.NewLoggerWithWriter(io.Discard, config.LogFormatJSON, "ERROR")

	return loader.New(evidenceStore, geneStore, diseaseStore, 2, logger), evidenceStore, geneStore, diseaseStore
}

func TestLoader_Evidence(t *testing.T) {
	l, evidenceStore, _, _ := newLoader(t)
	ctx := context.Background()

	input := strings.Join([]string{
		`{"target_id":"ENSG01","disease_id":"EFO_1","datasource":"gwas_catalog","score":0.8,"efo_codes":["EFO_1","EFO_0"]}`,
		`{"target_id":"ENSG01","disease_id":"EFO_2","datasource":"chembl","score":0.6,"efo_codes":["EFO_2"]}`,
		`{"target_id":"ENSG02","disease_id":"EFO_1","datasource":"eva","score":0.4}`,
	}, "\n")

	stats, err := l.Load(ctx, loader.KindEvidence, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Loaded)
	assert.Zero(t, stats.Skipped)

	count, err := evidenceStore.CountForTarget(ctx, "ENSG01")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLoader_Evidence_SelfCodeAdded(t *testing.T) {
	l, evidenceStore, _, _ := newLoader(t)
	ctx := context.Background()

	_, err := l.Load(ctx, loader.KindEvidence, strings.NewReader(
		`{"target_id":"ENSG02","disease_id":"EFO_1","datasource":"eva","score":0.4}`,
	))
	require.NoError(t, err)

	var codes []string
	require.NoError(t, evidenceStore.ForTarget(ctx, "ENSG02", func(e evidence.Evidence) error {
		codes = e.EFOCodes()
		return nil
	}))
	assert.Equal(t, []string{"EFO_1"}, codes)
}

func TestLoader_Evidence_SkipsBadLines(t *testing.T) {
	l, _, _, _ := newLoader(t)

	input := strings.Join([]string{
		`{"target_id":"ENSG01","disease_id":"EFO_1","datasource":"eva","score":0.4}`,
		`not json`,
		`{"disease_id":"EFO_1","datasource":"eva","score":0.4}`,
		``,
	}, "\n")

	stats, err := l.Load(context.Background(), loader.KindEvidence, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Loaded)
	assert.Equal(t, 2, stats.Skipped)
}

func TestLoader_Genes(t *testing.T) {
	l, _, geneStore, _ := newLoader(t)
	ctx := context.Background()

	input := strings.Join([]string{
		`{"id":"ENSG01","approved_symbol":"BRAF","biotype":"protein_coding","go_terms":["GO:0004672"]}`,
		`{"id":"ENSG02","approved_symbol":"TP53"}`,
		`{"approved_symbol":"NOID"}`,
	}, "\n")

	stats, err := l.Load(ctx, loader.KindGenes, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, 1, stats.Skipped)

	g, err := geneStore.Get(ctx, "ENSG01")
	require.NoError(t, err)
	assert.Equal(t, "BRAF", g.ApprovedSymbol())
	assert.Equal(t, []string{"GO:0004672"}, g.GOTerms())
}

func TestLoader_Diseases(t *testing.T) {
	l, _, _, diseaseStore := newLoader(t)
	ctx := context.Background()

	input := `{"id":"EFO_1","label":"melanoma","path":["EFO_0","EFO_1"],"therapeutic_areas":["EFO_0"]}`

	stats, err := l.Load(ctx, loader.KindDiseases, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Loaded)

	d, err := diseaseStore.Get(ctx, "EFO_1")
	require.NoError(t, err)
	assert.Equal(t, "melanoma", d.Label())
	assert.Equal(t, []string{"EFO_0", "EFO_1"}, d.Path())
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"evidence", "genes", "diseases"} {
		kind, err := loader.ParseKind(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(kind))
	}

	_, err := loader.ParseKind("proteins")
	assert.Error(t, err)
}

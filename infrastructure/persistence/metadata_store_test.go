package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/targetlink/targetlink/domain/disease"
	"github.com/targetlink/targetlink/domain/gene"
	"github.com/targetlink/targetlink/infrastructure/persistence"
	"github.com/targetlink/targetlink/internal/testdb"
)

func TestGeneStore_SaveAndGet(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewGeneStore(db)
	ctx := context.Background()

	g := gene.NewGene(
		"ENSG00000157764",
		"BRAF",
		"B-Raf proto-oncogene",
		"protein_coding",
		[]string{"R-HSA-5683057"},
		[]string{"GO:0004672"},
		[]string{"Kinase"},
	)
	require.NoError(t, store.SaveBatch(ctx, []gene.Gene{g}))

	got, err := store.Get(ctx, "ENSG00000157764")
	require.NoError(t, err)
	assert.Equal(t, "BRAF", got.ApprovedSymbol())
	assert.Equal(t, []string{"R-HSA-5683057"}, got.PathwayCodes())
	assert.Equal(t, []string{"Kinase"}, got.UniprotKeywords())
}

func TestGeneStore_Get_NotFound(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewGeneStore(db)

	_, err := store.Get(context.Background(), "ENSG_MISSING")
	require.ErrorIs(t, err, gene.ErrNotFound)
}

func TestGeneStore_SaveBatch_Upserts(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewGeneStore(db)
	ctx := context.Background()

	require.NoError(t, store.SaveBatch(ctx, []gene.Gene{
		gene.NewGene("ENSG01", "OLD", "", "", nil, nil, nil),
	}))
	require.NoError(t, store.SaveBatch(ctx, []gene.Gene{
		gene.NewGene("ENSG01", "NEW", "", "", nil, nil, nil),
	}))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "NEW", all[0].ApprovedSymbol())
}

func TestDiseaseStore_SaveAndGet(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewDiseaseStore(db)
	ctx := context.Background()

	d := disease.NewDisease(
		"EFO_0000616",
		"neoplasm",
		[]string{"EFO_0000616"},
		[]string{"EFO_0000616"},
	)
	require.NoError(t, store.SaveBatch(ctx, []disease.Disease{d}))

	got, err := store.Get(ctx, "EFO_0000616")
	require.NoError(t, err)
	assert.Equal(t, "neoplasm", got.Label())
	assert.Equal(t, []string{"EFO_0000616"}, got.Path())
}

func TestDiseaseStore_Get_NotFound(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewDiseaseStore(db)

	_, err := store.Get(context.Background(), "EFO_MISSING")
	require.ErrorIs(t, err, disease.ErrNotFound)
}

func TestDiseaseStore_All(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewDiseaseStore(db)
	ctx := context.Background()

	require.NoError(t, store.SaveBatch(ctx, []disease.Disease{
		disease.NewDisease("EFO_1", "one", nil, nil),
		disease.NewDisease("EFO_2", "two", nil, nil),
	}))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

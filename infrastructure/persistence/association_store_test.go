package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/targetlink/targetlink/domain/association"
	"github.com/targetlink/targetlink/infrastructure/persistence"
	"github.com/targetlink/targetlink/internal/testdb"
)

func makeAssociation(targetID, diseaseID string, overall float64) association.Association {
	return association.ReconstructAssociation(
		association.Target{
			ID:      targetID,
			Symbol:  "BRAF",
			Name:    "B-Raf proto-oncogene",
			Biotype: "protein_coding",
			GOTerms: []string{"GO:0004672"},
		},
		association.Disease{
			ID:    diseaseID,
			Label: "melanoma",
			Path:  []string{"EFO_0000616", diseaseID},
		},
		true,
		map[association.Method]association.Score{
			association.MethodHarmonicSum: association.ReconstructScore(
				overall,
				map[string]float64{"genetic_association": overall},
				map[string]float64{"gwas_catalog": overall},
			),
			association.MethodMax: association.ReconstructScore(
				overall,
				map[string]float64{"genetic_association": overall},
				map[string]float64{"gwas_catalog": overall},
			),
		},
		association.ReconstructEvidenceCount(3,
			map[string]float64{"genetic_association": 3},
			map[string]float64{"gwas_catalog": 3},
		),
		association.ReconstructFacets([]string{"genetic_association"}, []string{"gwas_catalog"}),
	)
}

func TestAssociationStore_SaveAndGet(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAssociationStore(db)
	ctx := context.Background()

	a := makeAssociation("ENSG01", "EFO_1", 0.75)
	require.NoError(t, store.SaveBatch(ctx, []association.Association{a}))

	got, err := store.Get(ctx, "ENSG01-EFO_1")
	require.NoError(t, err)

	assert.Equal(t, a.ID(), got.ID())
	assert.Equal(t, "BRAF", got.Target().Symbol)
	assert.Equal(t, "melanoma", got.Disease().Label)
	assert.True(t, got.IsDirect())

	hs, ok := got.ScoreFor(association.MethodHarmonicSum)
	require.True(t, ok)
	assert.InDelta(t, 0.75, hs.Overall(), 1e-12)
	assert.InDelta(t, 0.75, hs.Datasource("gwas_catalog"), 1e-12)

	_, ok = got.ScoreFor(association.MethodMax)
	assert.True(t, ok)

	assert.InDelta(t, 3, got.EvidenceCount().Total(), 1e-12)
	assert.Equal(t, []string{"genetic_association"}, got.Facets().Datatypes())
}

func TestAssociationStore_Get_NotFound(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAssociationStore(db)

	_, err := store.Get(context.Background(), "ENSG99-EFO_99")
	require.ErrorIs(t, err, association.ErrNotFound)
}

func TestAssociationStore_SaveBatch_Upserts(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAssociationStore(db)
	ctx := context.Background()

	require.NoError(t, store.SaveBatch(ctx, []association.Association{
		makeAssociation("ENSG01", "EFO_1", 0.5),
	}))
	require.NoError(t, store.SaveBatch(ctx, []association.Association{
		makeAssociation("ENSG01", "EFO_1", 0.9),
	}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := store.Get(ctx, "ENSG01-EFO_1")
	require.NoError(t, err)
	hs, _ := got.ScoreFor(association.MethodHarmonicSum)
	assert.InDelta(t, 0.9, hs.Overall(), 1e-12)
}

func TestAssociationStore_FindByTarget_OrderedByScore(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAssociationStore(db)
	ctx := context.Background()

	require.NoError(t, store.SaveBatch(ctx, []association.Association{
		makeAssociation("ENSG01", "EFO_1", 0.3),
		makeAssociation("ENSG01", "EFO_2", 0.9),
		makeAssociation("ENSG01", "EFO_3", 0.6),
		makeAssociation("ENSG02", "EFO_1", 0.8),
	}))

	got, err := store.FindByTarget(ctx, "ENSG01")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "ENSG01-EFO_2", got[0].ID())
	assert.Equal(t, "ENSG01-EFO_3", got[1].ID())
	assert.Equal(t, "ENSG01-EFO_1", got[2].ID())
}

func TestAssociationStore_DeleteAll(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAssociationStore(db)
	ctx := context.Background()

	require.NoError(t, store.SaveBatch(ctx, []association.Association{
		makeAssociation("ENSG01", "EFO_1", 0.5),
		makeAssociation("ENSG02", "EFO_2", 0.6),
	}))
	require.NoError(t, store.DeleteAll(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAssociationStore_Flush(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAssociationStore(db)

	require.NoError(t, store.Flush(context.Background()))
}

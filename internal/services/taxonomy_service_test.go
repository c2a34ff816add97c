package services_test

import (
	"context"
	"strings"
	"testing"

	"tasnif/internal/models"
	"tasnif/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyService_Snapshot(t *testing.T) {
	ts := seedTaxonomy()
	svc := services.NewTaxonomyService(ts)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "Genel", snapshot[0].Name)
	assert.Equal(t, "Yazılım Dünyası", snapshot[1].Name)
	require.Len(t, snapshot[1].Subcategories, 3)
	assert.Equal(t, "Frontend Geliştirme", snapshot[1].Subcategories[0].Name)
}

func TestTaxonomyService_SnapshotDropsEmptyCategories(t *testing.T) {
	ts := newFakeTaxonomyStore()
	ts.seed("Genel", "Genel")
	ts.seed("Boş Kategori") // no subcategories
	svc := services.NewTaxonomyService(ts)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Genel", snapshot[0].Name)
}

func TestTaxonomyService_SnapshotEmptyTaxonomy(t *testing.T) {
	svc := services.NewTaxonomyService(newFakeTaxonomyStore())

	_, err := svc.Snapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestTaxonomyService_ImportFromYAML(t *testing.T) {
	doc := `
categories:
  - name: Genel
    subcategories: [Genel]
  - name: Yazılım Dünyası
    subcategories:
      - Frontend Geliştirme
      - Backend Geliştirme
`
	ts := newFakeTaxonomyStore()
	svc := services.NewTaxonomyService(ts)

	cats, subs, err := svc.ImportFromYAML(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, cats)
	assert.Equal(t, 3, subs)

	// A second import is a no-op for existing entries.
	cats, subs, err = svc.ImportFromYAML(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 0, cats)
	assert.Equal(t, 0, subs)
}

func TestTaxonomyService_ImportInvalidYAML(t *testing.T) {
	svc := services.NewTaxonomyService(newFakeTaxonomyStore())

	_, _, err := svc.ImportFromYAML(context.Background(), strings.NewReader("categories: {broken"))
	require.Error(t, err)

	_, _, err = svc.ImportFromYAML(context.Background(), strings.NewReader("categories: []"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

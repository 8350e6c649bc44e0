package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"foodgram/internal/model/sql"
	"foodgram/internal/service"
	"foodgram/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *service.CatalogService {
	t.Helper()
	repo := sql.NewGormRepository(testutils.SetupTestDB(t))
	return service.NewCatalogService(repo, service.NewValidator())
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ingredients.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportFileLoadsRows(t *testing.T) {
	catalog := newCatalog(t)

	inserted, err := importFile(context.Background(), catalog, writeCSV(t, "flour,g\nmilk,ml\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)
}

func TestImportFileReportsFailures(t *testing.T) {
	catalog := newCatalog(t)

	_, err := importFile(context.Background(), catalog, filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = importFile(context.Background(), catalog, writeCSV(t, "flour,g,extra\n"))
	assert.True(t, service.IsKind(err, service.KindValidation), "got %v", err)
}

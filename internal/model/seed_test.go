package model_test

import (
	"context"
	"testing"

	"foodgram/internal/config"
	"foodgram/internal/entity/db"
	"foodgram/internal/model"
	"foodgram/internal/model/sql"
	"foodgram/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultTagsIsIdempotent(t *testing.T) {
	gormDB := testutils.SetupTestDB(t)
	repo := sql.NewGormRepository(gormDB)
	testutils.CreateTestTag(t, gormDB, "lunch")
	cfg := config.Config{SeedDefaultTags: true}

	require.NoError(t, model.SeedDefaultTags(context.Background(), repo, cfg))
	require.NoError(t, model.SeedDefaultTags(context.Background(), repo, cfg))

	tags, err := repo.ListTags(context.Background())
	require.NoError(t, err)
	slugs := make([]string, 0, len(tags))
	for _, tag := range tags {
		slugs = append(slugs, tag.Slug)
	}
	assert.ElementsMatch(t, []string{"lunch", "breakfast", "dinner"}, slugs)
}

func TestSeedDefaultTagsDisabled(t *testing.T) {
	gormDB := testutils.SetupTestDB(t)
	repo := sql.NewGormRepository(gormDB)

	require.NoError(t, model.SeedDefaultTags(context.Background(), repo, config.Config{}))

	var count int64
	require.NoError(t, gormDB.Model(&db.Tag{}).Count(&count).Error)
	assert.Zero(t, count)
}

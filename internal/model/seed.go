package model

import (
	"context"
	"foodgram/internal/config"
	"foodgram/internal/entity/db"
	"strings"
)

// defaultTags 是首次启动时写入的标签。
var defaultTags = []db.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
}

// SeedDefaultTags ensures the default tags exist. Tags that already exist by
// slug are left untouched.
func SeedDefaultTags(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil || !cfg.SeedDefaultTags {
		return nil
	}

	existing, err := repo.ListTags(ctx)
	if err != nil {
		return err
	}
	existingSlugs := make(map[string]struct{}, len(existing))
	for _, tag := range existing {
		existingSlugs[strings.ToLower(strings.TrimSpace(tag.Slug))] = struct{}{}
	}

	for _, seed := range defaultTags {
		if _, ok := existingSlugs[seed.Slug]; ok {
			continue
		}
		tag := seed
		if err := repo.CreateTag(ctx, &tag); err != nil {
			return err
		}
	}
	return nil
}

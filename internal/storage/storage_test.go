package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foodgram/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildObjectPath(t *testing.T) {
	key := buildObjectPath("Recipes", "Pumpkin Soup!", ".PNG")

	parts := strings.Split(key, "/")
	require.Len(t, parts, 5)
	assert.Equal(t, "recipes", parts[0])
	assert.Equal(t, "pumpkin-soup.png", parts[4])
}

func TestBuildObjectPathDefaults(t *testing.T) {
	key := buildObjectPath("", "", "")

	assert.True(t, strings.HasPrefix(key, "misc/"))
	assert.True(t, strings.HasSuffix(key, ".bin"))
}

func TestJoinPrefix(t *testing.T) {
	assert.Equal(t, "media/recipes/a.png", joinPrefix("/media/", "/recipes/a.png"))
	assert.Equal(t, "recipes/a.png", joinPrefix("  ", "recipes/a.png"))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/png", detectContentType("png"))
	assert.Equal(t, "application/octet-stream", detectContentType("unknownext"))
}

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, []byte("image-bytes"), SaveOptions{Category: "recipes", BaseName: "abc", Extension: "jpg"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "recipes/"))
	assert.True(t, strings.HasSuffix(key, "/abc.jpg"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStorageRejectsEmptyPayload(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), nil, SaveOptions{Category: "recipes"})
	assert.Error(t, err)
}

func TestLocalStorageDeleteStaysInsideBaseDir(t *testing.T) {
	parent := t.TempDir()
	outside := filepath.Join(parent, "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	store, err := NewLocalStorage(filepath.Join(parent, "media"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "../keep.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestURLResolver(t *testing.T) {
	resolve := NewURLResolver("/files/")

	assert.Equal(t, "/files/recipes/a.png", resolve("recipes/a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", resolve("https://cdn.example.com/a.png"))
	assert.Equal(t, "", resolve(" "))
}

func TestNewStorageValidatesConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
	}{
		{name: "s3 without bucket", cfg: config.Config{StorageType: TypeS3}},
		{name: "oss without endpoint", cfg: config.Config{StorageType: TypeOSS}},
		{name: "cos without url", cfg: config.Config{StorageType: TypeCOS}},
		{name: "r2 without bucket", cfg: config.Config{StorageType: TypeR2}},
		{name: "unknown type", cfg: config.Config{StorageType: "ftp"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStorage(tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewStorageLocal(t *testing.T) {
	store, err := NewStorage(config.Config{StorageType: TypeLocal, StorageLocalDir: t.TempDir()})
	require.NoError(t, err)

	_, ok := store.(LocalBaseDirProvider)
	assert.True(t, ok)
}

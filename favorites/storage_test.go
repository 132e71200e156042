package favorites

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	storage := NewMemoryStorage()

	_, err := storage.Get("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	value := []byte("[]")
	require.NoError(t, storage.Set("k", value))
	value[0] = 'x'

	got, err := storage.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), got, "storage keeps its own copy")
}

func TestFileStorage(t *testing.T) {
	fs := afero.NewMemMapFs()
	storage := NewFileStorage(fs, "/home/user/.kobis")

	_, err := storage.Get(StorageKey)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, storage.Set(StorageKey, []byte(`[{"movieCd":"1"}]`)))

	exists, err := afero.Exists(fs, "/home/user/.kobis/kobis-favorites.json")
	require.NoError(t, err)
	assert.True(t, exists)

	tmpExists, err := afero.Exists(fs, "/home/user/.kobis/kobis-favorites.json.tmp")
	require.NoError(t, err)
	assert.False(t, tmpExists)

	got, err := storage.Get(StorageKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"movieCd":"1"}]`, string(got))

	require.NoError(t, storage.Set(StorageKey, []byte(`[]`)))
	got, err = storage.Get(StorageKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestFileStorageRejectsBadKeys(t *testing.T) {
	storage := NewFileStorage(afero.NewMemMapFs(), "/data")

	for _, key := range []string{"", "..", "../escape", `a\b`} {
		assert.Error(t, storage.Set(key, []byte("x")), key)
		_, err := storage.Get(key)
		assert.Error(t, err, key)
	}
}

func TestStoreOverFileStorage(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := Open(NewFileStorage(fs, "/data"), zerolog.Nop(), WithClock(fixedClock()))
	store.Add(Movie{MovieCd: "20190001", MovieNm: "기생충", GenreAlt: "드라마,스릴러"})
	store.Add(Movie{MovieCd: "20190002", MovieNm: "극한직업", GenreAlt: "드라마,코미디"})

	reopened := Open(NewFileStorage(fs, "/data"), zerolog.Nop())
	assert.Equal(t, store.List(), reopened.List())
	assert.Equal(t, []string{"드라마", "스릴러", "코미디"}, reopened.Genres())
}

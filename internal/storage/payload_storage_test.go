package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"PhraseAudioService/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceBlob(t *testing.T) {
	store := NewPayloadStore(config.StorageModeBlob, "")

	rec, err := store.Place(1, 2, []byte("wav"))
	require.NoError(t, err)
	assert.Equal(t, []byte("wav"), rec.Audio)
	assert.Empty(t, rec.AudioPath)
}

func TestPlacePathWritesFreshFile(t *testing.T) {
	dir := t.TempDir()
	store := NewPayloadStore(config.StorageModePath, dir)

	first, err := store.Place(1, 2, []byte("first take"))
	require.NoError(t, err)
	second, err := store.Place(1, 2, []byte("second"))
	require.NoError(t, err)

	assert.NotEqual(t, first.AudioPath, second.AudioPath)
	assert.Equal(t, filepath.Join(dir, "user_1"), filepath.Dir(second.AudioPath))
	assert.True(t, strings.HasPrefix(filepath.Base(second.AudioPath), "phrase_2_"))
	assert.Equal(t, ".wav", filepath.Ext(second.AudioPath))
	assert.Nil(t, second.Audio)

	// 이전 파일은 그대로 남아야 함
	data, err := os.ReadFile(first.AudioPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("first take"), data)
	data, err = os.ReadFile(second.AudioPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	entries, err := os.ReadDir(filepath.Join(dir, "user_1"))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files may remain")
}

func TestPlacePathConcurrentWriters(t *testing.T) {
	store := NewPayloadStore(config.StorageModePath, t.TempDir())
	payloads := []string{"aaaaaaaaaaaaaaaa", "bbbb", "cccccccccc"}

	var wg sync.WaitGroup
	for _, p := range payloads {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			rec, err := store.Place(4, 4, []byte(p))
			if !assert.NoError(t, err) {
				return
			}
			data, err := os.ReadFile(rec.AudioPath)
			if assert.NoError(t, err) {
				assert.Equal(t, p, string(data))
			}
		}(p)
	}
	wg.Wait()
}

func TestDiscard(t *testing.T) {
	dir := t.TempDir()
	store := NewPayloadStore(config.StorageModePath, dir)

	rec, err := store.Place(5, 6, []byte("wav"))
	require.NoError(t, err)

	require.NoError(t, store.Discard(rec.AudioPath))
	_, err = os.Stat(rec.AudioPath)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Discard(rec.AudioPath), "already removed")
	assert.NoError(t, store.Discard(""))

	outside := filepath.Join(t.TempDir(), "other.wav")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0644))
	assert.Error(t, store.Discard(outside))
	assert.FileExists(t, outside)
}

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"PhraseAudioService/internal/config"
	"PhraseAudioService/internal/models"

	"github.com/google/uuid"
)

// PayloadStore decides where canonical WAV bytes live: inline in the row (blob mode)
// or in a file on the shared filesystem referenced by path (path mode).
type PayloadStore struct {
	mode     string
	audioDir string
}

func NewPayloadStore(mode, audioDir string) *PayloadStore {
	return &PayloadStore{mode: mode, audioDir: audioDir}
}

func (s *PayloadStore) Mode() string {
	return s.mode
}

// Place builds the record to upsert for the given canonical audio.
// In path mode every call writes a new file, so the file a stored row points at
// is never touched until that row has been replaced.
func (s *PayloadStore) Place(userID, phraseID int, wav []byte) (*models.AudioRecord, error) {
	rec := &models.AudioRecord{UserID: userID, PhraseID: phraseID}
	if s.mode != config.StorageModePath {
		rec.Audio = wav
		return rec, nil
	}

	finalPath := s.newPath(userID, phraseID)
	if err := writeFileAtomic(finalPath, wav); err != nil {
		return nil, fmt.Errorf("PayloadStore.Place(): %w", err)
	}
	rec.AudioPath = finalPath
	return rec, nil
}

// Discard removes a file previously returned by Place. Empty paths and files that
// are already gone are ignored.
func (s *PayloadStore) Discard(path string) error {
	if path == "" {
		return nil
	}
	rel, err := filepath.Rel(s.audioDir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("PayloadStore.Discard(): %s is outside %s", path, s.audioDir)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("PayloadStore.Discard(): %w", err)
	}
	return nil
}

func (s *PayloadStore) newPath(userID, phraseID int) string {
	return filepath.Join(
		s.audioDir,
		fmt.Sprintf("user_%d", userID),
		fmt.Sprintf("phrase_%d_%s.wav", phraseID, uuid.New().String()),
	)
}

// 임시 파일에 다 쓴 뒤 rename, 최종 이름으로는 항상 완성된 파일만 보임
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.tmp", uuid.New().String()))
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move audio file into place: %w", err)
	}
	return nil
}

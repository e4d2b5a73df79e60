package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"PhraseAudioService/internal/config"
	"PhraseAudioService/internal/models"
)

// ErrRecordNotFound signals that no audio exists for the (user, phrase) pair.
var ErrRecordNotFound = errors.New("audio record not found")

const selectAudioQuery = `
	SELECT user_id, phrase_id, audio, audio_path, updated_at
	FROM user_phrase_audio
	WHERE user_id = ? AND phrase_id = ?`

const mysqlUpsertQuery = `
	INSERT INTO user_phrase_audio (user_id, phrase_id, audio, audio_path, updated_at)
	VALUES (?, ?, ?, ?, ?) AS new
	ON DUPLICATE KEY UPDATE
		audio = new.audio,
		audio_path = new.audio_path,
		updated_at = new.updated_at`

const sqliteUpsertQuery = `
	INSERT INTO user_phrase_audio (user_id, phrase_id, audio, audio_path, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(user_id, phrase_id) DO UPDATE SET
		audio = excluded.audio,
		audio_path = excluded.audio_path,
		updated_at = excluded.updated_at`

// Only used for SQLite; the MySQL table is owned by the migration tooling.
const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS user_phrase_audio (
		"user_id" INTEGER NOT NULL,
		"phrase_id" INTEGER NOT NULL,
		"audio" BLOB,
		"audio_path" TEXT,
		"updated_at" DATETIME NOT NULL,
		PRIMARY KEY (user_id, phrase_id)
	)`

type AudioRepository struct {
	upsertQuery string
	now         func() time.Time
}

func NewAudioRepository(driver string) *AudioRepository {
	query := mysqlUpsertQuery
	if driver == config.DriverSQLite {
		query = sqliteUpsertQuery
	}
	return &AudioRepository{
		upsertQuery: query,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// EnsureSchema creates the audio table when it does not exist yet (SQLite only).
func EnsureSchema(ctx context.Context, db Querier) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("EnsureSchema(): failed to create user_phrase_audio table: %w", err)
	}
	return nil
}

func (r *AudioRepository) Fetch(ctx context.Context, q Querier, userID, phraseID int) (*models.AudioRecord, error) {
	var (
		rec       models.AudioRecord
		audioPath sql.NullString
		updatedAt dbTime
	)
	row := q.QueryRowContext(ctx, selectAudioQuery, userID, phraseID)
	if err := row.Scan(&rec.UserID, &rec.PhraseID, &rec.Audio, &audioPath, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("AudioRepository.Fetch(): query failed: %w", err)
	}
	rec.AudioPath = audioPath.String
	rec.UpdatedAt = updatedAt.Time
	return &rec, nil
}

// Upsert inserts the record or replaces the payload of the existing (user, phrase) row
// in a single statement.
func (r *AudioRepository) Upsert(ctx context.Context, q Querier, rec *models.AudioRecord) error {
	var audio any
	if rec.HasInlineAudio() {
		audio = rec.Audio
	}
	audioPath := sql.NullString{String: rec.AudioPath, Valid: rec.AudioPath != ""}

	rec.UpdatedAt = r.now()
	if _, err := q.ExecContext(ctx, r.upsertQuery, rec.UserID, rec.PhraseID, audio, audioPath, rec.UpdatedAt); err != nil {
		return fmt.Errorf("AudioRepository.Upsert(): statement failed: %w", err)
	}
	return nil
}

// SQLite는 시간을 문자열로 돌려줄 수 있음
type dbTime struct {
	time.Time
}

var dbTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	}
	return fmt.Errorf("dbTime.Scan(): unsupported type %T", src)
}

func (t *dbTime) parse(s string) error {
	for _, layout := range dbTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("dbTime.Scan(): cannot parse %q", s)
}

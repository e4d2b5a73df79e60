/**
* Name: 			audio_handler.go
* Description: 		사용자/문장별 녹음 조회 및 업로드 핸들러
* Workflow: 		조회: DB -> WAV -> m4a 변환 -> 전송, 업로드: m4a -> WAV 변환 -> upsert
 */
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"PhraseAudioService/internal/converter"
	"PhraseAudioService/internal/metrics"
	"PhraseAudioService/internal/models"
	"PhraseAudioService/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const audioFormField = "audio_file"

// 파일 외 multipart 헤더/경계 여유분
const multipartOverhead = 8 << 10

type Transcoder interface {
	Encode(ctx context.Context, src []byte) ([]byte, error)
	Decode(ctx context.Context, wav []byte) ([]byte, error)
	DecodeFile(ctx context.Context, path string) ([]byte, error)
}

type ConnAccessor interface {
	WithConn(ctx context.Context, fn func(q storage.Querier) error) error
}

type RecordRepository interface {
	Fetch(ctx context.Context, q storage.Querier, userID, phraseID int) (*models.AudioRecord, error)
	Upsert(ctx context.Context, q storage.Querier, rec *models.AudioRecord) error
}

type PayloadPlacer interface {
	Place(userID, phraseID int, wav []byte) (*models.AudioRecord, error)
	Discard(path string) error
}

type AudioHandler struct {
	db             ConnAccessor
	records        RecordRepository
	payloads       PayloadPlacer
	transcoder     Transcoder
	maxUploadBytes int64
	log            *zap.SugaredLogger
}

func NewAudioHandler(
	db ConnAccessor,
	records RecordRepository,
	payloads PayloadPlacer,
	transcoder Transcoder,
	maxUploadBytes int64,
	log *zap.SugaredLogger,
) *AudioHandler {
	return &AudioHandler{
		db:             db,
		records:        records,
		payloads:       payloads,
		transcoder:     transcoder,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// GetAudio godoc
// @Summary      문장 녹음 조회 (Fetch)
// @Description  사용자의 문장 녹음을 요청한 포맷으로 변환해 반환합니다.
// @Description  현재 `m4a`만 지원합니다.
// @Tags         Audio
// @Produce      audio/x-m4a
// @Produce      json
// @Param        user_id      path  int     true  "User ID"
// @Param        phrase_id    path  int     true  "Phrase ID"
// @Param        audio_format path  string  true  "Delivery format" Enums(m4a)
// @Success      200 {file}   file  "m4a audio"
// @Failure      400 {object} handler.ErrorResponse "Invalid Audio Format"
// @Failure      404 {object} handler.ErrorResponse "Record Not Found"
// @Failure      500 {object} handler.ErrorResponse "Database or conversion failure"
// @Router       /audio/user/{user_id}/phrase/{phrase_id}/{audio_format} [get]
func (h *AudioHandler) GetAudio(c *gin.Context) {
	userID, phraseID, ok := parseIDs(c)
	if !ok {
		return
	}
	if c.Param("audio_format") != converter.DeliveryFormat {
		abortWithError(c, http.StatusBadRequest, "Invalid Audio Format")
		return
	}

	ctx := c.Request.Context()
	var rec *models.AudioRecord
	err := h.db.WithConn(ctx, func(q storage.Querier) error {
		var err error
		rec, err = h.records.Fetch(ctx, q, userID, phraseID)
		return err
	})
	if err != nil {
		h.abortWithStorageError(c, "GetAudio()", err)
		return
	}

	var audio []byte
	switch {
	case rec.HasInlineAudio():
		audio, err = h.transcoder.Decode(ctx, rec.Audio)
	case rec.AudioPath != "":
		audio, err = h.transcoder.DecodeFile(ctx, rec.AudioPath)
	default:
		err = fmt.Errorf("record (%d, %d) has no payload", userID, phraseID)
	}
	if err != nil {
		h.log.Errorf("GetAudio(): Failed to convert audio for user %d phrase %d: %v", userID, phraseID, err)
		abortWithError(c, http.StatusInternalServerError, "Convert Audio Failed")
		return
	}

	c.Data(http.StatusOK, converter.DeliveryContentType, audio)
}

// PostAudio godoc
// @Summary      문장 녹음 업로드 (Upload)
// @Description  사용자의 문장 녹음을 저장합니다. 기존 녹음이 있으면 교체됩니다.
// @Description  파일은 `audio/x-m4a`로 보내야 합니다.
// @Tags         Audio
// @Accept       multipart/form-data
// @Produce      json
// @Param        user_id    path     int   true  "User ID"
// @Param        phrase_id  path     int   true  "Phrase ID"
// @Param        audio_file formData file  true  "m4a recording"
// @Success      200 {object} handler.SuccessResponse
// @Failure      400 {object} handler.ErrorResponse "Invalid audio format"
// @Failure      500 {object} handler.ErrorResponse "Database or conversion failure"
// @Router       /audio/user/{user_id}/phrase/{phrase_id} [post]
func (h *AudioHandler) PostAudio(c *gin.Context) {
	userID, phraseID, ok := parseIDs(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	fileHeader, err := c.FormFile(audioFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, http.StatusBadRequest, "Audio file too large")
			return
		}
		abortWithError(c, http.StatusBadRequest, "Audio file is required")
		return
	}
	if fileHeader.Header.Get("Content-Type") != converter.InputContentType {
		abortWithError(c, http.StatusBadRequest, "Invalid audio format")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		abortWithError(c, http.StatusBadRequest, "Audio file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Errorf("PostAudio(): Failed to open uploaded file: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to read audio file")
		return
	}
	defer file.Close()

	src, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		h.log.Errorf("PostAudio(): Failed to read uploaded file: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to read audio file")
		return
	}
	if int64(len(src)) > h.maxUploadBytes {
		abortWithError(c, http.StatusBadRequest, "Audio file too large")
		return
	}
	metrics.UploadBytes.Observe(float64(len(src)))

	ctx := c.Request.Context()
	wav, err := h.transcoder.Encode(ctx, src)
	if err != nil {
		h.log.Errorf("PostAudio(): Failed to convert upload for user %d phrase %d: %v", userID, phraseID, err)
		abortWithError(c, http.StatusInternalServerError, "Convert Audio Failed")
		return
	}

	rec, err := h.payloads.Place(userID, phraseID, wav)
	if err != nil {
		h.log.Errorf("PostAudio(): Failed to store audio file: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to store audio")
		return
	}

	// path 모드: 이전 경로는 upsert가 성공한 뒤에만 지움
	var previous string
	err = h.db.WithConn(ctx, func(q storage.Querier) error {
		if rec.AudioPath != "" {
			prev, err := h.records.Fetch(ctx, q, userID, phraseID)
			switch {
			case err == nil:
				previous = prev.AudioPath
			case !errors.Is(err, storage.ErrRecordNotFound):
				return err
			}
		}
		return h.records.Upsert(ctx, q, rec)
	})
	if err != nil {
		h.discard(rec.AudioPath)
		h.abortWithStorageError(c, "PostAudio()", err)
		return
	}
	if previous != rec.AudioPath {
		h.discard(previous)
	}

	h.log.Infof("PostAudio(): Saved audio for user %d phrase %d (%d bytes)", userID, phraseID, len(wav))
	c.JSON(http.StatusOK, SuccessResponse{Description: "Succeeded"})
}

func (h *AudioHandler) discard(path string) {
	if err := h.payloads.Discard(path); err != nil {
		h.log.Warnf("PostAudio(): Failed to remove audio file %s: %v", path, err)
	}
}

func (h *AudioHandler) abortWithStorageError(c *gin.Context, caller string, err error) {
	switch {
	case errors.Is(err, storage.ErrRecordNotFound):
		abortWithError(c, http.StatusNotFound, "Record Not Found")
	case errors.Is(err, storage.ErrNotConnected):
		h.log.Errorf("%s: %v", caller, err)
		abortWithError(c, http.StatusInternalServerError, "Database Not Connected")
	default:
		h.log.Errorf("%s: Database error: %v", caller, err)
		abortWithError(c, http.StatusInternalServerError, "Database Error")
	}
}

func parseIDs(c *gin.Context) (userID, phraseID int, ok bool) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user_id")
		return 0, 0, false
	}
	phraseID, err = strconv.Atoi(c.Param("phrase_id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid phrase_id")
		return 0, 0, false
	}
	return userID, phraseID, true
}

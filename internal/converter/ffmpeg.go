/**
* Name: 			ffmpeg.go
* Description: 		ffmpeg 프로세스를 이용한 오디오 포맷 변환
* Workflow: 		업로드(m4a) -> 저장용 WAV, 저장된 WAV -> 전송용 m4a
 */

package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"PhraseAudioService/internal/config"
	"PhraseAudioService/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// InputContentType is the only upload container accepted.
	InputContentType = "audio/x-m4a"
	// DeliveryFormat is the only format token accepted on fetch.
	DeliveryFormat = "m4a"
	// DeliveryContentType is sent with fetched audio.
	DeliveryContentType = "audio/x-m4a"

	inputExt = ".m4a"
)

// ErrConvertFailed wraps every failure of the external converter.
var ErrConvertFailed = errors.New("audio conversion failed")

type FFmpeg struct {
	binary  string
	tempDir string
	timeout time.Duration
	log     *zap.SugaredLogger
}

func New(cfg config.AudioConfig, log *zap.SugaredLogger) (*FFmpeg, error) {
	if err := os.MkdirAll(cfg.TempDir, 0755); err != nil {
		return nil, fmt.Errorf("converter.New(): failed to create temp directory: %w", err)
	}
	return &FFmpeg{
		binary:  cfg.FFmpegPath,
		tempDir: cfg.TempDir,
		timeout: cfg.ConvertTimeout,
		log:     log,
	}, nil
}

// CheckInstalled reports whether the converter binary can be found.
func (f *FFmpeg) CheckInstalled() error {
	if _, err := exec.LookPath(f.binary); err != nil {
		return fmt.Errorf("converter: %s not found: %w", f.binary, err)
	}
	return nil
}

// Encode converts an uploaded m4a file into the canonical PCM WAV encoding.
func (f *FFmpeg) Encode(ctx context.Context, src []byte) (out []byte, err error) {
	start := time.Now()
	defer func() { metrics.RecordConversion(metrics.DirectionEncode, time.Since(start), err) }()

	// mp4 컨테이너는 moov atom 탐색이 필요해서 pipe 입력 불가, 임시 파일 사용
	inPath := f.tempPath(inputExt)
	if err := os.WriteFile(inPath, src, 0644); err != nil {
		os.Remove(inPath)
		return nil, fmt.Errorf("%w: failed to stage input: %v", ErrConvertFailed, err)
	}
	defer os.Remove(inPath)

	wav, err := f.convert(ctx, nil, inPath, ".wav",
		"-vn",
		"-c:a", "pcm_s16le",
		"-f", "wav",
	)
	if err != nil {
		return nil, err
	}

	info, err := Inspect(wav)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConvertFailed, err)
	}
	f.log.Debugf("FFmpeg.Encode(): %d bytes -> wav %dHz/%dch/%dbit %s",
		len(src), info.SampleRate, info.Channels, info.BitDepth, info.Duration)
	return wav, nil
}

// Decode converts inline canonical audio into the delivery format.
func (f *FFmpeg) Decode(ctx context.Context, wav []byte) (out []byte, err error) {
	start := time.Now()
	defer func() { metrics.RecordConversion(metrics.DirectionDecode, time.Since(start), err) }()

	return f.convert(ctx, bytes.NewReader(wav), "pipe:0", "."+DeliveryFormat)
}

// DecodeFile converts canonical audio stored on the shared filesystem into the delivery format.
func (f *FFmpeg) DecodeFile(ctx context.Context, path string) (out []byte, err error) {
	start := time.Now()
	defer func() { metrics.RecordConversion(metrics.DirectionDecode, time.Since(start), err) }()

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: stored audio unavailable: %v", ErrConvertFailed, err)
	}
	return f.convert(ctx, nil, path, "."+DeliveryFormat)
}

// convert runs one ffmpeg process writing into a uniquely named temp file and returns
// the file contents once the process has exited successfully. The temp file is removed
// on every path.
func (f *FFmpeg) convert(ctx context.Context, stdin io.Reader, input, outExt string, outputArgs ...string) ([]byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	outPath := f.tempPath(outExt)
	defer os.Remove(outPath)

	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-i", input}
	args = append(args, outputArgs...)
	args = append(args, outPath)

	cmd := exec.CommandContext(ctx, f.binary, args...)
	cmd.Stdin = stdin
	cmd.WaitDelay = 2 * time.Second
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		f.log.Warnf("FFmpeg.convert(): %s failed: %v, stderr: %s", f.binary, err, strings.TrimSpace(stderr.String()))
		return nil, fmt.Errorf("%w: %v", ErrConvertFailed, err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read output: %v", ErrConvertFailed, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrConvertFailed)
	}
	return data, nil
}

func (f *FFmpeg) tempPath(ext string) string {
	return filepath.Join(f.tempDir, uuid.New().String()+ext)
}

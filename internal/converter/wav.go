package converter

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-audio/wav"
)

var ErrInvalidWAV = errors.New("invalid wav data")

// AudioInfo describes canonical WAV audio.
type AudioInfo struct {
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	BitDepth   int           `json:"bit_depth"`
	Duration   time.Duration `json:"duration"`
}

// Inspect sniffs the RIFF/WAVE container and returns its stream parameters.
func Inspect(data []byte) (*AudioInfo, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	// 1 = PCM, 0xFFFE = WAVE_FORMAT_EXTENSIBLE (ffmpeg uses it for >2 channels)
	if dec.WavAudioFormat != 1 && dec.WavAudioFormat != 0xFFFE {
		return nil, fmt.Errorf("%w: unsupported wav format %d", ErrInvalidWAV, dec.WavAudioFormat)
	}

	duration, err := dec.Duration()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
	}
	return &AudioInfo{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Duration:   duration,
	}, nil
}

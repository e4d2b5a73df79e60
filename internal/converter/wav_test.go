package converter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	data := testWAV(t, 16000, 16000)

	info, err := Inspect(data)
	require.NoError(t, err)
	assert.Equal(t, 16000, info.SampleRate)
	assert.Equal(t, 1, info.Channels)
	assert.Equal(t, 16, info.BitDepth)
	assert.InDelta(t, time.Second.Seconds(), info.Duration.Seconds(), 0.01)
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := Inspect([]byte("not a riff file at all, just some bytes"))
	assert.ErrorIs(t, err, ErrInvalidWAV)

	_, err = Inspect(nil)
	assert.ErrorIs(t, err, ErrInvalidWAV)
}

package activity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIncorrectDataLength(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrIncorrectDataLength)
}

func TestDecodeBasicRecord(t *testing.T) {
	data := []byte{0x10, 0x00, 0x00, 5, 2}
	samples, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, Minute(16), samples[0].Minute)
	assert.Equal(t, byte(5), samples[0].WalkingSteps)
	assert.Equal(t, byte(2), samples[0].RunningSteps)
	assert.Equal(t, 7, samples[0].Total())
}

func TestDecodeZeroMinuteIsNoSample(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 9, 9}
	samples, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestDecodeEmptyBufferIsCompletionMarker(t *testing.T) {
	samples, err := Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestDecodeMaxMinuteAccepted(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0x7F, 0, 0}
	samples, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, MinuteMax, samples[0].Minute)
}

func TestDecodeAboveMaxMinuteRejected(t *testing.T) {
	data := []byte{0x00, 0x00, 0x80, 0, 0}
	_, err := Decode(data)
	require.Error(t, err)
	var dateErr *DateError
	require.True(t, errors.As(err, &dateErr))
	assert.ErrorIs(t, err, ErrMinuteOutOfRange)
}

func TestDecodeTwoUpdates(t *testing.T) {
	data := []byte{
		0x0A, 0x00, 0x00, 7, 3,
		0x0B, 0x00, 0x00, 0, 0,
	}
	samples, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, Minute(10), samples[0].Minute)
	assert.Equal(t, 10, samples[0].Total())
	assert.Equal(t, Minute(11), samples[1].Minute)
	assert.Equal(t, 0, samples[1].Total())
}

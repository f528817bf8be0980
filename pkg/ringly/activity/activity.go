// Package activity decodes minute-resolution activity tracking samples
// reported by a Ringly peripheral.
package activity

import (
	"errors"
	"fmt"
	"time"
)

// Minute is a 23-bit unsigned activity-tracking timestamp: the number of
// minutes elapsed since ReferenceTimestamp. Minute 0 is reserved as a
// firmware-reset marker and is never a valid sample timestamp.
type Minute uint32

const (
	MinuteMin Minute = 0
	MinuteMax Minute = 0x7FFFFF
)

// ReferenceTimestamp is the Unix timestamp (t0) that Minute 0 would
// represent, were it valid.
const ReferenceTimestamp int64 = 0

// ErrMinuteOutOfRange is returned when a decoded minute value exceeds
// MinuteMax.
var ErrMinuteOutOfRange = errors.New("activity: minute value out of range")

// ErrIncorrectDataLength is returned when a buffer's length is not a
// multiple of 5.
var ErrIncorrectDataLength = errors.New("activity: data length is not a multiple of 5")

// DateError wraps an underlying minute-range violation encountered while
// decoding a sample.
type DateError struct {
	Underlying error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("activity: date error: %v", e.Underlying)
}

func (e *DateError) Unwrap() error {
	return e.Underlying
}

// Time converts m to the wall-clock time it represents, one minute per
// unit, relative to ReferenceTimestamp.
func (m Minute) Time() time.Time {
	return time.Unix(ReferenceTimestamp+int64(m)*60, 0).UTC()
}

func minuteFromBytes(lo, mid, hi byte) (Minute, error) {
	v := uint32(lo) | uint32(mid)<<8 | uint32(hi)<<16
	if v > uint32(MinuteMax) {
		return 0, &DateError{Underlying: ErrMinuteOutOfRange}
	}
	return Minute(v), nil
}

// Sample is a single minute's activity tracking record.
type Sample struct {
	Minute       Minute
	WalkingSteps byte
	RunningSteps byte
}

// Total is the sum of walking and running steps for this sample.
func (s Sample) Total() int {
	return int(s.WalkingSteps) + int(s.RunningSteps)
}

// Decode parses a buffer of 5-byte activity tracking records. A zero-length
// buffer is a legal completion marker (returns no samples, no error). A
// record whose minute is 0 is a firmware-reset marker: it is consumed but
// does not produce a Sample.
func Decode(data []byte) ([]Sample, error) {
	if len(data)%5 != 0 {
		return nil, ErrIncorrectDataLength
	}

	samples := make([]Sample, 0, len(data)/5)
	for offset := 0; offset < len(data); offset += 5 {
		minute, err := minuteFromBytes(data[offset], data[offset+1], data[offset+2])
		if err != nil {
			return nil, err
		}
		if minute == MinuteMin {
			continue // firmware-reset marker, not a sample
		}
		samples = append(samples, Sample{
			Minute:       minute,
			WalkingSteps: data[offset+3],
			RunningSteps: data[offset+4],
		})
	}
	return samples, nil
}

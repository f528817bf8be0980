package recovery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActuallyError26KeepsItsNonSequentialValue(t *testing.T) {
	assert.Equal(t, Code(26), CodeActuallyError26)
}

func TestCodesBeforeError26AreSequential(t *testing.T) {
	assert.Equal(t, Code(0), CodeNoZipFile)
	assert.Equal(t, Code(1), CodeFailedToCreateDirectory)
	assert.Equal(t, Code(2), CodeMissingDataFile)
	assert.Equal(t, Code(3), CodeNoApplication)
	assert.Equal(t, Code(12), CodeNoWriteCharacteristic)
}

func TestCodesAfterError26ResumeSequentialAndDistinct(t *testing.T) {
	assert.Equal(t, Code(27), CodeCentralManagerPoweredOff)
	codes := []Code{
		CodeActuallyError26,
		CodeCentralManagerPoweredOff,
		CodeCentralManagerUnsupported,
		CodeCentralManagerUnauthorized,
		CodeNotValidFileType,
		CodeCancelledByInterface,
		CodeFailedToFindPeripheral,
		CodeUnknownApplicationVersion,
		CodeUnknownBootloaderVersion,
		CodeUnknownHardwareVersion,
		CodeRepeatingWriteTimeout,
		CodeScanningTimeout,
	}
	seen := make(map[Code]bool, len(codes))
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate code value %d (%s)", c, c)
		seen[c] = true
	}
}

func TestErrorIsComparesByCode(t *testing.T) {
	a := New(CodeDisconnected)
	b := NewWithReason(CodeDisconnected, "link dropped")
	assert.True(t, errors.Is(b, a))

	c := New(CodeNoApplication)
	assert.False(t, errors.Is(c, a))
}

func TestErrorMessageIncludesReasonWhenPresent(t *testing.T) {
	err := NewWithReason(CodeScanningTimeout, "no peripheral found in 30s")
	assert.Contains(t, err.Error(), "scanning_timeout")
	assert.Contains(t, err.Error(), "30s")
}

package ancs

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tlv(id byte, value []byte) []byte {
	out := make([]byte, 3+len(value))
	out[0] = id
	binary.LittleEndian.PutUint16(out[1:3], uint16(len(value)))
	copy(out[3:], value)
	return out
}

func buildV2Buffer(notifAttrs, appAttrs [][2]any) []byte {
	var out []byte
	out = append(out, commandIDGetNotificationAttributes)
	for _, a := range notifAttrs {
		out = append(out, tlv(a[0].(byte), []byte(a[1].(string)))...)
	}
	out = append(out, commandIDGetAppAttributes)
	for _, a := range appAttrs {
		out = append(out, tlv(a[0].(byte), []byte(a[1].(string)))...)
	}
	return out
}

func TestParseV2Basic(t *testing.T) {
	notifAttrs := [][2]any{
		{notifAttrTitle, "Jane Doe"},
		{notifAttrDate, "20200610T143000"},
		{notifAttrMessage, "hello"},
	}
	appAttrs := [][2]any{
		{appAttrDisplayName, "Phone"},
	}
	buf := buildV2Buffer(notifAttrs, appAttrs)

	n, err := ParseV2(buf, len(notifAttrs), len(appAttrs))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", n.Title)
	assert.Equal(t, "Phone", n.ApplicationIdentifier)
	require.NotNil(t, n.Message)
	assert.Equal(t, "hello", *n.Message)
}

func TestParseV2OrderIndependent(t *testing.T) {
	orderA := [][2]any{
		{notifAttrTitle, "T"},
		{notifAttrDate, "20200610T143000"},
	}
	orderB := [][2]any{
		{notifAttrDate, "20200610T143000"},
		{notifAttrTitle, "T"},
	}

	bufA := buildV2Buffer(orderA, nil)
	bufB := buildV2Buffer(orderB, nil)

	nA, err := ParseV2(bufA, len(orderA), 0)
	require.NoError(t, err)
	nB, err := ParseV2(bufB, len(orderB), 0)
	require.NoError(t, err)

	assert.Equal(t, nA.Title, nB.Title)
	assert.Equal(t, nA.Date.Unix(), nB.Date.Unix())
}

func TestParseV2MissingTitle(t *testing.T) {
	notifAttrs := [][2]any{
		{notifAttrDate, "20200610T143000"},
	}
	buf := buildV2Buffer(notifAttrs, nil)
	_, err := ParseV2(buf, len(notifAttrs), 0)
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestParseV2MissingDate(t *testing.T) {
	notifAttrs := [][2]any{
		{notifAttrTitle, "T"},
	}
	buf := buildV2Buffer(notifAttrs, nil)
	_, err := ParseV2(buf, len(notifAttrs), 0)
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestParseV2IncorrectDataSize(t *testing.T) {
	notifAttrs := [][2]any{
		{notifAttrTitle, "T"},
		{notifAttrDate, "20200610T143000"},
	}
	buf := buildV2Buffer(notifAttrs, nil)
	// Declare one extra notification attribute than actually present.
	_, err := ParseV2(buf, len(notifAttrs)+1, 0)
	assert.ErrorIs(t, err, ErrIncorrectDataSize)
}

func TestParseV2InvalidCommandIdentifier(t *testing.T) {
	buf := []byte{0x09}
	_, err := ParseV2(buf, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidNotificationAttributesCommandIdentifier)
}

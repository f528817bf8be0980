package ancs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrDifferentHeader is returned when a packet arrives mid-assembly with a
// header identifier that does not match the in-flight assembly. The prior
// buffer is discarded.
var ErrDifferentHeader = errors.New("ancs: different header identifier mid-assembly")

// ErrInvalidHeader is returned when a packet carries no header byte at all.
var ErrInvalidHeader = errors.New("ancs: packet has no header byte")

// fieldSeparator delimits the textual header fields (category, application
// identifier, title, day, hour, minute) within a version-1 body. 0x1F (ASCII
// unit separator) is chosen because it cannot appear in the surrounding
// human-readable text fields.
const fieldSeparator = 0x1F

// terminator marks the end of the message-text field. Bytes after it within
// the same packet, if any, are the optional flags byte.
const terminator = 0x00

// V1Assembler reassembles ANCS version-1 notifications from a sequence of
// fragmented packets, each prefixed with a one-byte header identifier shared
// across all fragments of a single notification.
//
// Version-1 dates lack a year and month; YearMonthDate supplies them. A nil
// YearMonthDate means "use wall-clock time at parse time" for every parsed
// notification, re-evaluated per call.
type V1Assembler struct {
	YearMonthDate *time.Time
	IncludeFlags  bool

	header     byte
	haveHeader bool
	buf        []byte
}

// AppendData appends a single inbound packet to the assembler. It returns a
// non-nil Notification when the packet completes an in-flight assembly, or
// an error (ErrDifferentHeader, ErrInvalidHeader, or a body-parsing error)
// if the packet could not be processed. Both return values may be nil/nil
// if the packet was buffered but did not yet complete a notification.
func (a *V1Assembler) AppendData(data []byte) (*Notification, error) {
	if len(data) == 0 {
		return nil, ErrInvalidHeader
	}

	h := data[0]
	chunk := data[1:]

	if a.haveHeader && h != a.header {
		a.reset()
		return nil, ErrDifferentHeader
	}
	if !a.haveHeader {
		a.header = h
		a.haveHeader = true
	}

	idx := indexByte(chunk, terminator)
	if idx < 0 {
		a.buf = append(a.buf, chunk...)
		return nil, nil
	}

	a.buf = append(a.buf, chunk[:idx]...)
	var flags *Flags
	if a.IncludeFlags && idx+1 < len(chunk) {
		f := Flags(chunk[idx+1])
		flags = &f
	}

	body := a.buf
	a.reset()

	n, err := a.parseBody(body, flags)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (a *V1Assembler) reset() {
	a.haveHeader = false
	a.header = 0
	a.buf = nil
}

func (a *V1Assembler) parseBody(body []byte, flags *Flags) (*Notification, error) {
	fields := strings.SplitN(string(body), string(rune(fieldSeparator)), 7)
	if len(fields) != 7 {
		return nil, fmt.Errorf("ancs: v1 body has %d fields, want 7", len(fields))
	}

	category := CategoryFromNumericalString(fields[0])
	appID := fields[1]
	title := fields[2]

	day, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("ancs: invalid day field: %w", err)
	}
	hour, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("ancs: invalid hour field: %w", err)
	}
	minute, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("ancs: invalid minute field: %w", err)
	}
	message := fields[6]

	ref := time.Now()
	if a.YearMonthDate != nil {
		ref = *a.YearMonthDate
	}
	date := time.Date(ref.Year(), ref.Month(), day, hour, minute, 0, 0, ref.Location())

	return &Notification{
		Version:               Version1,
		Category:              category,
		ApplicationIdentifier: appID,
		Title:                 title,
		Date:                  &date,
		Message:               &message,
		Flags:                 flags,
	}, nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

package internal

import (
	"bytes"
	"strings"
)

// dataPrefix marks a frame as carrying an event payload. Frames without it
// (comments, keep-alives) are discarded.
const dataPrefix = "data: "

// frameDelim separates frames on the wire.
var frameDelim = []byte("\n\n")

// FrameDecoder turns an incrementally received byte stream into complete
// frame payloads. It is stateful: partial frames (including a multi-byte
// character split across two chunks) are buffered until the closing
// delimiter arrives, so any chunking of the same stream yields the same
// payload sequence.
type FrameDecoder struct {
	buf []byte
}

// NewFrameDecoder creates a new FrameDecoder
func NewFrameDecoder() *FrameDecoder {
	return &FrameDecoder{}
}

// Feed appends a chunk to the buffer and returns the payloads of all
// frames completed by it, in arrival order.
func (d *FrameDecoder) Feed(chunk []byte) []string {
	d.buf = append(d.buf, chunk...)

	var payloads []string
	for {
		i := bytes.Index(d.buf, frameDelim)
		if i < 0 {
			break
		}
		frame := string(d.buf[:i])
		d.buf = d.buf[i+len(frameDelim):]
		if payload, ok := framePayload(frame); ok {
			payloads = append(payloads, payload)
		}
	}
	return payloads
}

// Finish flushes any trailing buffered data as a final frame. The decoder
// is reusable afterwards.
func (d *FrameDecoder) Finish() []string {
	if len(d.buf) == 0 {
		return nil
	}
	frame := string(d.buf)
	d.buf = nil
	if payload, ok := framePayload(frame); ok {
		return []string{payload}
	}
	return nil
}

// Discard drops any buffered partial frame, e.g. when a stream is
// cancelled mid-read.
func (d *FrameDecoder) Discard() {
	d.buf = nil
}

// framePayload strips the data prefix from a frame. Frames without the
// prefix are not event candidates.
func framePayload(frame string) (string, bool) {
	frame = strings.TrimRight(frame, "\n")
	if !strings.HasPrefix(frame, dataPrefix) {
		if frame != "" {
			LogDebug("Discarding non-data frame: %.60q", frame)
		}
		return "", false
	}
	return frame[len(dataPrefix):], true
}

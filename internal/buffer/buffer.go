package buffer

import "github.com/riverfjs/contentstate-go/internal/types"

// TextBuffer accumulates the text of one block and tracks its current length
// in the configured offset unit.
type TextBuffer struct {
	parts  []string
	unit   types.OffsetUnit
	offset int
}

// New creates a new TextBuffer measuring offsets in unit.
func New(unit types.OffsetUnit) *TextBuffer {
	return &TextBuffer{
		parts: make([]string, 0),
		unit:  unit,
	}
}

// Write appends text to the buffer.
func (tb *TextBuffer) Write(text string) {
	if text == "" {
		return
	}
	tb.parts = append(tb.parts, text)
	tb.offset += tb.unit.Len(text)
}

// Offset returns the current length of the buffered text.
func (tb *TextBuffer) Offset() int {
	return tb.offset
}

// Unit returns the unit offsets are measured in.
func (tb *TextBuffer) Unit() types.OffsetUnit {
	return tb.unit
}

// ByteOffset returns the current byte offset (total string length).
func (tb *TextBuffer) ByteOffset() int {
	total := 0
	for _, p := range tb.parts {
		total += len(p)
	}
	return total
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	if len(tb.parts) == 0 {
		return ""
	}
	result := make([]byte, 0, tb.ByteOffset())
	for _, p := range tb.parts {
		result = append(result, p...)
	}
	return string(result)
}

// Reset clears the buffer.
func (tb *TextBuffer) Reset() {
	tb.parts = tb.parts[:0]
	tb.offset = 0
}

package contentstate

import (
	"errors"
	"fmt"
)

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// draft.js measures range offsets and lengths in JavaScript string indices,
// which are UTF-16 code units, not Go string bytes or runes. Characters
// outside the BMP (codepoint > 0xFFFF) take 2 code units; all others take 1.
func UTF16Len(text string) int {
	return UTF16.Len(text)
}

// TextLength returns the length of text measured in unit.
func TextLength(text string, unit OffsetUnit) int {
	return unit.Len(text)
}

// InvalidBlockError describes one structural problem found by Validate.
type InvalidBlockError struct {
	Index  int
	Key    string
	Reason string
}

func (e *InvalidBlockError) Error() string {
	return fmt.Sprintf("block %d (%s): %s", e.Index, e.Key, e.Reason)
}

// Validate checks the structural invariants of doc with offsets measured in
// unit: unique block keys, zero depth outside list items, every range inside
// its block's text and every entity range pointing into the entity map.
// All problems are reported, joined into one error.
func Validate(doc *Document, unit OffsetUnit) error {
	var errs []error
	seen := make(map[string]bool, len(doc.Blocks))
	for i, b := range doc.Blocks {
		fail := func(format string, args ...any) {
			errs = append(errs, &InvalidBlockError{Index: i, Key: b.Key, Reason: fmt.Sprintf(format, args...)})
		}
		if seen[b.Key] {
			fail("duplicate key")
		}
		seen[b.Key] = true
		if b.Depth < 0 || (b.Depth > 0 && !b.Type.IsListItem()) {
			fail("depth %d not allowed for %s", b.Depth, b.Type)
		}
		textLen := unit.Len(b.Text)
		for _, r := range b.InlineStyleRanges {
			if r.Offset < 0 || r.Length < 0 || r.Offset+r.Length > textLen {
				fail("%s range [%d,+%d) outside text of length %d", r.Style, r.Offset, r.Length, textLen)
			}
		}
		for _, r := range b.EntityRanges {
			if r.Offset < 0 || r.Length < 0 || r.Offset+r.Length > textLen {
				fail("entity %s range [%d,+%d) outside text of length %d", r.Key, r.Offset, r.Length, textLen)
			}
			if _, ok := doc.EntityMap[r.Key]; !ok {
				fail("entity %s not in entity map", r.Key)
			}
		}
	}
	return errors.Join(errs...)
}

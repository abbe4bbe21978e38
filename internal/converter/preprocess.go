package converter

import (
	"golang.org/x/text/unicode/norm"
)

// Normalizer returns a text hook that rewrites text events into form.
//
// Composed forms shorten combining sequences, so offsets are computed after
// normalization and always agree with the stored text.
func Normalizer(form norm.Form) func(string) string {
	return func(s string) string {
		return form.String(s)
	}
}

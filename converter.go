package contentstate

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/riverfjs/contentstate-go/internal/converter"
	"github.com/riverfjs/contentstate-go/internal/parser"
)

// Convert 将 HTML 片段转换为 Document
//
// The fragment may hold any number of sibling elements. Conversion is
// all-or-nothing: on error no Document is returned.
func Convert(html string, opts ...Option) (*Document, error) {
	return ConvertReader(strings.NewReader(html), opts...)
}

// ConvertReader is Convert for a fragment read from r.
func ConvertReader(r io.Reader, opts ...Option) (*Document, error) {
	options := applyOptions(opts...)
	return parser.ParseReader(r, options.Config, options.builderOptions())
}

// ConvertMarkdown renders markdown to HTML and converts the result.
func ConvertMarkdown(markdown string, opts ...Option) (*Document, error) {
	options := applyOptions(opts...)
	return parser.ParseMarkdown(markdown, options.Config, options.builderOptions())
}

// ConvertJSON converts html and serializes the Document as draft.js raw
// content state JSON.
func ConvertJSON(html string, opts ...Option) ([]byte, error) {
	doc, err := Convert(html, opts...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// MarshalIndent serializes doc with two-space indentation.
func MarshalIndent(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func (o *ConvertOptions) builderOptions() converter.Options {
	opts := converter.Options{
		Keys:            o.Keys,
		Unit:            o.Unit,
		ImageDimensions: o.ImageDimensions,
		Logger:          o.Logger,
	}
	if o.Normalization != nil {
		opts.Normalize = converter.Normalizer(*o.Normalization)
	}
	return opts
}

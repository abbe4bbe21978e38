package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/riverfjs/contentstate-go/internal/converter"
	"github.com/riverfjs/contentstate-go/internal/types"
)

// voidElements never have an end tag, so the driver closes them itself.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// opaqueElements hold text that is never document content. A true value
// marks raw text elements: the tokenizer reads their body verbatim up to the
// matching end tag even when the start tag is written self-closing.
var opaqueElements = map[string]bool{
	"script": true, "style": true, "title": true, "textarea": true,
	"noscript": true, "iframe": true, "xmp": true, "noembed": true,
	"noframes": true, "plaintext": true,
	"template": false,
}

// Parse 将 HTML 片段转换为 Document
func Parse(fragment string, config *types.Config, opts converter.Options) (*types.Document, error) {
	return ParseReader(strings.NewReader(fragment), config, opts)
}

// ParseReader wraps the fragment read from r in the synthetic root element,
// tokenizes it and feeds every event to a fresh Builder.
func ParseReader(r io.Reader, config *types.Config, opts converter.Options) (*types.Document, error) {
	if config == nil {
		config = types.DefaultConfig()
	}
	builder, err := converter.NewBuilder(config, opts)
	if err != nil {
		return nil, err
	}

	wrapped := io.MultiReader(
		strings.NewReader("<"+config.RootTag+">"),
		r,
		strings.NewReader("</"+config.RootTag+">"),
	)
	if err := drive(html.NewTokenizer(wrapped), builder); err != nil {
		return nil, err
	}
	return builder.Result()
}

func drive(z *html.Tokenizer, b *converter.Builder) error {
	opaque := ""
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return fmt.Errorf("tokenize: %w", err)
			}
			return nil

		case html.TextToken:
			if opaque != "" {
				continue
			}
			if err := b.OnText(string(z.Text())); err != nil {
				return err
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if opaque != "" {
				continue
			}
			if raw, ok := opaqueElements[tag]; ok && (raw || tt == html.StartTagToken) {
				opaque = tag
				continue
			}
			attrs := make(converter.Attrs)
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				attrs[string(key)] = string(val)
			}
			if err := b.OnStartTag(tag, attrs); err != nil {
				return err
			}
			if tt == html.SelfClosingTagToken || voidElements[tag] {
				if err := b.OnEndTag(tag); err != nil {
					return err
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if opaque != "" {
				if tag == opaque {
					opaque = ""
				}
				continue
			}
			if voidElements[tag] {
				continue
			}
			if err := b.OnEndTag(tag); err != nil {
				return err
			}

		case html.CommentToken, html.DoctypeToken:
			// not content
		}
	}
}

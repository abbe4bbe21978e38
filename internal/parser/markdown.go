package parser

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/contentstate-go/internal/converter"
	"github.com/riverfjs/contentstate-go/internal/types"
)

// StandardOptions goldmark 配置
//
// Markdown is rendered to HTML shaped for the block model: list items hold no
// <p>, images are lifted out of the text around them, and code blocks become
// paragraphs with a code style.
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Linkify,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithASTTransformers(
			util.Prioritized(listItemFlattener{}, 100),
			util.Prioritized(imageSplitter{}, 110),
		),
	),
	goldmark.WithRendererOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(blockRenderer{}, 100),
		),
	),
}

// ParseMarkdown renders markdown to HTML and converts the HTML.
func ParseMarkdown(markdown string, config *types.Config, opts converter.Options) (*types.Document, error) {
	var buf bytes.Buffer
	md := goldmark.New(StandardOptions...)
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return ParseReader(&buf, config, opts)
}

// ParseAST 仅解析为 AST，不渲染
func ParseAST(markdown string) ast.Node {
	md := goldmark.New(StandardOptions...)
	source := []byte(markdown)
	return md.Parser().Parse(text.NewReader(source))
}

// listItemFlattener turns paragraphs inside list items into text blocks, so
// loose lists render like tight ones.
type listItemFlattener struct{}

func (listItemFlattener) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	var paragraphs []*ast.Paragraph
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.List:
			n.IsTight = true
		case *ast.Paragraph:
			if _, ok := n.Parent().(*ast.ListItem); ok {
				paragraphs = append(paragraphs, n)
			}
		}
		return ast.WalkContinue, nil
	})

	for _, p := range paragraphs {
		tb := ast.NewTextBlock()
		tb.SetLines(p.Lines())
		for c := p.FirstChild(); c != nil; {
			next := c.NextSibling()
			tb.AppendChild(tb, c)
			c = next
		}
		parent := p.Parent()
		parent.ReplaceChild(parent, p, tb)
	}
}

// imageSplitter splits every paragraph, text block and heading that holds
// images into runs of text and the images between them. The images become
// siblings of the runs, so they render as atomic blocks.
type imageSplitter struct{}

func (imageSplitter) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	var containers []ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if c.Kind() == ast.KindImage {
					containers = append(containers, n)
					break
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	source := reader.Source()
	for _, n := range containers {
		splitAroundImages(n, source)
	}
}

func splitAroundImages(n ast.Node, source []byte) {
	parent := n.Parent()
	var run ast.Node
	flush := func() {
		if run != nil && !isBlankRun(run, source) {
			trimRun(run, source)
			parent.InsertBefore(parent, n, run)
		}
		run = nil
	}
	for c := n.FirstChild(); c != nil; {
		next := c.NextSibling()
		if c.Kind() == ast.KindImage {
			flush()
			n.RemoveChild(n, c)
			parent.InsertBefore(parent, n, c)
		} else {
			if run == nil {
				run = emptyLike(n)
			}
			run.AppendChild(run, c)
		}
		c = next
	}
	flush()
	parent.RemoveChild(parent, n)
}

func emptyLike(n ast.Node) ast.Node {
	switch n := n.(type) {
	case *ast.Heading:
		return ast.NewHeading(n.Level)
	case *ast.TextBlock:
		return ast.NewTextBlock()
	default:
		return ast.NewParagraph()
	}
}

// isBlankRun reports whether a run holds nothing but whitespace text.
func isBlankRun(run ast.Node, source []byte) bool {
	for c := run.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok || len(bytes.TrimSpace(t.Segment.Value(source))) > 0 {
			return false
		}
	}
	return true
}

// trimRun drops the spaces that separated the run from a neighbouring image.
func trimRun(run ast.Node, source []byte) {
	if t, ok := run.FirstChild().(*ast.Text); ok {
		t.Segment = t.Segment.TrimLeftSpace(source)
	}
	if t, ok := run.LastChild().(*ast.Text); ok {
		t.Segment = t.Segment.TrimRightSpace(source)
		t.SetSoftLineBreak(false)
	}
}

// blockRenderer overrides the goldmark HTML renderer for the nodes whose
// default markup the block model cannot take.
type blockRenderer struct{}

func (blockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindTextBlock, renderTextBlock)
	reg.Register(ast.KindListItem, renderListItem)
	reg.Register(ast.KindImage, renderImage)
	reg.Register(ast.KindCodeBlock, renderCodeBlock)
	reg.Register(ast.KindFencedCodeBlock, renderCodeBlock)
}

// renderTextBlock renders text blocks without the trailing newline the
// default renderer adds, which would otherwise end up in list item text.
// Consecutive text blocks are still separated by a newline.
func renderTextBlock(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		return ast.WalkContinue, nil
	}
	if next := n.NextSibling(); next != nil && next.Kind() == ast.KindTextBlock {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

// renderListItem leaves the item unopened when it starts with an image; the
// image opens it after itself if text follows.
func renderListItem(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		if fc := n.FirstChild(); fc == nil || fc.Kind() != ast.KindImage {
			_, _ = w.WriteString("<li>")
		}
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("</li>\n")
	return ast.WalkContinue, nil
}

// renderImage writes a bare <img>. Inside a list item it closes the item
// text before the image and reopens it for the text after.
func renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	_, inItem := n.Parent().(*ast.ListItem)
	if inItem && n.PreviousSibling() != nil {
		_, _ = w.WriteString("</li>")
	}

	_, _ = w.WriteString(`<img src="`)
	if !html.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML(altText(n, source)))
	_, _ = w.WriteString(`">`)

	if next := n.NextSibling(); inItem && next != nil &&
		next.Kind() != ast.KindList && next.Kind() != ast.KindImage {
		_, _ = w.WriteString("<li>")
	}
	return ast.WalkSkipChildren, nil
}

func altText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
		case *ast.String:
			buf.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}

// renderCodeBlock writes fenced and indented code as a paragraph styled as
// code. Inside a list item the code continues the item text on a new line.
func renderCodeBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}
	body := util.EscapeHTML(bytes.TrimRight(code.Bytes(), "\n"))

	if _, inItem := n.Parent().(*ast.ListItem); !inItem {
		_, _ = w.WriteString("<p><code>")
		_, _ = w.Write(body)
		_, _ = w.WriteString("</code></p>\n")
		return ast.WalkContinue, nil
	}

	switch prev := n.PreviousSibling(); {
	case prev == nil, prev.Kind() == ast.KindImage:
		// the item is already open and empty
	case prev.Kind() == ast.KindList:
		_, _ = w.WriteString("<li>")
	default:
		_, _ = w.WriteString("<br>")
	}
	_, _ = w.WriteString("<code>")
	_, _ = w.Write(body)
	_, _ = w.WriteString("</code>")
	return ast.WalkContinue, nil
}

package converter

import (
	"strconv"

	"github.com/riverfjs/contentstate-go/internal/types"
)

// Attrs holds the attributes of a start tag.
type Attrs map[string]string

// handler 单个标签的处理策略
type handler interface {
	open(b *Builder, tag string, attrs Attrs) error
	close(b *Builder, tag string) error
}

// --- Lists ---

// listHandler (<ul>, <ol>) creates no block; it sets the depth and item type
// that enclosed <li> elements pick up.
type listHandler struct {
	itemType types.BlockType
}

func (h listHandler) open(b *Builder, _ string, _ Attrs) error {
	// A nested list ends the text of the item that contains it.
	if err := b.ctx.CloseBlock(); err != nil {
		return err
	}
	depth := b.ctx.Depth()
	if b.ctx.ListItemType() != "" {
		depth++
	}
	b.ctx.PushListScope(depth, h.itemType)
	return nil
}

func (h listHandler) close(b *Builder, _ string) error {
	popped, err := b.ctx.PopListScope()
	if err != nil {
		return err
	}
	if popped.ItemType != h.itemType {
		return &ScopeMismatchError{Want: string(h.itemType), Got: string(popped.ItemType)}
	}
	return nil
}

// --- Blocks ---

// blockHandler (<p>, <h1>..<h6>) opens a block of a fixed type.
type blockHandler struct {
	blockType types.BlockType
}

func (h blockHandler) open(b *Builder, tag string, _ Attrs) error {
	// Only list items may appear below the outermost list level.
	if depth := b.ctx.Depth(); depth > 0 {
		return &BlockInListError{Tag: tag, Depth: depth}
	}
	return b.openBlock(tag, h.blockType, 0)
}

func (h blockHandler) close(b *Builder, _ string) error {
	return b.ctx.CloseBlock()
}

// listItemHandler (<li>) takes its type and depth from the enclosing list.
type listItemHandler struct{}

func (listItemHandler) open(b *Builder, tag string, _ Attrs) error {
	itemType := b.ctx.ListItemType()
	if itemType == "" {
		return &MissingListContextError{Tag: tag}
	}
	return b.openBlock(tag, itemType, b.ctx.Depth())
}

func (listItemHandler) close(b *Builder, _ string) error {
	return b.ctx.CloseBlock()
}

// --- Inline styles ---

type styleHandler struct {
	style types.Style
}

func (h styleHandler) open(b *Builder, tag string, _ Attrs) error {
	return b.ctx.PushStyle(tag, h.style)
}

func (h styleHandler) close(b *Builder, _ string) error {
	return b.ctx.PopStyle(h.style)
}

// --- Entities ---

// linkHandler (<a>) registers a LINK entity and ranges it over the link text.
type linkHandler struct{}

func (linkHandler) open(b *Builder, tag string, attrs Attrs) error {
	if b.ctx.CurrentBlock() == nil {
		return &OrphanInlineError{Tag: tag}
	}
	data := map[string]string{"url": attrs["href"]}
	if title, ok := attrs["title"]; ok {
		data["title"] = title
	}
	key := b.addEntity(types.EntityLink, types.Mutable, data)
	return b.ctx.PushEntity(tag, key)
}

func (linkHandler) close(b *Builder, tag string) error {
	return b.ctx.PopEntity(tag)
}

// imageHandler (<img>) emits a sealed atomic block carrying an IMAGE entity.
type imageHandler struct{}

func (imageHandler) open(b *Builder, tag string, attrs Attrs) error {
	if cur := b.ctx.CurrentBlock(); cur != nil {
		return &NestedBlockError{Tag: tag, Open: cur.Type}
	}
	data := map[string]string{
		"src":     attrs["src"],
		"altText": attrs["alt"],
	}
	width, height := attrs["width"], attrs["height"]
	if (width == "" || height == "") && b.inspectImages {
		if w, h, ok := imageDimensions(attrs["src"]); ok {
			width, height = strconv.Itoa(w), strconv.Itoa(h)
		}
	}
	if width != "" {
		data["width"] = width
	}
	if height != "" {
		data["height"] = height
	}
	key := b.addEntity(types.EntityImage, types.Immutable, data)

	block := types.NewBlock(b.keys.BlockKey(), types.BlockAtomic, 0)
	block.Text = types.AtomicPlaceholder
	block.EntityRanges = append(block.EntityRanges, types.EntityRange{
		Offset: 0,
		Length: b.unit.Len(types.AtomicPlaceholder),
		Key:    key,
	})
	b.doc.AppendBlock(block)
	return nil
}

func (imageHandler) close(*Builder, string) error {
	return nil
}

// --- Line breaks ---

// lineBreakHandler (<br>) becomes a soft newline inside the open block.
type lineBreakHandler struct{}

func (lineBreakHandler) open(b *Builder, _ string, _ Attrs) error {
	if b.ctx.CurrentBlock() == nil {
		return nil
	}
	return b.ctx.AppendText("\n")
}

func (lineBreakHandler) close(*Builder, string) error {
	return nil
}

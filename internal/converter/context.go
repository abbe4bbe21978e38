package converter

import (
	"strings"

	"github.com/riverfjs/contentstate-go/internal/buffer"
	"github.com/riverfjs/contentstate-go/internal/types"
)

// ListScope is the list nesting state saved and restored around list containers.
// An empty ItemType means no list is active.
type ListScope struct {
	Depth    int
	ItemType types.BlockType
}

// ParseContext 转换过程中的可变嵌套状态
//
// The open block is owned by the Document; the context only points at it and
// tracks open ranges as indices into the block's range slices.
type ParseContext struct {
	block  *types.Block
	buf    *buffer.TextBuffer
	styles []int
	links  []int

	scope ListScope
	saved []ListScope
}

// NewParseContext returns a context with no open block and no active list.
func NewParseContext(unit types.OffsetUnit) *ParseContext {
	return &ParseContext{
		buf:    buffer.New(unit),
		styles: make([]int, 0),
		links:  make([]int, 0),
		saved:  make([]ListScope, 0),
	}
}

// PushListScope saves the current scope and installs {depth, itemType}.
func (c *ParseContext) PushListScope(depth int, itemType types.BlockType) {
	c.saved = append(c.saved, c.scope)
	c.scope = ListScope{Depth: depth, ItemType: itemType}
}

// PopListScope restores the most recently saved scope and returns the one it
// replaced.
func (c *ParseContext) PopListScope() (ListScope, error) {
	if len(c.saved) == 0 {
		return ListScope{}, &UnbalancedScopeError{}
	}
	popped := c.scope
	c.scope = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
	return popped, nil
}

// OpenScopes returns the number of list scopes currently pushed.
func (c *ParseContext) OpenScopes() int {
	return len(c.saved)
}

func (c *ParseContext) Depth() int {
	return c.scope.Depth
}

func (c *ParseContext) ListItemType() types.BlockType {
	return c.scope.ItemType
}

// CurrentBlock returns the open block, or nil.
func (c *ParseContext) CurrentBlock() *types.Block {
	return c.block
}

// OpenBlock makes b the current block. Blocks never nest.
func (c *ParseContext) OpenBlock(tag string, b *types.Block) error {
	if c.block != nil {
		return &NestedBlockError{Tag: tag, Open: c.block.Type}
	}
	c.block = b
	c.buf.Reset()
	return nil
}

// CloseBlock seals the current block. All ranges opened inside it must
// already be closed.
func (c *ParseContext) CloseBlock() error {
	if c.block == nil {
		return nil
	}
	if len(c.styles) > 0 || len(c.links) > 0 {
		return &UnclosedRangeError{Styles: len(c.styles), Entities: len(c.links)}
	}
	c.block.Text = c.buf.String()
	c.block = nil
	c.buf.Reset()
	return nil
}

// AppendText adds s to the open block. Outside a block only whitespace is
// accepted, and it is dropped.
func (c *ParseContext) AppendText(s string) error {
	if c.block == nil {
		if strings.TrimSpace(s) != "" {
			return &BareTextError{Text: s}
		}
		return nil
	}
	c.buf.Write(s)
	return nil
}

// Offset returns the length of the open block's text so far.
func (c *ParseContext) Offset() int {
	return c.buf.Offset()
}

// PushStyle opens a style range at the current offset.
func (c *ParseContext) PushStyle(tag string, style types.Style) error {
	if c.block == nil {
		return &OrphanInlineError{Tag: tag}
	}
	c.block.InlineStyleRanges = append(c.block.InlineStyleRanges, types.InlineStyleRange{
		Offset: c.Offset(),
		Style:  style,
	})
	c.styles = append(c.styles, len(c.block.InlineStyleRanges)-1)
	return nil
}

// PopStyle closes the innermost style range, which must be of style want.
func (c *ParseContext) PopStyle(want types.Style) error {
	if len(c.styles) == 0 {
		return &StyleMismatchError{Want: want}
	}
	idx := c.styles[len(c.styles)-1]
	r := &c.block.InlineStyleRanges[idx]
	if r.Style != want {
		return &StyleMismatchError{Want: want, Got: r.Style}
	}
	c.styles = c.styles[:len(c.styles)-1]
	r.Length = c.Offset() - r.Offset
	return nil
}

// PushEntity opens an entity range referencing key at the current offset.
func (c *ParseContext) PushEntity(tag string, key string) error {
	if c.block == nil {
		return &OrphanInlineError{Tag: tag}
	}
	c.block.EntityRanges = append(c.block.EntityRanges, types.EntityRange{
		Offset: c.Offset(),
		Key:    key,
	})
	c.links = append(c.links, len(c.block.EntityRanges)-1)
	return nil
}

// PopEntity closes the innermost entity range.
func (c *ParseContext) PopEntity(tag string) error {
	if len(c.links) == 0 {
		return &ScopeMismatchError{Want: "<" + tag + ">"}
	}
	idx := c.links[len(c.links)-1]
	c.links = c.links[:len(c.links)-1]
	r := &c.block.EntityRanges[idx]
	r.Length = c.Offset() - r.Offset
	return nil
}

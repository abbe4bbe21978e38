package contentstate

import (
	"github.com/riverfjs/contentstate-go/internal/converter"
	"github.com/riverfjs/contentstate-go/internal/keys"
	"github.com/riverfjs/contentstate-go/internal/types"
)

// 导出类型别名
type (
	Document         = types.Document
	Block            = types.Block
	InlineStyleRange = types.InlineStyleRange
	EntityRange      = types.EntityRange
	Entity           = types.Entity
	BlockType        = types.BlockType
	Style            = types.Style
	EntityType       = types.EntityType
	Mutability       = types.Mutability
	OffsetUnit       = types.OffsetUnit
	KeyGenerator     = keys.Generator
)

const (
	BlockUnstyled          = types.BlockUnstyled
	BlockHeaderOne         = types.BlockHeaderOne
	BlockHeaderTwo         = types.BlockHeaderTwo
	BlockHeaderThree       = types.BlockHeaderThree
	BlockHeaderFour        = types.BlockHeaderFour
	BlockHeaderFive        = types.BlockHeaderFive
	BlockHeaderSix         = types.BlockHeaderSix
	BlockUnorderedListItem = types.BlockUnorderedListItem
	BlockOrderedListItem   = types.BlockOrderedListItem
	BlockAtomic            = types.BlockAtomic

	StyleBold          = types.StyleBold
	StyleItalic        = types.StyleItalic
	StyleUnderline     = types.StyleUnderline
	StyleStrikethrough = types.StyleStrikethrough
	StyleCode          = types.StyleCode

	EntityLink  = types.EntityLink
	EntityImage = types.EntityImage

	Immutable = types.Immutable
	Mutable   = types.Mutable
	Segmented = types.Segmented

	UTF16 = types.UTF16
	Rune  = types.Rune

	AtomicPlaceholder = types.AtomicPlaceholder
)

// Conversion errors. Match them with errors.As.
type (
	NestedBlockError        = converter.NestedBlockError
	MissingListContextError = converter.MissingListContextError
	BlockInListError        = converter.BlockInListError
	UnclosedRangeError      = converter.UnclosedRangeError
	StyleMismatchError      = converter.StyleMismatchError
	ScopeMismatchError      = converter.ScopeMismatchError
	UnbalancedScopeError    = converter.UnbalancedScopeError
	BareTextError           = converter.BareTextError
	OrphanInlineError       = converter.OrphanInlineError
	UnclosedBlockError      = converter.UnclosedBlockError
	ConfigError             = converter.ConfigError
)

// NewRandomKeys returns the default generator: random five character block
// keys and entity keys "0", "1", ...
func NewRandomKeys() KeyGenerator {
	return keys.NewRandom()
}

// NewSequentialKeys returns a deterministic generator.
func NewSequentialKeys() KeyGenerator {
	return keys.NewSequential()
}

package converter

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/riverfjs/contentstate-go/internal/keys"
	"github.com/riverfjs/contentstate-go/internal/types"
)

// Options 配置 Builder
type Options struct {
	Keys keys.Generator
	Unit types.OffsetUnit
	// Normalize, if set, is applied to every text event before it is appended.
	Normalize       func(string) string
	ImageDimensions bool
	// Logger receives debug events; nil discards them.
	Logger *zerolog.Logger
}

// Builder 接收标签与文本事件并构建 Document
//
// Events must arrive in document order. A Builder is single use and not safe
// for concurrent use.
type Builder struct {
	doc      *types.Document
	ctx      *ParseContext
	dispatch Dispatch
	keys     keys.Generator
	unit     types.OffsetUnit
	log      zerolog.Logger

	normalize     func(string) string
	inspectImages bool
}

// NewBuilder creates a Builder for the tag vocabulary in cfg.
func NewBuilder(cfg *types.Config, opts Options) (*Builder, error) {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	dispatch, err := NewDispatch(cfg)
	if err != nil {
		return nil, err
	}
	gen := opts.Keys
	if gen == nil {
		gen = keys.NewRandom()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Builder{
		doc:           types.NewDocument(),
		ctx:           NewParseContext(opts.Unit),
		dispatch:      dispatch,
		keys:          gen,
		unit:          opts.Unit,
		log:           logger,
		normalize:     opts.Normalize,
		inspectImages: opts.ImageDimensions,
	}, nil
}

// OnStartTag handles an opening tag.
func (b *Builder) OnStartTag(tag string, attrs Attrs) error {
	h := b.dispatch.lookup(tag)
	if h == nil {
		b.log.Debug().Str("tag", tag).Msg("ignoring start tag")
		return nil
	}
	if err := h.open(b, tag, attrs); err != nil {
		return fmt.Errorf("<%s>: %w", tag, err)
	}
	return nil
}

// OnEndTag handles a closing tag.
func (b *Builder) OnEndTag(tag string) error {
	h := b.dispatch.lookup(tag)
	if h == nil {
		b.log.Debug().Str("tag", tag).Msg("ignoring end tag")
		return nil
	}
	if err := h.close(b, tag); err != nil {
		return fmt.Errorf("</%s>: %w", tag, err)
	}
	return nil
}

// OnText handles character data.
func (b *Builder) OnText(text string) error {
	if b.normalize != nil {
		text = b.normalize(text)
	}
	return b.ctx.AppendText(text)
}

// Result returns the finished document. It fails if a block or list is
// still open.
func (b *Builder) Result() (*types.Document, error) {
	if cur := b.ctx.CurrentBlock(); cur != nil {
		return nil, &UnclosedBlockError{Type: cur.Type}
	}
	if n := b.ctx.OpenScopes(); n > 0 {
		return nil, &UnbalancedScopeError{Open: n}
	}
	b.log.Debug().
		Int("blocks", len(b.doc.Blocks)).
		Int("entities", len(b.doc.EntityMap)).
		Msg("conversion finished")
	return b.doc, nil
}

func (b *Builder) openBlock(tag string, typ types.BlockType, depth int) error {
	block := types.NewBlock("", typ, depth)
	if err := b.ctx.OpenBlock(tag, block); err != nil {
		return err
	}
	block.Key = b.keys.BlockKey()
	b.doc.AppendBlock(block)
	return nil
}

func (b *Builder) addEntity(typ types.EntityType, mut types.Mutability, data map[string]string) string {
	key := b.keys.EntityKey()
	b.doc.AddEntity(key, &types.Entity{
		Type:       typ,
		Mutability: mut,
		Data:       data,
	})
	return key
}

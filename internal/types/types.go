package types

// BlockType 块类型，对应 draft.js 的 DraftBlockType
type BlockType string

const (
	BlockUnstyled          BlockType = "unstyled"
	BlockHeaderOne         BlockType = "header-one"
	BlockHeaderTwo         BlockType = "header-two"
	BlockHeaderThree       BlockType = "header-three"
	BlockHeaderFour        BlockType = "header-four"
	BlockHeaderFive        BlockType = "header-five"
	BlockHeaderSix         BlockType = "header-six"
	BlockUnorderedListItem BlockType = "unordered-list-item"
	BlockOrderedListItem   BlockType = "ordered-list-item"
	BlockAtomic            BlockType = "atomic"
)

// IsListItem reports whether blocks of this type carry a meaningful depth.
func (t BlockType) IsListItem() bool {
	return t == BlockUnorderedListItem || t == BlockOrderedListItem
}

// Style 行内样式
type Style string

const (
	StyleBold          Style = "BOLD"
	StyleItalic        Style = "ITALIC"
	StyleUnderline     Style = "UNDERLINE"
	StyleStrikethrough Style = "STRIKETHROUGH"
	StyleCode          Style = "CODE"
)

// EntityType 实体类型
type EntityType string

const (
	EntityLink  EntityType = "LINK"
	EntityImage EntityType = "IMAGE"
)

// Mutability 实体可变性
type Mutability string

const (
	Immutable Mutability = "IMMUTABLE"
	Mutable   Mutability = "MUTABLE"
	Segmented Mutability = "SEGMENTED"
)

// AtomicPlaceholder is the single character of text carried by atomic blocks.
const AtomicPlaceholder = " "

// InlineStyleRange 行内样式范围
type InlineStyleRange struct {
	Offset int   `json:"offset"`
	Length int   `json:"length"`
	Style  Style `json:"style"`
}

// EntityRange 实体范围，Key 指向 Document.EntityMap
type EntityRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Key    string `json:"key"`
}

// Entity 链接、图片等带外对象
type Entity struct {
	Type       EntityType        `json:"type"`
	Mutability Mutability        `json:"mutability"`
	Data       map[string]string `json:"data"`
}

// Block 文档中的一个块（段落、标题、列表项或 atomic）
type Block struct {
	Key               string             `json:"key"`
	Type              BlockType          `json:"type"`
	Depth             int                `json:"depth"`
	Text              string             `json:"text"`
	InlineStyleRanges []InlineStyleRange `json:"inlineStyleRanges"`
	EntityRanges      []EntityRange      `json:"entityRanges"`
}

// NewBlock returns an empty block with non-nil range slices so that it
// serializes as [] rather than null.
func NewBlock(key string, typ BlockType, depth int) *Block {
	return &Block{
		Key:               key,
		Type:              typ,
		Depth:             depth,
		InlineStyleRanges: make([]InlineStyleRange, 0),
		EntityRanges:      make([]EntityRange, 0),
	}
}

// Document 即 draft.js 的 RawDraftContentState
type Document struct {
	Blocks    []*Block           `json:"blocks"`
	EntityMap map[string]*Entity `json:"entityMap"`
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Blocks:    make([]*Block, 0),
		EntityMap: make(map[string]*Entity),
	}
}

// AppendBlock adds b at the end of the document.
func (d *Document) AppendBlock(b *Block) {
	d.Blocks = append(d.Blocks, b)
}

// AddEntity registers e under key. Keys are never reused within a document.
func (d *Document) AddEntity(key string, e *Entity) {
	d.EntityMap[key] = e
}

// OffsetUnit 偏移量的计量单位
type OffsetUnit int

const (
	// UTF16 counts UTF-16 code units, matching JavaScript string indices.
	UTF16 OffsetUnit = iota
	// Rune counts Unicode code points.
	Rune
)

// String returns the flag spelling of the unit.
func (u OffsetUnit) String() string {
	switch u {
	case UTF16:
		return "utf16"
	case Rune:
		return "rune"
	default:
		return "unknown"
	}
}

// Len returns the length of text measured in u.
func (u OffsetUnit) Len(text string) int {
	count := 0
	for _, r := range text {
		if u == UTF16 && r > 0xFFFF {
			count += 2
		} else {
			count++
		}
	}
	return count
}

// HandlerKind 标签处理器类别
type HandlerKind string

const (
	KindBlock     HandlerKind = "block"
	KindListItem  HandlerKind = "list-item"
	KindList      HandlerKind = "list"
	KindStyle     HandlerKind = "style"
	KindLink      HandlerKind = "link"
	KindImage     HandlerKind = "image"
	KindLineBreak HandlerKind = "line-break"
)

// TagRule 描述一个 HTML 标签的处理方式
//
// Type is the block type for KindBlock, the list-item block type for
// KindList, and the style for KindStyle. It is unused by the other kinds.
type TagRule struct {
	Kind HandlerKind `yaml:"kind" json:"kind"`
	Type string      `yaml:"type,omitempty" json:"type,omitempty"`
}

// Config 转换配置：标签词汇表
type Config struct {
	Tags map[string]TagRule `yaml:"tags" json:"tags"`
	// RootTag is the synthetic element wrapped around every fragment.
	RootTag string `yaml:"root_tag" json:"root_tag"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		RootTag: "rich-text-document",
		Tags: map[string]TagRule{
			"h1":     {Kind: KindBlock, Type: string(BlockHeaderOne)},
			"h2":     {Kind: KindBlock, Type: string(BlockHeaderTwo)},
			"h3":     {Kind: KindBlock, Type: string(BlockHeaderThree)},
			"h4":     {Kind: KindBlock, Type: string(BlockHeaderFour)},
			"h5":     {Kind: KindBlock, Type: string(BlockHeaderFive)},
			"h6":     {Kind: KindBlock, Type: string(BlockHeaderSix)},
			"p":      {Kind: KindBlock, Type: string(BlockUnstyled)},
			"li":     {Kind: KindListItem},
			"ul":     {Kind: KindList, Type: string(BlockUnorderedListItem)},
			"ol":     {Kind: KindList, Type: string(BlockOrderedListItem)},
			"b":      {Kind: KindStyle, Type: string(StyleBold)},
			"strong": {Kind: KindStyle, Type: string(StyleBold)},
			"i":      {Kind: KindStyle, Type: string(StyleItalic)},
			"em":     {Kind: KindStyle, Type: string(StyleItalic)},
			"u":      {Kind: KindStyle, Type: string(StyleUnderline)},
			"s":      {Kind: KindStyle, Type: string(StyleStrikethrough)},
			"strike": {Kind: KindStyle, Type: string(StyleStrikethrough)},
			"del":    {Kind: KindStyle, Type: string(StyleStrikethrough)},
			"code":   {Kind: KindStyle, Type: string(StyleCode)},
			"a":      {Kind: KindLink},
			"img":    {Kind: KindImage},
			"br":     {Kind: KindLineBreak},
		},
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := &Config{RootTag: c.RootTag, Tags: make(map[string]TagRule, len(c.Tags))}
	for k, v := range c.Tags {
		out.Tags[k] = v
	}
	return out
}

// Merge overlays other onto c. Rules in other replace rules for the same tag;
// a rule with an empty Kind removes the tag from the vocabulary.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.RootTag != "" {
		c.RootTag = other.RootTag
	}
	for tag, rule := range other.Tags {
		if rule.Kind == "" {
			delete(c.Tags, tag)
			continue
		}
		c.Tags[tag] = rule
	}
}

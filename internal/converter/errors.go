package converter

import (
	"fmt"

	"github.com/riverfjs/contentstate-go/internal/types"
)

// NestedBlockError 在已有块打开时又开始一个块级元素
type NestedBlockError struct {
	Tag  string
	Open types.BlockType
}

func (e *NestedBlockError) Error() string {
	return fmt.Sprintf("<%s> opened while a %s block is still open", e.Tag, e.Open)
}

// BlockInListError 非列表项块元素出现在嵌套列表内部
type BlockInListError struct {
	Tag   string
	Depth int
}

func (e *BlockInListError) Error() string {
	return fmt.Sprintf("<%s> found nested inside a list at depth %d", e.Tag, e.Depth)
}

// MissingListContextError 列表项出现在任何列表容器之外
type MissingListContextError struct {
	Tag string
}

func (e *MissingListContextError) Error() string {
	return fmt.Sprintf("<%s> found outside of an enclosing list element", e.Tag)
}

// UnclosedRangeError 块关闭时仍有未闭合的样式或实体范围
type UnclosedRangeError struct {
	Styles   int
	Entities int
}

func (e *UnclosedRangeError) Error() string {
	return fmt.Sprintf("block closed with %d style range(s) and %d entity range(s) still open", e.Styles, e.Entities)
}

// StyleMismatchError 关闭标签的样式与最近打开的样式不一致
type StyleMismatchError struct {
	Want types.Style
	Got  types.Style
}

func (e *StyleMismatchError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("closing %s style with no style range open", e.Want)
	}
	return fmt.Sprintf("closing %s style but innermost open style is %s", e.Want, e.Got)
}

// ScopeMismatchError 关闭标签期望的上下文与已压入的不一致
type ScopeMismatchError struct {
	Want string
	Got  string
}

func (e *ScopeMismatchError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("closing %s with nothing open", e.Want)
	}
	return fmt.Sprintf("closing %s but innermost open scope is %s", e.Want, e.Got)
}

// UnbalancedScopeError 列表作用域栈的压入与弹出不平衡
type UnbalancedScopeError struct {
	Open int
}

func (e *UnbalancedScopeError) Error() string {
	if e.Open > 0 {
		return fmt.Sprintf("%d list scope(s) still open at end of input", e.Open)
	}
	return "list scope popped with no list open"
}

// BareTextError 没有打开的块时出现非空白文本
type BareTextError struct {
	Text string
}

func (e *BareTextError) Error() string {
	return fmt.Sprintf("bare text content found at the top level: %q", e.Text)
}

// OrphanInlineError 行内样式或实体标签出现在块之外
type OrphanInlineError struct {
	Tag string
}

func (e *OrphanInlineError) Error() string {
	return fmt.Sprintf("<%s> found outside of any block", e.Tag)
}

// UnclosedBlockError 输入结束时仍有块未关闭
type UnclosedBlockError struct {
	Type types.BlockType
}

func (e *UnclosedBlockError) Error() string {
	return fmt.Sprintf("%s block still open at end of input", e.Type)
}

// ConfigError 标签词汇表中的规则无效
type ConfigError struct {
	Tag    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid rule for <%s>: %s", e.Tag, e.Reason)
}

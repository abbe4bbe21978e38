package converter

import (
	"github.com/riverfjs/contentstate-go/internal/types"
)

// Dispatch maps tag names to handlers. Lookups are exact and case-sensitive;
// tags without an entry are inert.
type Dispatch map[string]handler

// NewDispatch builds the handler table for cfg.
func NewDispatch(cfg *types.Config) (Dispatch, error) {
	d := make(Dispatch, len(cfg.Tags))
	for tag, rule := range cfg.Tags {
		h, err := newHandler(tag, rule)
		if err != nil {
			return nil, err
		}
		d[tag] = h
	}
	if _, ok := d[cfg.RootTag]; ok {
		return nil, &ConfigError{Tag: cfg.RootTag, Reason: "root tag must not have a rule"}
	}
	return d, nil
}

func newHandler(tag string, rule types.TagRule) (handler, error) {
	switch rule.Kind {
	case types.KindBlock:
		if rule.Type == "" {
			return nil, &ConfigError{Tag: tag, Reason: "block rule needs a type"}
		}
		if types.BlockType(rule.Type) == types.BlockAtomic {
			return nil, &ConfigError{Tag: tag, Reason: "atomic blocks come from image rules"}
		}
		return blockHandler{blockType: types.BlockType(rule.Type)}, nil
	case types.KindListItem:
		return listItemHandler{}, nil
	case types.KindList:
		if !types.BlockType(rule.Type).IsListItem() {
			return nil, &ConfigError{Tag: tag, Reason: "list rule needs a list-item block type"}
		}
		return listHandler{itemType: types.BlockType(rule.Type)}, nil
	case types.KindStyle:
		if rule.Type == "" {
			return nil, &ConfigError{Tag: tag, Reason: "style rule needs a style"}
		}
		return styleHandler{style: types.Style(rule.Type)}, nil
	case types.KindLink:
		return linkHandler{}, nil
	case types.KindImage:
		return imageHandler{}, nil
	case types.KindLineBreak:
		return lineBreakHandler{}, nil
	default:
		return nil, &ConfigError{Tag: tag, Reason: "unknown kind " + string(rule.Kind)}
	}
}

// lookup returns the handler for tag, or nil if the tag is not recognized.
func (d Dispatch) lookup(tag string) handler {
	return d[tag]
}

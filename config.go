package contentstate

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/riverfjs/contentstate-go/internal/types"
)

// 导出类型别名
type Config = types.Config
type TagRule = types.TagRule
type HandlerKind = types.HandlerKind

const (
	KindBlock     = types.KindBlock
	KindListItem  = types.KindListItem
	KindList      = types.KindList
	KindStyle     = types.KindStyle
	KindLink      = types.KindLink
	KindImage     = types.KindImage
	KindLineBreak = types.KindLineBreak
)

var (
	defaultConfig     *Config
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default tag vocabulary (singleton). Callers that
// want to change it should Clone it first.
func DefaultConfig() *Config {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultConfig()
	})
	return defaultConfig
}

// ParseConfig reads a YAML tag vocabulary and merges it over the defaults.
//
//	root_tag: rich-text-document
//	tags:
//	  blockquote: {kind: block, type: blockquote}
//	  u: {}          # drop the tag from the vocabulary
func ParseConfig(data []byte) (*Config, error) {
	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg := DefaultConfig().Clone()
	cfg.Merge(&overlay)
	return cfg, nil
}

// LoadConfig reads the YAML file at path, see ParseConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

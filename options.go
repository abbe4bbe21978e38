package contentstate

import (
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/riverfjs/contentstate-go/internal/keys"
)

// ConvertOptions holds options for HTML conversion.
type ConvertOptions struct {
	Config          *Config
	Keys            KeyGenerator
	Unit            OffsetUnit
	Normalization   *norm.Form
	ImageDimensions bool
	Logger          *zerolog.Logger
}

// Option is a function that configures ConvertOptions.
type Option func(*ConvertOptions)

// WithConfig sets a custom tag vocabulary.
func WithConfig(config *Config) Option {
	return func(opts *ConvertOptions) {
		opts.Config = config
	}
}

// WithKeyGenerator sets the generator used for block and entity keys.
// A generator shared between conversions must be safe for concurrent use.
func WithKeyGenerator(gen KeyGenerator) Option {
	return func(opts *ConvertOptions) {
		opts.Keys = gen
	}
}

// WithOffsetUnit sets the unit range offsets and lengths are measured in.
func WithOffsetUnit(unit OffsetUnit) Option {
	return func(opts *ConvertOptions) {
		opts.Unit = unit
	}
}

// WithNormalization normalizes all text content to form.
func WithNormalization(form norm.Form) Option {
	return func(opts *ConvertOptions) {
		opts.Normalization = &form
	}
}

// WithImageDimensions fills in width and height of IMAGE entities whose
// source is a data: URI and whose tag carries no size attributes.
func WithImageDimensions(enable bool) Option {
	return func(opts *ConvertOptions) {
		opts.ImageDimensions = enable
	}
}

// WithLogger overrides the package Logger for one conversion.
func WithLogger(logger zerolog.Logger) Option {
	return func(opts *ConvertOptions) {
		opts.Logger = &logger
	}
}

// defaultConvertOptions returns the default conversion options.
func defaultConvertOptions() *ConvertOptions {
	logger := Logger
	return &ConvertOptions{
		Config: DefaultConfig(),
		Unit:   UTF16,
		Logger: &logger,
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *ConvertOptions {
	options := defaultConvertOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Config == nil {
		options.Config = DefaultConfig()
	}
	if options.Keys == nil {
		options.Keys = keys.NewRandom()
	}
	return options
}

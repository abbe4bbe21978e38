// Command html2contentstate converts HTML (or Markdown) fragments into
// draft.js content state JSON.
//
//	html2contentstate < fragment.html
//	html2contentstate --markdown -o out/ a.md b.md
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	contentstate "github.com/riverfjs/contentstate-go"
)

type settings struct {
	configPath string
	markdown   bool
	outDir     string
	pretty     string
	unit       string
	keys       string
	nfc        bool
	imageSize  bool
	jobs       int
	verbose    bool
}

func main() {
	var s settings
	flags := pflag.NewFlagSet("html2contentstate", pflag.ExitOnError)
	flags.StringVarP(&s.configPath, "config", "c", "", "YAML tag vocabulary merged over the defaults")
	flags.BoolVarP(&s.markdown, "markdown", "m", false, "Treat input as Markdown")
	flags.StringVarP(&s.outDir, "out-dir", "o", "", "Write <input>.json files here instead of stdout")
	flags.StringVarP(&s.pretty, "pretty", "p", "auto", "Indent JSON: auto|on|off")
	flags.StringVar(&s.unit, "unit", "utf16", "Range offset unit: utf16|rune")
	flags.StringVar(&s.keys, "keys", "random", "Key generator: random|sequential")
	flags.BoolVar(&s.nfc, "nfc", false, "Normalize text to NFC")
	flags.BoolVar(&s.imageSize, "image-size", false, "Read width/height of data: URI images")
	flags.IntVarP(&s.jobs, "jobs", "j", 4, "Files converted in parallel")
	flags.BoolVarP(&s.verbose, "verbose", "v", false, "Log ignored tags to stderr")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: html2contentstate [flags] [file ...]\n\nFlags:\n")
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if s.verbose {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.WarnLevel)
	}
	contentstate.SetLogger(logger)

	if err := run(context.Background(), s, flags.Args(), os.Stdin, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("conversion failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, s settings, inputs []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := buildOptions(s)
	if err != nil {
		return err
	}
	indent, err := wantIndent(s.pretty, stdout)
	if err != nil {
		return err
	}

	if len(inputs) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		out, err := convertOne(string(data), s.markdown, indent, opts)
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return err
	}

	results := make([][]byte, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	if s.jobs > 0 {
		g.SetLimit(s.jobs)
	}
	for i, path := range inputs {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out, err := convertOne(string(data), s.markdown, indent, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if s.outDir != "" {
				name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".json"
				return os.WriteFile(filepath.Join(s.outDir, name), out, 0o644)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if s.outDir != "" {
		return nil
	}
	for _, out := range results {
		if _, err := stdout.Write(out); err != nil {
			return err
		}
	}
	return nil
}

func convertOne(input string, markdown, indent bool, opts []contentstate.Option) ([]byte, error) {
	var (
		doc *contentstate.Document
		err error
	)
	if markdown {
		doc, err = contentstate.ConvertMarkdown(input, opts...)
	} else {
		doc, err = contentstate.Convert(input, opts...)
	}
	if err != nil {
		return nil, err
	}
	var out []byte
	if indent {
		out, err = contentstate.MarshalIndent(doc)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// buildOptions translates flags into conversion options. The options are
// applied once per file.
func buildOptions(s settings) ([]contentstate.Option, error) {
	var opts []contentstate.Option
	if s.configPath != "" {
		cfg, err := contentstate.LoadConfig(s.configPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, contentstate.WithConfig(cfg))
	}
	switch s.unit {
	case "utf16":
		opts = append(opts, contentstate.WithOffsetUnit(contentstate.UTF16))
	case "rune":
		opts = append(opts, contentstate.WithOffsetUnit(contentstate.Rune))
	default:
		return nil, fmt.Errorf("unknown --unit %q", s.unit)
	}
	switch s.keys {
	case "random":
	case "sequential":
		opts = append(opts, withFreshSequentialKeys())
	default:
		return nil, fmt.Errorf("unknown --keys %q", s.keys)
	}
	if s.nfc {
		opts = append(opts, contentstate.WithNormalization(norm.NFC))
	}
	if s.imageSize {
		opts = append(opts, contentstate.WithImageDimensions(true))
	}
	return opts, nil
}

// withFreshSequentialKeys installs a new sequential generator each time the
// option is applied, i.e. once per conversion.
func withFreshSequentialKeys() contentstate.Option {
	return func(o *contentstate.ConvertOptions) {
		o.Keys = contentstate.NewSequentialKeys()
	}
}

func wantIndent(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		return ok && isatty.IsTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("unknown --pretty %q", mode)
	}
}

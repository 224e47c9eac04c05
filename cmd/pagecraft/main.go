// Package main is the entry point for the pagecraft page editor.
//
// pagecraft loads a page (JSON, YAML, CBOR or HTML), applies a YAML script
// of editor steps and writes the result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dshills/pagecraft/internal/codec"
	"github.com/dshills/pagecraft/internal/config"
	"github.com/dshills/pagecraft/internal/engine"
	"github.com/dshills/pagecraft/internal/logging"
	"github.com/dshills/pagecraft/internal/markup"
	"github.com/dshills/pagecraft/internal/tree"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// formatHTML selects the markup reader and writer instead of a codec.
const formatHTML = "html"

type options struct {
	ConfigPath string
	EnvFile    string
	Input      string
	Output     string
	Format     string
	OutFormat  string
	Script     string
	LogLevel   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, code, done := parseFlags(args, stdout, stderr)
	if done {
		return code
	}

	if err := loadEnv(opts.EnvFile); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	log, err := logging.New(cfg.Log, logging.WithOutput(stderr))
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := edit(opts, cfg, log, stdout); err != nil {
		log.Error("edit failed", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func edit(opts options, cfg *config.Config, log *zap.Logger, stdout io.Writer) error {
	editorOpts := []engine.Option{engine.WithConfig(cfg), engine.WithLogger(log)}

	inFormat := ""
	if opts.Input != "" {
		var err error
		inFormat, err = resolveFormat(opts.Format, opts.Input)
		if err != nil {
			return err
		}
		root, err := readDocument(opts.Input, inFormat, cfg.IDs.IDGenerator())
		if err != nil {
			return err
		}
		editorOpts = append(editorOpts, engine.WithRoot(root))
	}

	e, err := engine.New(editorOpts...)
	if err != nil {
		return err
	}
	defer e.Close()

	if opts.Script != "" {
		f, err := os.Open(opts.Script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		steps, err := loadScript(f)
		_ = f.Close()
		if err != nil {
			return err
		}
		if err := runScript(e, steps, log); err != nil {
			return err
		}
		log.Info("script applied", zap.String("script", opts.Script), zap.Int("steps", len(steps)))
	}

	outFormat := opts.OutFormat
	switch {
	case outFormat != "":
	case opts.Output != "" && opts.Output != "-":
		if outFormat, err = resolveFormat("", opts.Output); err != nil {
			return err
		}
	case inFormat != "":
		outFormat = inFormat
	default:
		outFormat = string(codec.JSON)
	}

	return writeDocument(opts.Output, outFormat, e.Root(), stdout)
}

// resolveFormat returns the explicit format or the one implied by path.
func resolveFormat(explicit, path string) (string, error) {
	if explicit != "" {
		if strings.EqualFold(explicit, formatHTML) {
			return formatHTML, nil
		}
		f, err := codec.ParseFormat(explicit)
		return string(f), err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return formatHTML, nil
	}
	f, err := codec.FormatFromPath(path)
	return string(f), err
}

func readDocument(path, format string, ids tree.IDGenerator) (*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	if format == formatHTML {
		return markup.Parse(f, markup.WithIDGenerator(ids))
	}
	return codec.Decode(codec.Format(format), f)
}

func writeDocument(path, format string, root *tree.Node, stdout io.Writer) (err error) {
	w := stdout
	if path != "" && path != "-" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if format == formatHTML {
		return markup.Render(w, root)
	}
	return codec.Encode(codec.Format(format), w, root)
}

// loadEnv reads a dotenv file into the process environment. A missing
// file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// parseFlags parses args. done reports that the program should exit with
// code without doing any work.
func parseFlags(args []string, stdout, stderr io.Writer) (opts options, code int, done bool) {
	fs := flag.NewFlagSet("pagecraft", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var showVersion bool

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.EnvFile, "env", ".env", "Dotenv file with PAGECRAFT_ settings")
	fs.StringVar(&opts.Input, "in", "", "Input document (empty starts a blank page)")
	fs.StringVar(&opts.Output, "out", "-", "Output document (- for stdout)")
	fs.StringVar(&opts.Format, "format", "", "Input format: json, yaml, cbor or html (default from extension)")
	fs.StringVar(&opts.OutFormat, "out-format", "", "Output format (default from -out, then the input format)")
	fs.StringVar(&opts.Script, "script", "", "YAML script of editor steps")
	fs.StringVar(&opts.Script, "s", "", "YAML script of editor steps (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "pagecraft - structured page editor\n\n")
		fmt.Fprintf(stderr, "Usage: pagecraft [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  pagecraft -in page.json -s edits.yaml        Apply edits, print JSON\n")
		fmt.Fprintf(stderr, "  pagecraft -in page.html -out page.yaml       Convert HTML to YAML\n")
		fmt.Fprintf(stderr, "  pagecraft -c pagecraft.toml -in page.cbor    Use a config file\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showVersion {
		fmt.Fprintf(stdout, "pagecraft %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, true
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return opts, 2, true
	}
	return opts, 0, false
}

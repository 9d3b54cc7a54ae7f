// Command morphja segments Japanese text into words.
//
// Usage:
//
//	morphja tokenize [options] [text]   # tokenize text, or stdin when omitted
//	morphja batch [options]             # tokenize each stdin line concurrently
//	morphja compare [options] [text]    # compare with kagome's segmentation
//	morphja dump [options] [text]       # write per-sentence JSON dumps
//	morphja version                     # show version information
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/stream"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"morphja/config"
	"morphja/dictionary"
	"morphja/kanji"
	"morphja/loader"
	"morphja/logger"
	"morphja/model"
	"morphja/refcheck"
	"morphja/tokenize"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// errDiverged makes compare exit non-zero when the segmentations differ.
var errDiverged = errors.New("segmentation differs from reference")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "morphja %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	switch args[0] {
	case "tokenize":
		return runTokenize(ctx, args[1:], stdin, stdout)
	case "batch":
		return runBatch(ctx, args[1:], stdin, stdout)
	case "compare":
		return runCompare(ctx, args[1:], stdin, stdout)
	case "dump":
		return runDump(ctx, args[1:], stdin, stdout)
	case "version":
		printVersion(stdout)
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}
	printUsage(stdout)
	return fmt.Errorf("unknown command %q", args[0])
}

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg  *config.Config
	log  *zap.Logger
	tok  *tokenize.Tokenizer
	args []string
}

// newFlagSet returns a flag set carrying the shared options. Flags named
// after config keys override the file and the environment.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "Path to config file (YAML)")
	fs.String("dictionary.dir", "dict", "Directory holding the dictionary buffers")
	fs.Bool("dictionary.gzip", false, "Read gzip-compressed buffers (NAME.gz)")
	fs.Int("tokenizer.maxSentenceLength", 0, "Reject sentences longer than this many characters (0 = no limit)")
	fs.String("log.level", "info", "Log level: debug, info, warn, error")
	fs.String("log.format", "console", "Log format: console or json")
	return fs
}

func setup(fs *pflag.FlagSet, args []string) (*app, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(configPath, config.WithFlags(fs))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	src := loader.NewDirSource(cfg.Dictionary.Dir, cfg.Dictionary.Gzip)
	dicts, err := dictionary.Load(src, dictionary.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("load dictionary from %s: %w", cfg.Dictionary.Dir, err)
	}

	tok := tokenize.New(dicts,
		tokenize.WithLogger(log),
		tokenize.WithMaxSentenceLength(cfg.Tokenizer.MaxSentenceLength))
	return &app{cfg: cfg, log: log, tok: tok, args: fs.Args()}, nil
}

// input returns the positional arguments joined, or all of stdin when there
// are none.
func (a *app) input(stdin io.Reader) (string, error) {
	if len(a.args) > 0 {
		return strings.Join(a.args, " "), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// =============================================================================
// tokenize
// =============================================================================

func runTokenize(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := newFlagSet("tokenize")
	format := fs.StringP("format", "f", "text", "Output format: text, json or yaml")
	furigana := fs.Bool("furigana", false, "Append a furigana column in text output")
	a, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	text, err := a.input(stdin)
	if err != nil {
		return err
	}
	tokens, err := a.tok.TokenizeContext(ctx, text)
	if err != nil {
		return err
	}
	return writeTokens(stdout, *format, tokens, *furigana)
}

func writeTokens(w io.Writer, format string, tokens []model.Token, furigana bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tokens)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(tokens)
	case "text":
		bw := bufio.NewWriter(w)
		for _, t := range tokens {
			fmt.Fprintf(bw, "%s\t%s", t.SurfaceForm, strings.Join([]string{
				t.POS, t.POSDetail1, t.POSDetail2, t.POSDetail3,
				t.ConjugatedType, t.ConjugatedForm, t.BasicForm, t.Reading, t.Pronunciation,
			}, ","))
			if furigana {
				fmt.Fprintf(bw, "\t%s", kanji.Furigana(t.SurfaceForm, t.Reading))
			}
			bw.WriteByte('\n')
		}
		bw.WriteString("EOS\n")
		return bw.Flush()
	}
	return fmt.Errorf("unknown format %q", format)
}

// =============================================================================
// batch
// =============================================================================

// batchResult is one output line of the batch command.
type batchResult struct {
	Line   int           `json:"line"`
	Tokens []model.Token `json:"tokens"`
	Error  string        `json:"error,omitempty"`
}

func runBatch(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := newFlagSet("batch")
	fs.Int("batch.workers", 4, "Number of lines tokenized concurrently")
	a, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	enc := json.NewEncoder(stdout)
	var writeErr error
	s := stream.New().WithMaxGoroutines(a.cfg.Batch.Workers)

	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lines := 0
	for sc.Scan() {
		line, n := sc.Text(), lines+1
		lines++
		s.Go(func() stream.Callback {
			tokens, err := a.tok.TokenizeContext(ctx, line)
			res := batchResult{Line: n, Tokens: tokens}
			if err != nil {
				res.Error = err.Error()
			}
			return func() {
				if writeErr == nil {
					writeErr = enc.Encode(res)
				}
			}
		})
	}
	s.Wait()

	if err := sc.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	a.log.Info("batch done", zap.Int("lines", lines), zap.Int("workers", a.cfg.Batch.Workers))
	return writeErr
}

// =============================================================================
// compare
// =============================================================================

func runCompare(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := newFlagSet("compare")
	fs.String("reference.dict", refcheck.IPA, "kagome dictionary: ipa or uni")
	a, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	d, err := refcheck.DictFor(a.cfg.Reference.Dict)
	if err != nil {
		return err
	}
	ref, err := refcheck.New(d)
	if err != nil {
		return err
	}

	text, err := a.input(stdin)
	if err != nil {
		return err
	}
	tokens, err := a.tok.TokenizeContext(ctx, text)
	if err != nil {
		return err
	}
	rep := ref.Compare(text, tokens)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return err
	}
	if !rep.Agree() {
		return fmt.Errorf("%w at %d positions", errDiverged, len(rep.Divergences))
	}
	return nil
}

// =============================================================================
// dump
// =============================================================================

// sentenceDump is the content of one dump file.
type sentenceDump struct {
	tokenize.Tokenized
	Lattice any `json:"lattice"`
}

func runDump(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := newFlagSet("dump")
	out := fs.StringP("out", "o", "logs", "Directory receiving the dumps")
	a, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	text, err := a.input(stdin)
	if err != nil {
		return err
	}
	sentences, err := a.tok.Analyze(ctx, text)
	if err != nil {
		return err
	}
	fsys := afero.NewOsFs()
	if err := logger.InitLogs(fsys, *out); err != nil {
		return err
	}
	for _, s := range sentences {
		id := uuid.NewString()
		l, err := a.tok.Lattice(s.Sentence.Text)
		if err != nil {
			return err
		}
		if err := logger.LogJSON(fsys, *out, id, sentenceDump{Tokenized: s, Lattice: l.Nodes()}); err != nil {
			return err
		}
		a.log.Debug("dumped sentence", zap.String("id", id), zap.Int("sentence", s.Sentence.Index))
		fmt.Fprintln(stdout, id)
	}
	return nil
}

// =============================================================================
// version and help
// =============================================================================

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "morphja %s\n", Version)
	fmt.Fprintf(w, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `morphja - Japanese morphological analyzer

Usage:
  morphja <command> [options] [text]

Commands:
  tokenize   Tokenize text (arguments or stdin)
  batch      Tokenize stdin line by line, one JSON result per line
  compare    Compare the segmentation with kagome (ipa or uni)
  dump       Write tokens and lattice of each sentence as JSON files
  version    Show version information
  help       Show this help message

Common options:
  -c, --config <path>                  Path to configuration file (YAML)
  --dictionary.dir <dir>               Dictionary directory (default "dict")
  --dictionary.gzip                    Read NAME.gz buffers
  --tokenizer.maxSentenceLength <n>    Sentence length limit
  --log.level <level>                  debug, info, warn, error
  --log.format <format>                console or json

Environment variables MORPHJA_<KEY> override the config file, e.g.
MORPHJA_DICTIONARY_DIR=/opt/dict.`)
}

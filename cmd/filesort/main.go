// Command filesort sorts files too large to fit in memory and compares
// sorted files.
//
//	filesort sort [flags] [input ...]
//	filesort diff [flags] a b
//
// With no inputs, sort reads standard input.
package main

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/lanrat/filesort"
	"github.com/lanrat/filesort/codec"
	"github.com/lanrat/filesort/diff"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = `usage:
  filesort sort [flags] [input ...]
  filesort diff [flags] a b
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	var err error
	switch args[0] {
	case "sort":
		err = runSort(ctx, args[1:], stdin, stderr)
	case "diff":
		var differ bool
		differ, err = runDiff(ctx, args[1:], stdout, stderr)
		if err == nil && differ {
			return 1
		}
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	var usageErr usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "%s\n%s", err, usage)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "filesort: %s\n", err)
		return 3
	}
	return 0
}

type usageError string

func (u usageError) Error() string { return string(u) }

// newLogger logs to w. Progress messages are only shown when verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.InfoLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

type lineFormat struct {
	name   string
	column int
	comma  string
}

func (f lineFormat) commaRune() (rune, error) {
	if f.comma == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(f.comma)
	if r == utf8.RuneError || size != len(f.comma) {
		return 0, usageError(fmt.Sprintf("invalid -comma %q: must be a single character", f.comma))
	}
	return r, nil
}

func addFormatFlags(fs *flag.FlagSet, f *lineFormat) {
	fs.StringVar(&f.name, "format", "lines", "record format: lines, crlf or csv")
	fs.IntVar(&f.column, "column", 0, "csv column to sort by, starting at 0")
	fs.StringVar(&f.comma, "comma", "", "csv field delimiter (default \",\")")
}

func runSort(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) error {
	fs := flag.NewFlagSet("sort", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		output  string
		format  lineFormat
		verbose bool
	)
	config := filesort.DefaultConfig()
	fs.StringVar(&output, "o", "", "output file (required)")
	fs.BoolVar(&config.Unique, "u", false, "output only the first of equal records")
	fs.IntVar(&config.MaxItemsPerFile, "chunk", config.MaxItemsPerFile, "records sorted in memory per temp file")
	fs.IntVar(&config.MaxFilesPerMerge, "fanin", config.MaxFilesPerMerge, "maximum files merged at once")
	fs.IntVar(&config.BufferSize, "buffer", config.BufferSize, "I/O buffer size in bytes")
	fs.StringVar(&config.TempFilesDir, "tmp", "", "temp directory (default: the output's directory)")
	fs.BoolVar(&verbose, "v", false, "log progress")
	addFormatFlags(fs, &format)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if output == "" {
		return usageError("sort: -o is required")
	}
	if config.TempFilesDir == "" {
		// same filesystem as the output so the final rename does not cross devices
		config.TempFilesDir = filepath.Dir(output)
	}

	logger := newLogger(stderr, verbose)
	defer logger.Sync() //nolint:errcheck
	config.Logger = filesort.ZapLogger(logger)

	var inputs []filesort.Input
	if fs.NArg() == 0 {
		inputs = []filesort.Input{filesort.ReaderInput(stdin)}
	} else {
		inputs = filesort.FileInputs(nil, fs.Args()...)
	}

	switch format.name {
	case "lines":
		return sortWith(ctx, codec.Lines(), cmp.Compare[string], config, inputs, output)
	case "crlf":
		return sortWith(ctx, codec.LinesCRLF(), cmp.Compare[string], config, inputs, output)
	case "csv":
		comma, err := format.commaRune()
		if err != nil {
			return err
		}
		c := codec.CSV(codec.CSVOptions{Comma: comma})
		return sortWith(ctx, c, codec.CompareColumn(format.column), config, inputs, output)
	default:
		return usageError(fmt.Sprintf("unknown -format %q", format.name))
	}
}

func sortWith[T any](ctx context.Context, c codec.Codec[T], compare filesort.CompareFunc[T], config *filesort.Config, inputs []filesort.Input, output string) error {
	s, err := filesort.New(c, compare, config)
	if err != nil {
		return err
	}
	return s.Sort(ctx, inputs, output)
}

// runDiff reports whether the two files differ.
func runDiff(ctx context.Context, args []string, stdout, stderr io.Writer) (bool, error) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		format lineFormat
		common bool
		stats  bool
	)
	fs.BoolVar(&common, "common", false, "also print records present in both files")
	fs.BoolVar(&stats, "stats", false, "print counts after the records")
	addFormatFlags(fs, &format)
	if err := fs.Parse(args); err != nil {
		return false, err
	}
	if fs.NArg() != 2 {
		return false, usageError("diff: exactly two files are required")
	}
	a, b := fs.Arg(0), fs.Arg(1)

	var (
		r   diff.Result
		err error
	)
	switch format.name {
	case "lines", "crlf":
		r, err = diff.Files(ctx, nil, a, b, codec.Lines(), cmp.Compare[string], printer[string](stdout, common, func(s string) string { return s }))
	case "csv":
		comma, cerr := format.commaRune()
		if cerr != nil {
			return false, cerr
		}
		sep := ","
		if comma != 0 {
			sep = string(comma)
		}
		c := codec.CSV(codec.CSVOptions{Comma: comma})
		r, err = diff.Files(ctx, nil, a, b, c, diff.CompareFunc[[]string](codec.CompareColumn(format.column)), printer(stdout, common, func(row []string) string { return strings.Join(row, sep) }))
	default:
		return false, usageError(fmt.Sprintf("unknown -format %q", format.name))
	}
	if err != nil {
		return false, err
	}
	if stats {
		fmt.Fprintln(stdout, r.String())
	}
	return r.ExtraA > 0 || r.ExtraB > 0, nil
}

func printer[T any](w io.Writer, common bool, format func(T) string) diff.ResultFunc[T] {
	fn := func(d diff.Delta, rec T) error {
		_, err := fmt.Fprintf(w, "%s %s\n", d, format(rec))
		return err
	}
	if common {
		return fn
	}
	return diff.Differences[T](fn)
}

// Command pqcat prints the contents and metadata of Apache Parquet files.
//
// Usage:
//
//	pqcat cat [--json | --csv [--no-header]] [--nested-fields error|omit|json] <paths>...
//	pqcat head [-n 5] [--json | --csv [--no-header]] <file>
//	pqcat sample [-n 5] [--json] <file>
//	pqcat rowcount <paths>...
//	pqcat size [--pretty] <paths>...
//	pqcat schema [--detailed] <paths>...
//
// Paths given to cat, rowcount, size and schema may be files, directories or
// glob patterns. Every path is checked before any of them is read.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/vegasq/pqcat/internal/reader"
	"github.com/vegasq/pqcat/internal/stream"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cli carries the state shared by every subcommand.
type cli struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
	logger log.Logger
	rng    *rand.Rand

	debug     bool
	batchSize int
}

// run parses args, executes the selected command and returns the process
// exit code.
func run(args []string, stdout, stderr io.Writer) int {
	out := bufio.NewWriter(stdout)
	c := &cli{
		ctx:    context.Background(),
		stdout: out,
		stderr: stderr,
		logger: log.NewNopLogger(),
	}

	app := kingpin.New("pqcat", "Inspect Apache Parquet files from the command line.")
	app.Version(version)
	app.HelpFlag.Short('h')
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	app.Flag("debug", "Write debug logs to stderr.").
		Envar("PQCAT_DEBUG").
		BoolVar(&c.debug)
	app.Flag("batch-size", "Rows per decoded batch for JSON and CSV output.").
		Envar("PQCAT_BATCH_SIZE").
		Default(strconv.Itoa(reader.DefaultBatchSize)).
		IntVar(&c.batchSize)
	app.PreAction(c.setup)

	addCatCommand(app, c)
	addHeadCommand(app, c)
	addSampleCommand(app, c)
	addRowCountCommand(app, c)
	addSizeCommand(app, c)
	addSchemaCommand(app, c)

	_, err := app.Parse(args)
	if flushErr := out.Flush(); err == nil && flushErr != nil {
		err = fmt.Errorf("writing output: %w", flushErr)
	}
	if err != nil {
		c.reportError(err)
		return 1
	}
	return 0
}

// setup runs once flags are parsed and before any command action.
func (c *cli) setup(*kingpin.ParseContext) error {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(c.stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	allowed := level.AllowInfo()
	if c.debug {
		allowed = level.AllowDebug()
	}
	c.logger = level.NewFilter(logger, allowed)

	if c.batchSize <= 0 {
		return fmt.Errorf("--batch-size must be positive, got %d", c.batchSize)
	}
	return nil
}

func (c *cli) random() *rand.Rand {
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c.rng
}

// reportError prints err the way every command fails: a single Error line
// followed by a hint when one applies.
func (c *cli) reportError(err error) {
	fmt.Fprintf(c.stderr, "Error: %v\n", err)

	var nested *stream.NestedFieldsError
	switch {
	case errors.Is(err, reader.ErrPathNotFound):
		fmt.Fprintf(c.stderr, "Please check the file path and try again.\n")
	case errors.As(err, &nested):
		fmt.Fprintf(c.stderr, "Use --nested-fields omit to drop these columns or --nested-fields json to write them as JSON text.\n")
	}
}

// resolvePaths expands args into files and checks that all of them exist
// before any is opened.
func (c *cli) resolvePaths(args []string) ([]string, error) {
	paths, err := reader.ExpandPaths(args)
	if err != nil {
		return nil, err
	}
	level.Debug(c.logger).Log("msg", "resolved input files", "count", len(paths), "files", fmt.Sprint(paths))

	if err := reader.CheckPaths(paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// withFile opens path, hands it to fn and closes it again.
func (c *cli) withFile(path string, fn func(*reader.File) error) error {
	f, err := reader.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	level.Debug(c.logger).Log("msg", "opened file", "file", path, "rows", f.NumRows())
	return fn(f)
}

package main

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"

	"github.com/vegasq/pqcat/internal/output"
	"github.com/vegasq/pqcat/internal/reader"
	"github.com/vegasq/pqcat/internal/stream"
)

// rowCountCommand prints the number of rows of each file.
type rowCountCommand struct {
	cli   *cli
	paths []string
}

func (cmd *rowCountCommand) run(*kingpin.ParseContext) error {
	paths, err := cmd.cli.resolvePaths(cmd.paths)
	if err != nil {
		return err
	}

	for _, path := range paths {
		err := cmd.cli.withFile(path, func(f *reader.File) error {
			count, err := stream.RowCount(f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.cli.stdout, "File Name: %s: %d rows\n", path, count)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func addRowCountCommand(app *kingpin.Application, c *cli) {
	cmd := &rowCountCommand{cli: c}
	clause := app.Command("rowcount", "Print the number of rows of parquet files.").Action(cmd.run)
	clause.Arg("paths", "Files, directories or glob patterns to read.").Required().StringsVar(&cmd.paths)
}

// sizeCommand prints the column data size of each file. Footer bytes are
// not included.
type sizeCommand struct {
	cli    *cli
	paths  []string
	pretty bool
}

func (cmd *sizeCommand) run(*kingpin.ParseContext) error {
	paths, err := cmd.cli.resolvePaths(cmd.paths)
	if err != nil {
		return err
	}

	format := func(n int64) string { return strconv.FormatInt(n, 10) }
	heading := "Size in Bytes (column data, footer excluded):"
	if cmd.pretty {
		format = output.PrettySize
		heading = "Size (column data, footer excluded):"
	}

	bold := color.New(color.Bold)
	bold.Fprintln(cmd.cli.stdout, heading)

	for _, path := range paths {
		err := cmd.cli.withFile(path, func(f *reader.File) error {
			uncompressed, compressed, err := stream.Size(f)
			if err != nil {
				return err
			}
			level.Debug(cmd.cli.logger).Log("msg", "size", "file", path, "uncompressed", uncompressed, "compressed", compressed)

			_, err = fmt.Fprintf(cmd.cli.stdout, "\nFile Name: %s\nUncompressed Size: %s\nCompressed Size: %s\n",
				path, format(uncompressed), format(compressed))
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func addSizeCommand(app *kingpin.Application, c *cli) {
	cmd := &sizeCommand{cli: c}
	clause := app.Command("size", "Print the compressed and uncompressed size of parquet files.").Action(cmd.run)
	clause.Flag("pretty", "Print sizes in human readable units.").Short('p').BoolVar(&cmd.pretty)
	clause.Arg("paths", "Files, directories or glob patterns to read.").Required().StringsVar(&cmd.paths)
}

// schemaCommand prints the schema of each file.
type schemaCommand struct {
	cli      *cli
	paths    []string
	detailed bool
}

func (cmd *schemaCommand) run(*kingpin.ParseContext) error {
	paths, err := cmd.cli.resolvePaths(cmd.paths)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	for i, path := range paths {
		err := cmd.cli.withFile(path, func(f *reader.File) error {
			info, err := f.Describe()
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprintln(cmd.cli.stdout)
			}
			bold.Fprintf(cmd.cli.stdout, "Metadata for file: %s\n\n", path)
			return output.WriteSchema(cmd.cli.stdout, info, cmd.detailed)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func addSchemaCommand(app *kingpin.Application, c *cli) {
	cmd := &schemaCommand{cli: c}
	clause := app.Command("schema", "Print the schema of parquet files.").Action(cmd.run)
	clause.Flag("detailed", "Also print row group metadata.").Short('d').BoolVar(&cmd.detailed)
	clause.Arg("paths", "Files, directories or glob patterns to read.").Required().StringsVar(&cmd.paths)
}

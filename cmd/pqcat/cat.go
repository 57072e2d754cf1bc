package main

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"

	"github.com/vegasq/pqcat/internal/reader"
	"github.com/vegasq/pqcat/internal/render"
)

// catCommand prints every row of each input file.
type catCommand struct {
	cli   *cli
	paths []string
	out   *outputFlags
}

func (cmd *catCommand) run(*kingpin.ParseContext) error {
	opts, err := cmd.out.options(cmd.cli.batchSize)
	if err != nil {
		return err
	}
	level.Debug(cmd.cli.logger).Log("msg", "cat", "format", opts.Format, "nested_fields", opts.Policy)

	paths, err := cmd.cli.resolvePaths(cmd.paths)
	if err != nil {
		return err
	}

	for _, path := range paths {
		err := cmd.cli.withFile(path, func(f *reader.File) error {
			return render.Render(cmd.cli.ctx, f, opts, cmd.cli.stdout)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func addCatCommand(app *kingpin.Application, c *cli) {
	cmd := &catCommand{cli: c}
	clause := app.Command("cat", "Print the rows of parquet files, directories or glob patterns.").Action(cmd.run)
	cmd.out = addOutputFlags(clause)
	clause.Arg("paths", "Files, directories or glob patterns to read.").Required().StringsVar(&cmd.paths)
}

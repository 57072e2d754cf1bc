package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"

	"github.com/vegasq/pqcat/internal/reader"
	"github.com/vegasq/pqcat/internal/render"
)

// headCommand prints the first rows of a file.
type headCommand struct {
	cli     *cli
	path    string
	records int64
	out     *outputFlags
}

func (cmd *headCommand) run(*kingpin.ParseContext) error {
	if cmd.records < 0 {
		return fmt.Errorf("--records must not be negative, got %d", cmd.records)
	}

	opts, err := cmd.out.options(cmd.cli.batchSize)
	if err != nil {
		return err
	}
	opts.MaxRows = cmd.records

	level.Debug(cmd.cli.logger).Log("msg", "head", "file", cmd.path, "records", cmd.records, "format", opts.Format)

	if err := reader.CheckPaths([]string{cmd.path}); err != nil {
		return err
	}
	return cmd.cli.withFile(cmd.path, func(f *reader.File) error {
		return render.Render(cmd.cli.ctx, f, opts, cmd.cli.stdout)
	})
}

func addHeadCommand(app *kingpin.Application, c *cli) {
	cmd := &headCommand{cli: c}
	clause := app.Command("head", "Print the first records of a parquet file.").Action(cmd.run)
	clause.Flag("records", "The number of records to show.").Short('n').Default("5").Int64Var(&cmd.records)
	cmd.out = addOutputFlags(clause)
	clause.Arg("file", "Parquet file to read.").Required().StringVar(&cmd.path)
}

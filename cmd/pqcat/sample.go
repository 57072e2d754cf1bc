package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"

	"github.com/vegasq/pqcat/internal/reader"
	"github.com/vegasq/pqcat/internal/render"
)

// sampleCommand prints randomly chosen rows of a file in file order.
type sampleCommand struct {
	cli     *cli
	path    string
	records int64
	json    bool
}

func (cmd *sampleCommand) run(*kingpin.ParseContext) error {
	if cmd.records < 0 {
		return fmt.Errorf("--records must not be negative, got %d", cmd.records)
	}
	level.Debug(cmd.cli.logger).Log("msg", "sample", "file", cmd.path, "records", cmd.records, "json", cmd.json)

	if err := reader.CheckPaths([]string{cmd.path}); err != nil {
		return err
	}
	return cmd.cli.withFile(cmd.path, func(f *reader.File) error {
		return render.Sample(f, cmd.records, cmd.json, cmd.cli.random(), cmd.cli.stdout)
	})
}

func addSampleCommand(app *kingpin.Application, c *cli) {
	cmd := &sampleCommand{cli: c}
	clause := app.Command("sample", "Print a random sample of records from a parquet file.").Action(cmd.run)
	clause.Flag("records", "The number of records to sample.").Short('n').Default("5").Int64Var(&cmd.records)
	clause.Flag("json", "Use JSON lines format for printing.").Short('j').BoolVar(&cmd.json)
	clause.Arg("file", "Parquet file to read.").Required().StringVar(&cmd.path)
}

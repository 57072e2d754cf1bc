package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/vegasq/pqcat/internal/render"
	"github.com/vegasq/pqcat/internal/stream"
)

// outputFlags are the format flags shared by cat and head.
type outputFlags struct {
	json           bool
	csv            bool
	noHeader       bool
	nestedFields   string
	escapeFormulas bool
}

func addOutputFlags(cmd *kingpin.CmdClause) *outputFlags {
	f := &outputFlags{}
	cmd.Flag("json", "Use JSON lines format for printing.").Short('j').BoolVar(&f.json)
	cmd.Flag("csv", "Use CSV format for printing.").Short('c').BoolVar(&f.csv)
	cmd.Flag("no-header", "Use CSV format without a header for printing.").BoolVar(&f.noHeader)
	cmd.Flag("nested-fields", "How to handle nested fields in CSV output: error, omit or json.").
		PlaceHolder("error").
		EnumVar(&f.nestedFields, stream.PolicyNames()...)
	cmd.Flag("escape-formulas", "Prefix CSV cells that a spreadsheet would run as a formula with a single quote.").
		BoolVar(&f.escapeFormulas)
	cmd.Validate(f.validate)
	return f
}

func (f *outputFlags) validate(*kingpin.CmdClause) error {
	if f.json && f.csv {
		return fmt.Errorf("--json and --csv cannot be used together")
	}
	if !f.csv {
		switch {
		case f.noHeader:
			return fmt.Errorf("--no-header requires --csv")
		case f.nestedFields != "":
			return fmt.Errorf("--nested-fields requires --csv")
		case f.escapeFormulas:
			return fmt.Errorf("--escape-formulas requires --csv")
		}
	}
	return nil
}

// options converts the flags into render options with no row limit.
func (f *outputFlags) options(batchSize int) (render.Options, error) {
	format, err := render.SelectFormat(f.json, f.csv, f.noHeader)
	if err != nil {
		return render.Options{}, err
	}

	policy := stream.PolicyError
	if f.nestedFields != "" {
		if policy, err = stream.ParsePolicy(f.nestedFields); err != nil {
			return render.Options{}, err
		}
	}

	return render.Options{
		Format:         format,
		Policy:         policy,
		MaxRows:        stream.NoLimit,
		BatchSize:      batchSize,
		EscapeFormulas: f.escapeFormulas,
	}, nil
}

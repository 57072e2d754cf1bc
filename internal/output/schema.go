package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/pqcat/internal/reader"
)

// WriteSchema prints the columns of a file as a table. With detailed set the
// row groups are listed as well.
func WriteSchema(w io.Writer, info reader.FileInfo, detailed bool) error {
	columns := tablewriter.NewWriter(w)
	columns.SetHeader([]string{"Name", "Type", "Physical", "Logical", "Repetition"})
	columns.SetAutoFormatHeaders(false)
	for _, c := range info.Columns {
		columns.Append([]string{c.Name, c.Type, c.PhysicalType, c.LogicalType, c.Repetition})
	}
	columns.Render()

	if !detailed {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\nrows: %d, row groups: %d, created by: %s\n\n",
		info.NumRows, len(info.RowGroups), info.CreatedBy); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	groups := tablewriter.NewWriter(w)
	groups.SetHeader([]string{"Row Group", "Rows", "Uncompressed", "Compressed"})
	groups.SetAutoFormatHeaders(false)
	for i, rg := range info.RowGroups {
		groups.Append([]string{
			strconv.Itoa(i),
			strconv.FormatInt(rg.NumRows, 10),
			PrettySize(rg.UncompressedBytes),
			PrettySize(rg.CompressedBytes),
		})
	}
	groups.Render()
	return nil
}

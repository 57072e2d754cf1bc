// Package stream bounds, projects, aggregates and samples parquet data on its
// way from a decoder to a text encoder.
//
// Everything here is pull-based: a Source is asked for the next batch or row
// only when a consumer needs it, so a row budget that reaches zero stops the
// decoder before it touches the remaining row groups.
//
// # Limiting
//
//	batches := stream.LimitBatches(src, 120)
//	for {
//	    rec, err := batches.Next()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    ...
//	    rec.Release()
//	}
//
// # Nested fields
//
// Encoders that only understand flat columns (CSV) are fed through
// ProjectBatches, which either rejects, drops or JSON-encodes list, map and
// struct columns depending on the Policy.
//
// # Metadata
//
// RowCount and Size read row-group metadata only. Size excludes the file
// footer, so it approximates but never equals the on-disk file size.
//
// # Sampling
//
// SelectPositions draws a uniform subset of row positions and EmitSelected
// replays the decoded rows, forwarding only the selected ones in file order.
package stream

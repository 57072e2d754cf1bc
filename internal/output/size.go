package output

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// PrettySize renders a byte count with IEC units (KiB, MiB, ...). Counts
// below one KiB are spelled out in bytes.
func PrettySize(bytes int64) string {
	if bytes < 1024 {
		return strconv.FormatInt(bytes, 10) + " Bytes"
	}
	return humanize.IBytes(uint64(bytes))
}

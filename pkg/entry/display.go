package entry

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
)

// Table renders entries as aligned rows, newest first as given. The row
// whose id matches selected is marked.
func Table(w io.Writer, selected string, entries ...Entry) {
	if len(entries) == 0 {
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60

	for _, e := range entries {
		mark := " "
		if e.ID == selected {
			mark = "*"
		}
		tbl.AddRow(mark, e.Date, e.ID, e.PreviewText)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

package printers

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/entry"
)

// PrettyPrint writes human-readable output to Out, color.Output when nil.
type PrettyPrint struct {
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	w := pp.out()

	_, _ = t.Fprint(w, title)
	_, _ = c.Fprintf(w, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(w, " entry")
	default:
		_, _ = c.Fprintln(w, " entries")
	}
}

// Entries prints the catalog, marking the selected entry.
func (pp *PrettyPrint) Entries(selected string, entries ...entry.Entry) {
	pp.TitleWithCount("Entries", len(entries))
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	entry.Table(pp.out(), selected, entries...)
}

// SyncState prints cloud sync status.
func (pp *PrettyPrint) SyncState(st app.SyncState) {
	w := pp.out()
	_, _ = color.New(color.Bold, color.Underline).Fprintln(w, "Sync")

	on := color.New(color.FgGreen).Sprint("yes")
	off := color.New(color.Faint).Sprint("no")
	yesNo := func(b bool) string {
		if b {
			return on
		}
		return off
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("cloud available", yesNo(st.CloudAvailable))
	tbl.AddRow("using cloud", yesNo(st.UsingCloud))
	tbl.AddRow("syncing", yesNo(st.Syncing))
	tbl.AddRow("active root", st.ActiveRoot)
	tbl.AddRow("local root", st.LocalRoot)
	if st.CloudRoot != "" {
		tbl.AddRow("cloud root", st.CloudRoot)
	}
	if st.LastError != "" {
		tbl.AddRow("last error", color.New(color.FgRed).Sprint(st.LastError))
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// KeyValues prints a sorted two-column table under title.
func (pp *PrettyPrint) KeyValues(title string, kv map[string]string) {
	w := pp.out()
	_, _ = color.New(color.Bold, color.Underline).Fprintln(w, title)

	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, k := range keys {
		tbl.AddRow(k, kv[k])
	}
	_, _ = fmt.Fprintln(w, tbl)
}

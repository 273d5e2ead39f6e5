package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/entry"
)

func TestPrettyPrintEntries(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}

	e := entry.New(time.Date(2025, time.June, 2, 9, 0, 0, 0, time.Local)).WithContent("hello there")
	pp.Entries(e.ID, e)

	out := buf.String()
	if !strings.Contains(out, "Entries - 1 entry") {
		t.Fatalf("expected title with count, got %q", out)
	}
	if !strings.Contains(out, "hello there") || !strings.Contains(out, "Jun 2") {
		t.Fatalf("expected entry row, got %q", out)
	}
}

func TestPrettyPrintSyncState(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}

	pp.SyncState(app.SyncState{CloudAvailable: true, ActiveRoot: "/tmp/x", LocalRoot: "/tmp/x", LastError: "boom"})

	out := buf.String()
	for _, want := range []string{"cloud available", "yes", "last error", "boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

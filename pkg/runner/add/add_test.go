package add

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/freewrite/pkg/app/apptest"
)

func TestAddNewEntry(t *testing.T) {
	ctx := context.Background()
	f := apptest.New(t, false)
	text := "fresh start"

	a := Add{Catalog: f.Catalog, Text: &text, JSON: true, Out: &bytes.Buffer{}}
	if err := a.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	sel, ok := f.Catalog.Selected()
	if !ok || sel.PreviewText != "fresh start" {
		t.Fatalf("expected new entry selected, got %+v", sel)
	}
	if got, err := f.Catalog.Load(ctx, sel.Filename); err != nil || got != text {
		t.Fatalf("expected %q on disk, got %q (%v)", text, got, err)
	}
}

func TestAddAppends(t *testing.T) {
	ctx := context.Background()
	f := apptest.New(t, false)
	name := f.Write(t, "first")
	more := "\nsecond"

	a := Add{Catalog: f.Catalog, Ref: name, Text: &more, Append: true, Out: &bytes.Buffer{}}
	if err := a.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := f.Catalog.Load(ctx, name); got != "first\nsecond" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestEditUsesEditor(t *testing.T) {
	// "true" exits without touching the file.
	got, err := Edit("true", "unchanged")
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if got != "unchanged" {
		t.Fatalf("expected content back, got %q", got)
	}
}

func TestEditorCommandFallsBack(t *testing.T) {
	t.Setenv("VISUAL", "   ")
	t.Setenv("EDITOR", "")

	tests := map[string]struct {
		editor string
		want   []string
	}{
		"whitespace only": {
			editor: " \t ",
			want:   []string{"vi", "/tmp/x.md"},
		},
		"empty": {
			editor: "",
			want:   []string{"vi", "/tmp/x.md"},
		},
		"with flags": {
			editor: "code --wait",
			want:   []string{"code", "--wait", "/tmp/x.md"},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := EditorCommand(tc.editor, "/tmp/x.md")
			if strings.Join(c.Args, " ") != strings.Join(tc.want, " ") {
				t.Fatalf("expected args %q, got %q", tc.want, c.Args)
			}
		})
	}
}

package chat

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/freewrite/pkg/app/apptest"
	"tableflip.dev/freewrite/pkg/handoff"
)

func TestChatOpensSelectedEntry(t *testing.T) {
	f := apptest.New(t, false)
	f.Write(t, strings.Repeat("long enough to talk about ", 20))

	var opened string
	c := Chat{
		Catalog:  f.Catalog,
		Provider: handoff.ChatGPT,
		Open:     func(u string) error { opened = u; return nil },
		Out:      &bytes.Buffer{},
	}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !strings.HasPrefix(opened, "https://chat.openai.com/?m=") {
		t.Fatalf("unexpected url %q", opened)
	}
}

func TestChatRefusesWelcome(t *testing.T) {
	f := apptest.New(t, false)
	var buf bytes.Buffer
	c := Chat{Catalog: f.Catalog, Provider: handoff.Claude, PrintOnly: true, Out: &buf}
	if err := c.Do(context.Background()); !errors.Is(err, handoff.ErrGuideEntry) {
		t.Fatalf("expected ErrGuideEntry, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

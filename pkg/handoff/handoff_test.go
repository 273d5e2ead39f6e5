package handoff

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"tableflip.dev/freewrite/pkg/entry"
)

func TestCheck(t *testing.T) {
	long := strings.Repeat("word ", 80)

	if err := Check("too short"); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
	if err := Check(entry.Welcome + long); !errors.Is(err, ErrGuideEntry) {
		t.Fatalf("expected ErrGuideEntry, got %v", err)
	}
	if err := Check(long); err != nil {
		t.Fatalf("expected long entry accepted, got %v", err)
	}
}

func TestURL(t *testing.T) {
	text := "  " + strings.Repeat("a", 400) + "\n"

	for _, tc := range []struct {
		p      Provider
		prefix string
		param  string
	}{
		{p: ChatGPT, prefix: "https://chat.openai.com/?m=", param: "m"},
		{p: Claude, prefix: "https://claude.ai/new?q=", param: "q"},
	} {
		u, err := URL(tc.p, text)
		if err != nil {
			t.Fatalf("%s: %v", tc.p, err)
		}
		if !strings.HasPrefix(u, tc.prefix) {
			t.Fatalf("%s: unexpected url %q", tc.p, u)
		}
		parsed, err := url.Parse(u)
		if err != nil {
			t.Fatal(err)
		}
		q := parsed.Query().Get(tc.param)
		if !strings.HasSuffix(q, "\n\n"+strings.Repeat("a", 400)) {
			t.Fatalf("%s: expected trimmed entry after prompt, got %q", tc.p, q[len(q)-20:])
		}
	}

	if _, err := URL("bard", text); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestOpenUsesOpener(t *testing.T) {
	var opened string
	u, err := Open(Claude, strings.Repeat("b", 400), func(u string) error {
		opened = u
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if opened != u {
		t.Fatalf("expected %q opened, got %q", u, opened)
	}

	boom := errors.New("no browser")
	if _, err := Open(Claude, strings.Repeat("b", 400), func(string) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected opener error, got %v", err)
	}
}

func TestParseProvider(t *testing.T) {
	if p, err := ParseProvider(" Claude "); err != nil || p != Claude {
		t.Fatalf("got %q, %v", p, err)
	}
	if p, err := ParseProvider("openai"); err != nil || p != ChatGPT {
		t.Fatalf("got %q, %v", p, err)
	}
	if _, err := ParseProvider("x"); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

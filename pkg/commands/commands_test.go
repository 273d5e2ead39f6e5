package commands

import (
	"net"
	"path/filepath"
	"testing"

	"tableflip.dev/freewrite/pkg/store"
)

func TestNewRegistersCommands(t *testing.T) {
	root := New()
	for _, name := range []string{"ui", "list", "show", "new", "write", "delete", "sync", "watch", "chat", "export", "prefs", "mcp", "info", "version", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Fatalf("expected %q to be registered: %v", name, err)
		}
	}
}

func TestParseOnOff(t *testing.T) {
	for in, want := range map[string]bool{"on": true, "ON": true, "cloud": true, "off": false, "local": false, "0": false} {
		got, err := parseOnOff(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %v", in, want)
		}
	}
	if _, err := parseOnOff("maybe"); err == nil {
		t.Fatalf("expected error for maybe")
	}
}

func TestSetPref(t *testing.T) {
	p, err := store.OpenPreferences(filepath.Join(t.TempDir(), "prefs"))
	if err != nil {
		t.Fatal(err)
	}
	p.DefaultScheme = func() string { return store.SchemeLight }

	if err := setPref(p, store.PrefColorScheme, "dark"); err != nil {
		t.Fatal(err)
	}
	if err := setPref(p, store.PrefFontSize, "22"); err != nil {
		t.Fatal(err)
	}
	if err := setPref(p, store.PrefUseCloudSync, "on"); err != nil {
		t.Fatal(err)
	}
	got := p.All()
	want := map[string]string{
		store.PrefUseCloudSync: "true",
		store.PrefColorScheme:  "dark",
		store.PrefSelectedFont: store.DefaultFont,
		store.PrefFontSize:     "22",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: expected %q, got %q", k, v, got[k])
		}
	}

	for _, bad := range [][2]string{
		{store.PrefColorScheme, "sepia"},
		{store.PrefFontSize, "big"},
		{store.PrefFontSize, "-2"},
		{"shape", "round"},
	} {
		if err := setPref(p, bad[0], bad[1]); err == nil {
			t.Fatalf("expected error setting %s=%s", bad[0], bad[1])
		}
	}
}

func TestListenURL(t *testing.T) {
	tests := map[string]struct {
		addr net.Addr
		host string
		tls  bool
		want string
	}{
		"loopback": {
			addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080},
			host: "127.0.0.1",
			want: "http://127.0.0.1:8080/mcp",
		},
		"wildcard": {
			addr: &net.TCPAddr{IP: net.IPv4zero, Port: 9000},
			host: "0.0.0.0",
			want: "http://127.0.0.1:9000/mcp",
		},
		"ipv6 tls": {
			addr: &net.TCPAddr{IP: net.IPv6loopback, Port: 443},
			host: "::1",
			tls:  true,
			want: "https://[::1]:443/mcp",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := listenURL(tc.addr, tc.host, "/mcp", tc.tls); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

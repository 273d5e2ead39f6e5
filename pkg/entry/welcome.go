package entry

import (
	_ "embed"
	"strings"
)

// Welcome is the guide text written into the very first entry.
//
//go:embed welcome.md
var Welcome string

// WelcomeMarker identifies the bundled guide entry.
const WelcomeMarker = "Welcome to Freewrite."

// IsWelcome reports whether content is (or still contains) the guide text.
func IsWelcome(content string) bool {
	return strings.Contains(content, WelcomeMarker)
}

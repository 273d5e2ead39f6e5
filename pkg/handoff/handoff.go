// Package handoff sends an entry to a chat assistant in the browser.
package handoff

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/pkg/browser"

	"tableflip.dev/freewrite/pkg/entry"
)

// Provider is a chat assistant that accepts a prompt in its URL.
type Provider string

const (
	ChatGPT Provider = "chatgpt"
	Claude  Provider = "claude"
)

// Providers lists every supported provider.
var Providers = []Provider{ChatGPT, Claude}

// MinLength is the shortest entry, in characters, worth handing off.
const MinLength = 350

var (
	ErrTooShort        = fmt.Errorf("handoff: entry must be at least %d characters", MinLength)
	ErrGuideEntry      = errors.New("handoff: the welcome entry cannot be sent")
	ErrUnknownProvider = errors.New("handoff: unknown provider")
)

const chatGPTPrompt = `below is a journal entry of mine. talk it through with me the way an old friend would. don't analyse me or hand me a breakdown, and don't repeat my thoughts back under headings.

keep it casual. help me see connections i'm missing. comfort me, validate me, push back on me, whatever it needs. say as much as you like and use markdown headings if they help.

don't just walk through every point i made. take it all in, find what ties it together, and give it back to me as a story that lands.

try to sound a bit like me, so it feels familiar, but bring your own thoughts instead of echoing mine.

start with "hey, thanks for showing me this. my thoughts:"

my entry:`

const claudePrompt = `Here is a journal entry of mine. Read it and respond with insight that feels personal rather than clinical.
Think of yourself as a mentor who understands both how I work and how I think. Look for the meaning and the feelings underneath the scattered parts.
Keep it casual, help me make connections I haven't made, and comfort, validate or challenge me as needed. Say as much as you want and use markdown headings where they help.
Use concrete images and metaphors. Let your headings tell a story that moves through my ideas.
Don't just agree with me. Show me what I might actually be after beneath the surface.
Be thoughtful, even philosophical, without sounding like therapy.
Start with 'hey, thanks for showing me this. my thoughts:' and then use markdown headings to structure your response.

My journal entry:`

// ParseProvider accepts a provider name case-insensitively.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ChatGPT, Claude:
		return p, nil
	case "gpt", "openai":
		return ChatGPT, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

// Check reports whether text may be handed off.
func Check(text string) error {
	if strings.HasPrefix(strings.TrimSpace(text), entry.WelcomeMarker) {
		return ErrGuideEntry
	}
	if utf8.RuneCountInString(text) < MinLength {
		return ErrTooShort
	}
	return nil
}

// URL builds the link that opens p with text as the start of a conversation.
func URL(p Provider, text string) (string, error) {
	if err := Check(text); err != nil {
		return "", err
	}
	var base, prompt string
	switch p {
	case ChatGPT:
		base, prompt = "https://chat.openai.com/?m=", chatGPTPrompt
	case Claude:
		base, prompt = "https://claude.ai/new?q=", claudePrompt
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, p)
	}
	return base + url.QueryEscape(prompt+"\n\n"+strings.TrimSpace(text)), nil
}

// Opener opens a URL; browser.OpenURL in production.
type Opener func(url string) error

// Open builds the URL for p and opens it. It returns the URL it opened.
func Open(p Provider, text string, open Opener) (string, error) {
	u, err := URL(p, text)
	if err != nil {
		return "", err
	}
	if open == nil {
		open = browser.OpenURL
	}
	if err := open(u); err != nil {
		return u, fmt.Errorf("handoff: open browser: %w", err)
	}
	return u, nil
}

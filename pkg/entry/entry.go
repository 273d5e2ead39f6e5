// Package entry describes a single journal entry and the filename grammar
// that encodes its identity and creation time.
package entry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// Extension is the suffix every entry file carries.
	Extension = ".md"

	// TimestampLayout is the creation time encoded into filenames.
	TimestampLayout = "2006-01-02-15-04-05"

	// DisplayLayout is the short month/day label shown next to entries.
	DisplayLayout = "Jan 2"

	// PreviewLength is the number of characters kept before truncation.
	PreviewLength = 30
)

var (
	// ErrInvalidFilename is returned when a name does not match
	// [<id>]-[<timestamp>].md.
	ErrInvalidFilename = errors.New("entry: filename does not match entry grammar")

	// ErrInvalidID is returned when the id token is not a UUID.
	ErrInvalidID = errors.New("entry: invalid id")

	// ErrInvalidTimestamp is returned when the timestamp token cannot be parsed.
	ErrInvalidTimestamp = errors.New("entry: invalid timestamp")
)

var filenamePattern = regexp.MustCompile(`^\[([^\[\]]+)\]-\[(\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2})\]\.md$`)

// Entry is the in-memory record of one journal file. The file itself is the
// source of truth; Entry only carries what is needed to list it.
type Entry struct {
	ID          string    `json:"id"`
	Created     time.Time `json:"created"`
	Date        string    `json:"date"`
	Filename    string    `json:"filename"`
	PreviewText string    `json:"preview"`
}

// New creates an entry stamped with now and a fresh id.
func New(now time.Time) Entry {
	id := uuid.NewString()
	return Entry{
		ID:       id,
		Created:  now,
		Date:     DisplayDate(now),
		Filename: FormatFilename(id, now),
	}
}

// FromFilename rebuilds an entry from a stored filename. The preview is left
// empty; callers fill it once the content has been read.
func FromFilename(name string) (Entry, error) {
	id, created, err := ParseFilename(name)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:       id,
		Created:  created,
		Date:     DisplayDate(created),
		Filename: name,
	}, nil
}

// FormatFilename renders the canonical filename for id and created.
func FormatFilename(id string, created time.Time) string {
	return fmt.Sprintf("[%s]-[%s]%s", id, created.Format(TimestampLayout), Extension)
}

// ParseFilename extracts the id and creation time from name. Timestamps are
// interpreted in local time, matching how they were written, and always keep
// the wall clock of the name so FormatFilename reproduces it.
func ParseFilename(name string) (string, time.Time, error) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if _, err := uuid.Parse(m[1]); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidID, m[1], err)
	}
	wall, err := time.Parse(TimestampLayout, m[2])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, m[2], err)
	}
	return m[1], localWallClock(wall), nil
}

// localWallClock places the wall clock of w in local time. A wall clock that
// local time skips over (a DST gap) keeps its fields under a fixed zone
// carrying the offset local time resolved to.
func localWallClock(w time.Time) time.Time {
	t := time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), 0, time.Local)
	if t.Format(TimestampLayout) == w.Format(TimestampLayout) {
		return t
	}
	name, offset := t.Zone()
	return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), 0, time.FixedZone(name, offset))
}

// DisplayDate formats t as the short, year-less label.
func DisplayDate(t time.Time) string {
	return t.Format(DisplayLayout)
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Preview derives the one-line summary for content: newlines become spaces,
// surrounding whitespace is trimmed, and anything past PreviewLength
// characters is cut and suffixed with "...".
func Preview(content string) string {
	p := strings.TrimSpace(newlines.Replace(content))
	if utf8.RuneCountInString(p) <= PreviewLength {
		return p
	}
	return string([]rune(p)[:PreviewLength]) + "..."
}

// WithContent returns a copy of e whose preview reflects content.
func (e Entry) WithContent(content string) Entry {
	e.PreviewText = Preview(content)
	return e
}

// Empty reports whether the entry has no visible content.
func (e Entry) Empty() bool {
	return e.PreviewText == ""
}

// Title picks a human title for an exported entry: the first line when it is
// short enough, otherwise a generic label carrying the display date.
func Title(content, date string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "Empty Entry - " + date
	}
	first := trimmed
	if i := strings.IndexAny(trimmed, "\r\n"); i >= 0 {
		first = strings.TrimSpace(trimmed[:i])
	}
	if first != "" && utf8.RuneCountInString(first) <= 50 {
		return first
	}
	return "Freewrite Entry - " + date
}

func (e Entry) String() string {
	if e.PreviewText == "" {
		return e.Date
	}
	return e.Date + "  " + e.PreviewText
}

package app

import (
	"context"
	"strings"

	"tableflip.dev/freewrite/pkg/entry"
)

// Export is an entry rendered for saving outside the journal.
type Export struct {
	Entry    entry.Entry `json:"entry"`
	Title    string      `json:"title"`
	Filename string      `json:"filename"`
	Content  string      `json:"content"`
}

var unsafeFilename = strings.NewReplacer(
	"/", "-", `\`, "-", ":", "-", "*", "-", "?", "-",
	`"`, "-", "<", "-", ">", "-", "|", "-",
)

// Export renders the entry named by ref (see Find) with a title taken from
// its content and a matching file name.
func (s *Service) Export(ctx context.Context, ref string) (Export, error) {
	e, err := s.Find(ref)
	if err != nil {
		return Export{}, err
	}
	content, err := s.Load(ctx, e.Filename)
	if err != nil {
		return Export{}, err
	}
	title := entry.Title(content, e.Date)
	return Export{
		Entry:    e.WithContent(content),
		Title:    title,
		Filename: unsafeFilename.Replace(title) + entry.Extension,
		Content:  content,
	}, nil
}

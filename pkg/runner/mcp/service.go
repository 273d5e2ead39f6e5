package mcp

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/handoff"
	"tableflip.dev/freewrite/pkg/store"
)

var errNoCatalog = errors.New("mcp: no catalog configured")

// EntryDTO is the wire shape of an entry.
type EntryDTO struct {
	ID       string    `json:"id"`
	Filename string    `json:"filename"`
	Date     string    `json:"date"`
	Created  time.Time `json:"created"`
	Preview  string    `json:"preview"`
	Selected bool      `json:"selected"`
	Content  *string   `json:"content,omitempty"`
}

// SyncResult reports the outcome of a sync toggle.
type SyncResult struct {
	State     app.SyncState `json:"state"`
	Succeeded int           `json:"succeeded"`
	Failed    []string      `json:"failed,omitempty"`
	Skipped   int           `json:"skipped"`
}

// Service adapts the catalog for MCP tools and resources.
type Service struct {
	catalog *app.Service
}

func NewService(catalog *app.Service) *Service {
	return &Service{catalog: catalog}
}

// ListEntries returns up to limit entries, newest first. limit <= 0 means all.
func (s *Service) ListEntries(ctx context.Context, limit int) ([]EntryDTO, error) {
	if s.catalog == nil {
		return nil, errNoCatalog
	}
	entries := s.catalog.Entries()
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	selected, _ := s.catalog.Selected()
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e, selected.ID))
	}
	return out, nil
}

// ReadEntry returns an entry together with its full content.
func (s *Service) ReadEntry(ctx context.Context, ref string) (*EntryDTO, error) {
	if s.catalog == nil {
		return nil, errNoCatalog
	}
	e, err := s.catalog.Find(ref)
	if err != nil {
		return nil, err
	}
	content, err := s.catalog.Load(ctx, e.Filename)
	if err != nil {
		return nil, err
	}
	return s.withContent(e.WithContent(content), content), nil
}

// WriteEntry replaces (or appends to) the content of an entry.
func (s *Service) WriteEntry(ctx context.Context, ref, content string, appendText bool) (*EntryDTO, error) {
	if s.catalog == nil {
		return nil, errNoCatalog
	}
	e, err := s.catalog.Find(ref)
	if err != nil {
		return nil, err
	}
	if appendText {
		existing, err := s.catalog.Load(ctx, e.Filename)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		content = existing + content
	}
	if err := s.catalog.Save(ctx, e.Filename, content); err != nil {
		return nil, err
	}
	return s.withContent(e.WithContent(content), content), nil
}

// CreateEntry starts a new entry, optionally with initial content.
func (s *Service) CreateEntry(ctx context.Context, content string) (*EntryDTO, error) {
	if s.catalog == nil {
		return nil, errNoCatalog
	}
	e, err := s.catalog.NewEntry(ctx)
	if err != nil {
		return nil, err
	}
	if content != "" {
		if err := s.catalog.Save(ctx, e.Filename, content); err != nil {
			return nil, err
		}
		e = e.WithContent(content)
	}
	return s.withContent(e, content), nil
}

// DeleteEntry removes an entry and returns what was removed.
func (s *Service) DeleteEntry(ctx context.Context, ref string) (*EntryDTO, error) {
	if s.catalog == nil {
		return nil, errNoCatalog
	}
	e, err := s.catalog.Find(ref)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.Delete(ctx, e.Filename); err != nil {
		return nil, err
	}
	dto := toDTO(e, "")
	return &dto, nil
}

// SyncStatus returns the current sync state.
func (s *Service) SyncStatus() (app.SyncState, error) {
	if s.catalog == nil {
		return app.SyncState{}, errNoCatalog
	}
	return s.catalog.SyncState(), nil
}

// SetSync turns cloud sync on or off. Partial migration failures are
// reported in the result rather than as an error.
func (s *Service) SetSync(ctx context.Context, enable bool) (*SyncResult, error) {
	if s.catalog == nil {
		return nil, errNoCatalog
	}
	report, err := s.catalog.SetCloudSync(ctx, enable)
	if err != nil && !errors.Is(err, store.ErrPartialMigration) {
		return nil, err
	}
	return &SyncResult{
		State:     s.catalog.SyncState(),
		Succeeded: len(report.Succeeded),
		Failed:    report.Failed,
		Skipped:   len(report.Skipped),
	}, nil
}

// ChatLink builds the chat hand-off link for an entry without opening it.
func (s *Service) ChatLink(ctx context.Context, ref string, provider handoff.Provider) (string, error) {
	dto, err := s.ReadEntry(ctx, ref)
	if err != nil {
		return "", err
	}
	return handoff.URL(provider, *dto.Content)
}

func (s *Service) withContent(e entry.Entry, content string) *EntryDTO {
	selected, _ := s.catalog.Selected()
	dto := toDTO(e, selected.ID)
	dto.Content = &content
	return &dto
}

func toDTO(e entry.Entry, selectedID string) EntryDTO {
	return EntryDTO{
		ID:       e.ID,
		Filename: e.Filename,
		Date:     e.Date,
		Created:  e.Created,
		Preview:  e.PreviewText,
		Selected: selectedID != "" && e.ID == selectedID,
	}
}

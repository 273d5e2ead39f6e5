package teaui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/handoff"
	"tableflip.dev/freewrite/pkg/runner/add"
	"tableflip.dev/freewrite/pkg/store"
)

type mode int

const (
	modeNormal mode = iota
	modeCommand
	modeHelp
)

// entry item for the left list
type entryItem struct {
	e           entry.Entry
	placeholder string
}

func (it entryItem) Title() string {
	if it.e.PreviewText == "" {
		return it.e.Date + "  " + it.placeholder
	}
	return it.e.Date + "  " + it.e.PreviewText
}
func (it entryItem) Description() string { return "" }
func (it entryItem) FilterValue() string { return it.e.PreviewText }

// Model contains UI state
type Model struct {
	svc   *app.Service
	prefs *store.Preferences
	ctx   context.Context
	mode  mode

	entList list.Model
	preview viewport.Model
	input   textinput.Model

	status     string
	text       string
	awaitingDD bool
	lastDTime  time.Time

	termWidth    int
	termHeight   int
	previewWidth int

	events <-chan app.Event
	editor string
	open   handoff.Opener
}

// New creates a UI model backed by the catalog. prefs may be nil.
func New(ctx context.Context, svc *app.Service, prefs *store.Preferences) Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 36, 20)
	l.Title = "Entries"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64

	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	m := Model{
		svc:     svc,
		prefs:   prefs,
		ctx:     ctx,
		mode:    modeNormal,
		entList: l,
		preview: viewport.New(viewport.WithWidth(60), viewport.WithHeight(20)),
		input:   ti,
		status:  "j/k move, e edit, n new, dd delete, s sync, c/C chat, ? help, :q quit",
		editor:  editor,
	}
	if svc != nil {
		m.events = svc.Subscribe(ctx)
	}
	return m
}

// Init loads the catalog and starts listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.waitForEvent())
}

// messages
type errMsg struct{ err error }
type entriesLoadedMsg struct {
	items    []list.Item
	selected int
	text     string
}
type catalogEventMsg struct{ ev app.Event }
type editorFinishedMsg struct {
	filename string
	path     string
	before   string
	err      error
}
type syncDoneMsg struct {
	report store.Report
	err    error
}

func (m *Model) reload() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if svc == nil {
			return entriesLoadedMsg{}
		}
		if _, err := svc.Reload(ctx); err != nil {
			return errMsg{err}
		}
		return snapshot(svc)
	}
}

// refresh rebuilds the list from the catalog without touching disk.
func (m *Model) refresh() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		if svc == nil {
			return entriesLoadedMsg{}
		}
		return snapshot(svc)
	}
}

func snapshot(svc *app.Service) entriesLoadedMsg {
	entries := svc.Entries()
	sel, _ := svc.Selected()
	placeholder := svc.Placeholder()
	msg := entriesLoadedMsg{text: svc.Text()}
	for i, e := range entries {
		msg.items = append(msg.items, entryItem{e: e, placeholder: placeholder})
		if e.ID == sel.ID {
			msg.selected = i
		}
	}
	return msg
}

func (m *Model) waitForEvent() tea.Cmd {
	ch := m.events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return catalogEventMsg{ev}
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	skipListRouting := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case entriesLoadedMsg:
		m.entList.SetItems(msg.items)
		if len(msg.items) > 0 {
			m.entList.Select(msg.selected)
		}
		m.setText(msg.text)
	case catalogEventMsg:
		if msg.ev.Type == app.EventSyncStateChanged {
			m.status = m.syncStatus()
		}
		cmds = append(cmds, m.refresh(), m.waitForEvent())
	case editorFinishedMsg:
		cmds = append(cmds, m.finishEdit(msg))
	case syncDoneMsg:
		switch {
		case errors.Is(msg.err, store.ErrPartialMigration):
			m.status = fmt.Sprintf("Sync switched with %d failures", len(msg.report.Failed))
		case msg.err != nil:
			m.status = "ERR: " + msg.err.Error()
		default:
			m.status = m.syncStatus()
		}
		cmds = append(cmds, m.refresh())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
			}
			skipListRouting = true
		case modeCommand:
			switch msg.String() {
			case "enter":
				cmds = append(cmds, m.runCommand(strings.TrimSpace(m.input.Value())))
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = "Command cancelled"
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
			skipListRouting = true
		case modeNormal:
			switch msg.String() {
			case ":":
				m.mode = modeCommand
				m.input.Reset()
				m.input.Placeholder = "command"
				if cmd := m.input.Focus(); cmd != nil {
					cmds = append(cmds, cmd)
				}
				m.status = "COMMAND: q, new, sync on, sync off, theme"
				skipListRouting = true
			case "?":
				m.mode = modeHelp
				skipListRouting = true
			case "j", "down":
				m.entList.CursorDown()
				cmds = append(cmds, m.selectCurrent())
				skipListRouting = true
			case "k", "up":
				m.entList.CursorUp()
				cmds = append(cmds, m.selectCurrent())
				skipListRouting = true
			case "g":
				m.entList.Select(0)
				cmds = append(cmds, m.selectCurrent())
				skipListRouting = true
			case "G":
				m.entList.Select(len(m.entList.Items()) - 1)
				cmds = append(cmds, m.selectCurrent())
				skipListRouting = true
			case "n":
				cmds = append(cmds, m.newEntry())
			case "e", "enter":
				cmds = append(cmds, m.edit())
			case "d":
				if it := m.currentEntry(); it != nil {
					if m.awaitingDD && time.Since(m.lastDTime) < 600*time.Millisecond {
						if err := m.svc.Delete(m.ctx, it.e.Filename); err != nil {
							m.status = "ERR: " + err.Error()
						} else {
							m.status = "Deleted"
							cmds = append(cmds, m.refresh())
						}
						m.awaitingDD = false
					} else {
						m.awaitingDD = true
						m.lastDTime = time.Now()
					}
				}
				skipListRouting = true
			case "s":
				cmds = append(cmds, m.toggleSync(!m.svc.SyncState().UsingCloud))
			case "c":
				m.chat(handoff.Claude)
			case "C":
				m.chat(handoff.ChatGPT)
			case "t":
				m.toggleTheme()
			case "f":
				if m.prefs != nil {
					if size, err := m.prefs.CycleFontSize(); err != nil {
						m.status = "ERR: " + err.Error()
					} else {
						m.status = fmt.Sprintf("Font size: %dpx", size)
					}
				}
			case "r":
				cmds = append(cmds, m.reload())
			case "q":
				m.status = "Use :q or :exit to quit"
				skipListRouting = true
			case "pgdown", "pgup", "space":
				var cmd tea.Cmd
				m.preview, cmd = m.preview.Update(msg)
				cmds = append(cmds, cmd)
				skipListRouting = true
			}
		}
	}

	if m.mode == modeNormal && !skipListRouting {
		if _, ok := msg.(tea.KeyPressMsg); !ok {
			var cmd tea.Cmd
			m.entList, cmd = m.entList.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) runCommand(input string) tea.Cmd {
	switch input {
	case "q", "quit", "exit":
		return tea.Quit
	case "new":
		return m.newEntry()
	case "sync on":
		return m.toggleSync(true)
	case "sync off":
		return m.toggleSync(false)
	case "theme":
		m.toggleTheme()
	case "":
	default:
		m.status = fmt.Sprintf("Unknown command: %s", input)
	}
	return nil
}

func (m *Model) currentEntry() *entryItem {
	if len(m.entList.Items()) == 0 {
		return nil
	}
	sel := m.entList.SelectedItem()
	if sel == nil {
		return nil
	}
	it, _ := sel.(entryItem)
	return &it
}

func (m *Model) selectCurrent() tea.Cmd {
	it := m.currentEntry()
	if it == nil || m.svc == nil {
		return nil
	}
	text, err := m.svc.Select(m.ctx, it.e.Filename)
	if err != nil {
		m.status = "ERR: " + err.Error()
		return nil
	}
	m.setText(text)
	return nil
}

func (m *Model) newEntry() tea.Cmd {
	if _, err := m.svc.NewEntry(m.ctx); err != nil {
		m.status = "ERR: " + err.Error()
		return nil
	}
	m.status = "New entry"
	return m.refresh()
}

// edit hands the selected entry to $EDITOR through a scratch copy, then
// saves the result through the catalog.
func (m *Model) edit() tea.Cmd {
	it := m.currentEntry()
	if it == nil {
		return nil
	}
	content, err := m.svc.Load(m.ctx, it.e.Filename)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		m.status = "ERR: " + err.Error()
		return nil
	}
	f, err := os.CreateTemp("", "freewrite-*"+entry.Extension)
	if err != nil {
		m.status = "ERR: " + err.Error()
		return nil
	}
	_, werr := f.WriteString(content)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(f.Name())
		m.status = "ERR: " + err.Error()
		return nil
	}

	c := add.EditorCommand(m.editor, f.Name())
	filename, path := it.e.Filename, f.Name()
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{filename: filename, path: path, before: content, err: err}
	})
}

func (m *Model) finishEdit(msg editorFinishedMsg) tea.Cmd {
	defer os.Remove(msg.path)
	if msg.err != nil {
		m.status = "ERR: editor: " + msg.err.Error()
		return nil
	}
	b, err := os.ReadFile(msg.path)
	if err != nil {
		m.status = "ERR: " + err.Error()
		return nil
	}
	if string(b) == msg.before {
		m.status = "No changes"
		return nil
	}
	if err := m.svc.Save(m.ctx, msg.filename, string(b)); err != nil {
		m.status = "ERR: " + err.Error()
		return nil
	}
	m.status = "Saved"
	return m.refresh()
}

func (m *Model) toggleSync(enable bool) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	if enable {
		m.status = "Moving entries to cloud storage..."
	} else {
		m.status = "Moving entries to local storage..."
	}
	return func() tea.Msg {
		report, err := svc.SetCloudSync(ctx, enable)
		return syncDoneMsg{report: report, err: err}
	}
}

func (m *Model) chat(p handoff.Provider) {
	it := m.currentEntry()
	if it == nil {
		return
	}
	if _, err := handoff.Open(p, m.text, m.open); err != nil {
		switch {
		case errors.Is(err, handoff.ErrTooShort):
			m.status = fmt.Sprintf("Write at least %d characters before chatting", handoff.MinLength)
		case errors.Is(err, handoff.ErrGuideEntry):
			m.status = "The welcome entry stays here"
		default:
			m.status = "ERR: " + err.Error()
		}
		return
	}
	m.status = fmt.Sprintf("Opened %s", p)
}

func (m *Model) toggleTheme() {
	if m.prefs == nil {
		return
	}
	scheme, err := m.prefs.ToggleTheme()
	if err != nil {
		m.status = "ERR: " + err.Error()
		return
	}
	m.status = "Theme: " + scheme
	m.setText(m.text)
}

func (m *Model) syncStatus() string {
	st := m.svc.SyncState()
	switch {
	case st.Syncing:
		return "Syncing..."
	case st.LastError != "":
		return "Sync error: " + st.LastError
	case st.UsingCloud:
		return "Using cloud storage"
	case st.CloudAvailable:
		return "Using local storage (cloud available)"
	default:
		return "Using local storage"
	}
}

func (m *Model) setText(text string) {
	m.text = text
	width := m.previewWidth
	if width <= 0 {
		width = 60
	}
	body := text
	style := m.textStyle()
	if strings.TrimSpace(body) == "" && m.svc != nil {
		body = m.svc.Placeholder()
		style = style.Faint(true).Italic(true)
	}
	m.preview.SetContent(style.Render(wordwrap.String(body, width-2)))
	m.preview.SetYOffset(0)
}

func (m *Model) textStyle() lipgloss.Style {
	if m.prefs != nil && m.prefs.ColorScheme() == store.SchemeDark {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
}

// View renders the entry list beside the preview.
func (m Model) View() string {
	left := m.entList.View()
	right := m.preview.View()
	gap := lipgloss.NewStyle().Padding(0, 1).Render
	modeStr := map[mode]string{modeNormal: "NORMAL", modeCommand: "CMD", modeHelp: "HELP"}[m.mode]
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(fmt.Sprintf("[%s] %s", modeStr, m.status))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, gap(" "), right)

	if m.mode == modeCommand {
		body += "\n\n:" + m.input.View()
	}
	if m.mode == modeHelp {
		help := "Keys: j/k move, g/G top/bottom, e/enter edit in $EDITOR, n new entry, dd delete, s toggle cloud sync, c chat with Claude, C chat with ChatGPT, t theme, f font size, r reload, space/pgup scroll, :q quit"
		body += "\n\n" + lipgloss.NewStyle().Italic(true).Render(help)
	}

	return body + "\n\n" + status
}

// applySizes recalculates pane sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	left := m.termWidth / 3
	if left < 28 {
		left = 28
	}
	if left > 48 {
		left = 48
	}
	right := m.termWidth - left - 4
	if right < 20 {
		right = 20
	}
	height := m.termHeight - 4
	if height < 5 {
		height = 5
	}
	m.entList.SetSize(left, height)
	m.previewWidth = right
	m.preview.SetWidth(right)
	m.preview.SetHeight(height)
	m.setText(m.text)
}

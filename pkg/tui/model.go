package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stefanpenner/quest/pkg/quest"
	"github.com/stefanpenner/quest/pkg/store"
	gsync "github.com/stefanpenner/quest/pkg/sync"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

// SyncDoneMsg is sent when git sync completes.
type SyncDoneMsg struct {
	Err error
}

type wizardStep int

const (
	stepKind wizardStep = iota
	stepName
	stepPoints
	stepExtra
)

// goalDraft collects the add-goal wizard's answers.
type goalDraft struct {
	kind   quest.Kind
	name   string
	points int
}

// Model is the Bubble Tea model for the quest TUI.
type Model struct {
	ctx          context.Context
	store        *store.Store
	keys         KeyMap
	width        int
	height       int
	reg          *quest.Registry
	visibleItems []ListItem
	cursor       int

	showHelpModal bool

	// Add-goal wizard
	isInputMode bool
	step        wizardStep
	draft       goalDraft
	textInput   textinput.Model

	// Search state
	isSearching bool
	searchQuery string

	// Status message
	statusMsg     string
	statusTimeout time.Time
}

// NewModel creates a new TUI model.
func NewModel(ctx context.Context, s *store.Store) Model {
	ti := textinput.New()
	ti.CharLimit = 64

	return Model{
		ctx:       ctx,
		store:     s,
		keys:      DefaultKeyMap(),
		reg:       quest.NewRegistry(),
		textInput: ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reload()
		return m, tea.ClearScreen

	case FileChangedMsg:
		m.reload()
		return m, nil

	case SyncDoneMsg:
		if msg.Err != nil {
			m.setStatus("Sync failed: " + msg.Err.Error())
		} else {
			m.setStatus("Synced successfully")
			m.reload()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.isInputMode {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.isInputMode {
		return m.handleWizard(msg)
	}

	if m.isSearching {
		return m.handleSearchInput(msg)
	}

	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	// An active filter is cleared by esc
	if m.searchQuery != "" && msg.Type == tea.KeyEsc {
		m.searchQuery = ""
		m.rebuildVisible()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Record):
		if item, ok := m.selected(); ok {
			m.recordEvent(item.Goal.Name())
		}

	case key.Matches(msg, m.keys.Add):
		m.isInputMode = true
		m.step = stepKind
		m.draft = goalDraft{}
		m.prepareInput("simple | eternal | checklist | progress | negative")
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Search):
		m.isSearching = true
		m.searchQuery = ""

	case key.Matches(msg, m.keys.Reload):
		m.reload()
		m.setStatus("Reloaded")

	case key.Matches(msg, m.keys.Sync):
		return m, m.doSync()

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = !m.showHelpModal
	}

	return m, nil
}

// handleWizard walks the add-goal prompts: kind, name, points, then the
// checklist target or progress total when the kind needs one.
func (m Model) handleWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isInputMode = false
		m.textInput.Blur()
		return m, nil
	case tea.KeyEnter:
	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	value := strings.TrimSpace(m.textInput.Value())
	switch m.step {
	case stepKind:
		kind, err := quest.ParseKind(value)
		if err != nil {
			m.setStatus("Error: " + err.Error())
			return m, nil
		}
		m.draft.kind = kind
		m.step = stepName
		m.prepareInput(kind.String() + " goal name")

	case stepName:
		if value == "" {
			m.setStatus("Error: goal name is required")
			return m, nil
		}
		m.draft.name = value
		m.step = stepPoints
		m.prepareInput("points")

	case stepPoints:
		n, err := strconv.Atoi(value)
		if err != nil {
			m.setStatus("Error: points must be a number")
			return m, nil
		}
		m.draft.points = n
		switch m.draft.kind {
		case quest.KindChecklist:
			m.step = stepExtra
			m.prepareInput("target count")
		case quest.KindProgress:
			m.step = stepExtra
			m.prepareInput("total progress")
		default:
			m.createGoal(quest.Params{})
		}

	case stepExtra:
		n, err := strconv.Atoi(value)
		if err != nil {
			m.setStatus("Error: " + m.textInput.Placeholder + " must be a number")
			return m, nil
		}
		var p quest.Params
		if m.draft.kind == quest.KindChecklist {
			p.Target = n
		} else {
			p.Total = n
		}
		m.createGoal(p)
	}
	return m, nil
}

func (m *Model) prepareInput(placeholder string) {
	m.textInput.Reset()
	m.textInput.Placeholder = placeholder
	m.textInput.Focus()
}

func (m *Model) createGoal(p quest.Params) {
	m.isInputMode = false
	m.textInput.Blur()

	g, err := m.store.CreateGoal(m.draft.kind.String(), m.draft.name, m.draft.points, p)
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	m.setStatus("Created: " + g.Name())
	m.reload()
	m.moveCursorToGoal(g.Name())
}

func (m *Model) recordEvent(name string) {
	out, err := m.store.RecordEvent(m.ctx, name)
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}

	switch {
	case out.Closed:
		m.setStatus(name + " is already complete")
	case out.LevelsGained > 0:
		m.setStatus(fmt.Sprintf("Level Up! You are now level %d.", out.Level))
	default:
		m.setStatus(fmt.Sprintf("%+d points: %s", out.Awarded, name))
	}
	m.reload()
	m.moveCursorToGoal(name)
}

// handleSearchInput handles key messages while typing in the search bar.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isSearching = false
		m.searchQuery = ""
		m.rebuildVisible()
		return m, nil

	case tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		// keep the filter, leave the search bar
		m.isSearching = false
		return m, nil

	case tea.KeyBackspace:
		if len(m.searchQuery) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.searchQuery)
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-size]
		}
		m.rebuildVisible()
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.searchQuery += string(msg.Runes)
			m.rebuildVisible()
		}
		return m, nil
	}
}

// moveCursor steps over section headers.
func (m *Model) moveCursor(delta int) {
	i := m.cursor + delta
	for i >= 0 && i < len(m.visibleItems) {
		if !m.visibleItems[i].IsSectionHeader {
			m.cursor = i
			return
		}
		i += delta
	}
}

func (m Model) selected() (ListItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visibleItems) {
		return ListItem{}, false
	}
	item := m.visibleItems[m.cursor]
	if item.IsSectionHeader {
		return ListItem{}, false
	}
	return item, true
}

// moveCursorToGoal positions the cursor on the named goal in the visible items.
func (m *Model) moveCursorToGoal(name string) {
	for i, item := range m.visibleItems {
		if !item.IsSectionHeader && item.Goal.Name() == name {
			m.cursor = i
			return
		}
	}
}

func (m *Model) reload() {
	reg, _, err := m.store.LoadOrNew()
	if err != nil {
		m.setStatus("Load error: " + err.Error())
		return
	}
	m.reg = reg
	m.rebuildVisible()
}

func (m *Model) rebuildVisible() {
	m.visibleItems = FilterItems(BuildItems(m.reg.Goals()), m.searchQuery)

	if m.cursor >= len(m.visibleItems) {
		m.cursor = len(m.visibleItems) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	// Skip section headers
	if m.cursor < len(m.visibleItems) && m.visibleItems[m.cursor].IsSectionHeader {
		for i := m.cursor; i < len(m.visibleItems); i++ {
			if !m.visibleItems[i].IsSectionHeader {
				m.cursor = i
				return
			}
		}
	}
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}

func (m Model) doSync() tea.Cmd {
	ctx := m.ctx
	g := m.syncer()
	return func() tea.Msg {
		return SyncDoneMsg{Err: g.SyncRepo(ctx)}
	}
}

// syncer runs git in the data directory with output discarded while the
// TUI owns the screen.
func (m Model) syncer() gsync.Git {
	return gsync.Git{Dir: m.store.Root, Out: io.Discard, Logger: m.store.Logger()}
}

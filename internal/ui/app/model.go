package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gamedto "mindgym/internal/modules/game/dto"
	historydto "mindgym/internal/modules/history/dto"
	"mindgym/internal/ui/components"
	"mindgym/internal/ui/theme"
	playview "mindgym/internal/ui/views/play"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// The play view narrows the game port further.

type gamePort interface {
	playview.Port
	Reset(ctx context.Context, game string) error
	ResetAll(ctx context.Context) error
}

type historyPort interface {
	Best(ctx context.Context, game string) (historydto.RunOutput, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type resetMsg struct {
	games []string
	err   error
}

type bestMsg struct {
	game  string
	score int
	ok    bool
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Select  key.Binding
	Page    key.Binding
	Cursor  key.Binding
	Shift   key.Binding
	Answer  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next game")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start/submit")),
		Select:  key.NewBinding(key.WithKeys(playview.SelectKeys()...), key.WithHelp("1-9 a-z", "pick item")),
		Page:    key.NewBinding(key.WithKeys("<", ">"), key.WithHelp("</>", "item page")),
		Cursor:  key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "tile cursor")),
		Shift:   key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "move tile")),
		Answer:  key.NewBinding(key.WithKeys("y", "n"), key.WithHelp("y/n", "seen/new")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter},
		{k.Select, k.Page, k.Cursor, k.Shift, k.Answer},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the tick loop,
// the global help overlay, and the command palette. All game logic is
// delegated to port interfaces; all rendering is delegated to the play views.
type Model struct {
	game    gamePort
	history historyPort
	tick    time.Duration

	tabs []playview.Model
	best map[string]int

	activeTab int
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel builds one tab per game. initial selects the first tab shown and
// may be empty.
func NewModel(games []gamedto.GameInfo, game gamePort, history historyPort, tick time.Duration, initial string) Model {
	tabs := make([]playview.Model, 0, len(games))
	active := 0
	for i, info := range games {
		tabs = append(tabs, playview.New(game, info))
		if info.Game == initial {
			active = i
		}
	}
	return Model{
		game:      game,
		history:   history,
		tick:      tick,
		tabs:      tabs,
		best:      map[string]int{},
		activeTab: active,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	for _, tab := range m.tabs {
		cmds = append(cmds, tab.Init(), m.bestCmd(tab.Game()))
	}
	return tea.Batch(cmds...)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case tickMsg:
		// Every live session is ticked so one left in a background tab still
		// times out and lands in the journal.
		cmds = append(cmds, m.tickCmd())
		for i := range m.tabs {
			cmds = append(cmds, m.tabs[i].Tick())
		}
		return m, tea.Batch(cmds...)

	case playview.SnapshotMsg:
		return m.routeSnapshot(msg)

	case resetMsg:
		if msg.err != nil {
			m.status = "reset failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "reset " + strings.Join(msg.games, ", ")
		for i := range m.tabs {
			for _, g := range msg.games {
				if m.tabs[i].Game() == g {
					cmds = append(cmds, m.tabs[i].Open())
				}
			}
		}
		return m, tea.Batch(cmds...)

	case bestMsg:
		if msg.ok {
			m.best[msg.game] = msg.score
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the active view while it takes free text.
		if tab, ok := m.current(); ok && tab.Typing() {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "tab", "shift+tab":
			default:
				return m.updateActive(msg)
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if len(m.tabs) > 0 {
				m.activeTab = (m.activeTab + 1) % len(m.tabs)
			}
			return m, nil
		case "shift+tab":
			if len(m.tabs) > 0 {
				m.activeTab = (m.activeTab + len(m.tabs) - 1) % len(m.tabs)
			}
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
		return m.updateActive(msg)
	}

	// Remaining messages (spinner ticks, cursor blinks) go to the active view.
	return m.updateActive(msg)
}

func (m Model) routeSnapshot(msg playview.SnapshotMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i := range m.tabs {
		if m.tabs[i].Game() != msg.Game {
			continue
		}
		wasOver := m.tabs[i].Snapshot().Stage == "gameover"
		var cmd tea.Cmd
		m.tabs[i], cmd = m.tabs[i].Update(msg)
		cmds = append(cmds, cmd)
		if msg.Err == nil && !wasOver && msg.Snapshot.Stage == "gameover" {
			m.status = fmt.Sprintf("%s finished with score %d", m.tabs[i].Title(), msg.Snapshot.Score)
			cmds = append(cmds, m.bestCmd(msg.Game))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		if tab, ok := m.current(); ok {
			content = tab.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		label := tab.Title()
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "mindgym  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if tab, ok := m.current(); ok {
		if best, found := m.best[tab.Game()]; found {
			left = theme.Hot.Render(fmt.Sprintf("● best %d", best)) + "  " + left
		}
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	tab, ok := m.current()
	if !ok {
		m.status = "no game selected"
		return m, nil
	}

	switch parts[0] {
	case "game:start":
		return m, tab.Start()

	case "game:submit":
		if len(parts) < 2 {
			m.status = "usage: game:submit <answer>"
			return m, nil
		}
		answer := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, tab.Submit(answer)

	case "game:reset":
		return m, m.resetCmd(tab.Game())

	case "game:reset-all":
		return m, m.resetAllCmd()

	case "game:open":
		if len(parts) < 2 {
			m.status = "usage: game:open <game>"
			return m, nil
		}
		for i := range m.tabs {
			if m.tabs[i].Game() == strings.ToLower(parts[1]) {
				m.activeTab = i
				m.status = "switched to " + m.tabs[i].Title()
				return m, nil
			}
		}
		m.status = "unknown game: " + parts[1]

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) current() (playview.Model, bool) {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return playview.Model{}, false
	}
	return m.tabs[m.activeTab], true
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	for i := range m.tabs {
		m.tabs[i], _ = m.tabs[i].Update(sz)
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) resetCmd(game string) tea.Cmd {
	return func() tea.Msg {
		err := m.game.Reset(context.Background(), game)
		return resetMsg{games: []string{game}, err: err}
	}
}

func (m Model) resetAllCmd() tea.Cmd {
	games := make([]string, 0, len(m.tabs))
	for _, tab := range m.tabs {
		games = append(games, tab.Game())
	}
	return func() tea.Msg {
		err := m.game.ResetAll(context.Background())
		return resetMsg{games: games, err: err}
	}
}

func (m Model) bestCmd(game string) tea.Cmd {
	if m.history == nil {
		return nil
	}
	return func() tea.Msg {
		run, err := m.history.Best(context.Background(), game)
		if err != nil {
			return bestMsg{game: game}
		}
		return bestMsg{game: game, score: run.Score, ok: true}
	}
}

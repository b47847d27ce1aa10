package play

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	gamedto "mindgym/internal/modules/game/dto"
	"mindgym/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the game use-case.
type Port interface {
	Open(ctx context.Context, game string) (gamedto.SnapshotOutput, error)
	Start(ctx context.Context, sessionID string) (gamedto.SnapshotOutput, error)
	Toggle(ctx context.Context, sessionID string, index int) (gamedto.SnapshotOutput, error)
	Move(ctx context.Context, sessionID string, index int, direction string) (gamedto.SnapshotOutput, error)
	Submit(ctx context.Context, sessionID, answer string) (gamedto.SnapshotOutput, error)
	Tick(ctx context.Context, sessionID string) (gamedto.SnapshotOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SnapshotMsg carries the session state of Game after any dispatch.
type SnapshotMsg struct {
	Game     string
	Snapshot gamedto.SnapshotOutput
	Err      error
}

const (
	stageInit     = "init"
	stagePresent  = "present"
	stageRespond  = "respond"
	stageGameOver = "gameover"
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the Bubble Tea model of one game tab.
type Model struct {
	port    Port
	info    gamedto.GameInfo
	snap    gamedto.SnapshotOutput
	err     error
	input   textinput.Model
	spinner spinner.Model
	cursor  int
	page    int
	rules   string
	width   int
	height  int
}

func New(port Port, info gamedto.GameInfo) Model {
	ti := textinput.New()
	ti.Placeholder = "type what you saw…"
	ti.CharLimit = 32

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{port: port, info: info, input: ti, spinner: sp}
	m.rules = m.renderRules(0)
	return m
}

func (m Model) Init() tea.Cmd { return m.Open() }

func (m Model) Game() string { return m.info.Game }

func (m Model) Title() string { return m.info.Title }

func (m Model) Snapshot() gamedto.SnapshotOutput { return m.snap }

// Typing reports whether free text is being entered, in which case global
// key bindings must yield.
func (m Model) Typing() bool { return m.input.Focused() }

// Open fetches the session of this game, creating it on first use.
func (m Model) Open() tea.Cmd {
	if m.port == nil {
		return nil
	}
	game := m.info.Game
	return func() tea.Msg {
		snap, err := m.port.Open(context.Background(), game)
		return SnapshotMsg{Game: game, Snapshot: snap, Err: err}
	}
}

func (m Model) Start() tea.Cmd {
	return m.dispatch(func(ctx context.Context, id string) (gamedto.SnapshotOutput, error) {
		return m.port.Start(ctx, id)
	})
}

func (m Model) Submit(answer string) tea.Cmd {
	return m.dispatch(func(ctx context.Context, id string) (gamedto.SnapshotOutput, error) {
		return m.port.Submit(ctx, id, answer)
	})
}

// Tick advances timers of a live session. Finished sessions are left alone.
func (m Model) Tick() tea.Cmd {
	if m.snap.Stage == stageGameOver {
		return nil
	}
	return m.dispatch(func(ctx context.Context, id string) (gamedto.SnapshotOutput, error) {
		return m.port.Tick(ctx, id)
	})
}

func (m Model) toggle(index int) tea.Cmd {
	return m.dispatch(func(ctx context.Context, id string) (gamedto.SnapshotOutput, error) {
		return m.port.Toggle(ctx, id, index)
	})
}

func (m Model) move(index int, direction string) tea.Cmd {
	return m.dispatch(func(ctx context.Context, id string) (gamedto.SnapshotOutput, error) {
		return m.port.Move(ctx, id, index, direction)
	})
}

func (m Model) dispatch(call func(ctx context.Context, sessionID string) (gamedto.SnapshotOutput, error)) tea.Cmd {
	if m.port == nil || m.snap.SessionID == "" {
		return nil
	}
	game, id := m.info.Game, m.snap.SessionID
	return func() tea.Msg {
		snap, err := call(context.Background(), id)
		return SnapshotMsg{Game: game, Snapshot: snap, Err: err}
	}
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, min(m.width-8, 40))
		m.rules = m.renderRules(m.width)

	case SnapshotMsg:
		if msg.Game != m.info.Game {
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		return m.apply(msg.Snapshot)

	case spinner.TickMsg:
		if m.snap.Stage == stagePresent && m.snap.PhaseLeft > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) apply(snap gamedto.SnapshotOutput) (Model, tea.Cmd) {
	prevStage := m.snap.Stage
	m.snap = snap
	m.err = nil
	if n := len(snap.Puzzle.Tiles); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	if m.page >= pageCount(m.selectable()) {
		m.page = 0
	}

	var cmds []tea.Cmd
	typing := snap.Stage == stageRespond && m.info.Game == gameDigitspan
	switch {
	case typing && !m.input.Focused():
		m.input.SetValue("")
		cmds = append(cmds, m.input.Focus())
	case !typing && m.input.Focused():
		m.input.Blur()
		m.input.SetValue("")
	}
	if snap.Stage == stagePresent && snap.PhaseLeft > 0 && prevStage != stagePresent {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "enter" {
		switch m.snap.Stage {
		case stageInit:
			return m, m.Start()
		case stagePresent, stageRespond:
			if m.input.Focused() {
				return m, m.Submit(m.input.Value())
			}
			return m, m.Submit("")
		}
		return m, nil
	}
	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if m.snap.Stage != stagePresent && m.snap.Stage != stageRespond {
		return m, nil
	}

	switch m.info.Game {
	case gameShapedance, gameNumerosity:
		items := m.selectable()
		switch key {
		case "<":
			m.page = (m.page + pageCount(items) - 1) % pageCount(items)
			return m, nil
		case ">":
			m.page = (m.page + 1) % pageCount(items)
			return m, nil
		}
		if idx, ok := selectIndex(key, m.page, items); ok {
			return m, m.toggle(idx)
		}
	case gamePathfinder:
		return m.pathfinderKey(key)
	case gameFlashback:
		switch key {
		case "y":
			return m, m.Submit("seen")
		case "n":
			return m, m.Submit("new")
		}
	}
	return m, nil
}

// selectable is the number of items the selection keys can reach.
func (m Model) selectable() int {
	switch m.info.Game {
	case gameShapedance:
		return len(m.snap.Puzzle.Cubes)
	case gameNumerosity:
		return len(m.snap.Puzzle.Pool)
	}
	return 0
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	bodyH := max(1, m.height-lipgloss.Height(header)-lipgloss.Height(footer))

	var body string
	switch {
	case m.err != nil:
		body = theme.Bad.Render("Error: " + m.err.Error())
	case m.snap.SessionID == "":
		body = m.spinner.View() + " Opening session…"
	case m.snap.Stage == stageGameOver:
		body = m.renderGameOver()
	case !m.snap.Puzzle.Live:
		body = m.rules
	default:
		body = m.renderBoard()
	}
	body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	s := m.snap
	level := fmt.Sprintf("level %d", s.Level)
	if s.MaxLevel > 0 {
		level = fmt.Sprintf("level %d/%d", s.Level, s.MaxLevel)
	}
	parts := []string{
		theme.Title.Render(m.info.Title),
		theme.Muted.Render(level),
		theme.Muted.Render(fmt.Sprintf("score %d", s.Score)),
		clockStyle(s.TimeLeft).Render(formatClock(s.TimeLeft)),
	}
	if s.Stage != "" {
		parts = append(parts, theme.Muted.Render("["+s.Stage+"]"))
	}
	return strings.Join(parts, "  ") + "\n"
}

func (m Model) renderFooter() string {
	msg := m.snap.ResultMessage
	var line string
	switch {
	case msg == "":
		line = ""
	case strings.HasPrefix(msg, "Correct"):
		line = theme.Good.Render(msg)
	case strings.HasPrefix(msg, "Incorrect"), strings.HasPrefix(msg, "Time"):
		line = theme.Bad.Render(msg)
	default:
		line = theme.Hot.Render(msg)
	}
	return line + "\n" + theme.Muted.Render(m.keyHint())
}

func (m Model) keyHint() string {
	switch m.snap.Stage {
	case stageInit:
		return "enter: start level"
	case stageGameOver:
		return ":game:reset to play again"
	}
	switch m.info.Game {
	case gameDigitspan:
		if m.snap.Stage == stageRespond {
			return "type the sequence  enter: submit"
		}
		return "memorize…"
	case gameShapedance:
		return "1-9: pick a cube"
	case gameNumerosity:
		if pageCount(m.selectable()) > 1 {
			return "keys: pick numbers in order  </>: page  enter: submit"
		}
		return "keys: pick numbers in order  enter: submit"
	case gamePathfinder:
		return "←/→: cursor  [/]: move tile  enter: submit"
	case gameFlashback:
		if m.snap.Stage == stageRespond {
			return "y: seen  n: new"
		}
		return "watch…"
	}
	return ""
}

func (m Model) renderGameOver() string {
	s := m.snap
	lines := []string{
		theme.Hot.Render("Game over"),
		"",
		fmt.Sprintf("Final score %d, reached level %d.", s.Score, s.Level),
	}
	if s.ResultMessage != "" {
		lines = append(lines, theme.Muted.Render(s.ResultMessage))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) renderBoard() string {
	switch m.info.Game {
	case gameDigitspan:
		return m.renderDigitspan()
	case gameShapedance:
		return m.renderShapedance()
	case gameNumerosity:
		return m.renderNumerosity()
	case gamePathfinder:
		return m.renderPathfinder()
	case gameFlashback:
		return m.renderFlashback()
	}
	return ""
}

// renderRules draws the rules card with glamour, falling back to plain text.
func (m Model) renderRules(width int) string {
	info := m.info
	levels := "unlimited"
	if info.MaxLevel > 0 {
		levels = fmt.Sprint(info.MaxLevel)
	}
	memorize := "no"
	if info.Memorize {
		memorize = "yes"
	}
	md := fmt.Sprintf("# %s\n\n%s\n\n- Time budget: %s\n- Levels: %s\n- Memorize first: %s\n- Wrong answer: %s\n\nPress **enter** to start a level.\n",
		info.Title, info.Summary, info.TimeBudget, levels, memorize, wrongAnswer(info.OnWrong))

	wrap := 60
	if width > 0 {
		wrap = min(width-4, 80)
	}
	r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(wrap))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func wrongAnswer(policy string) string {
	switch policy {
	case "retry_puzzle":
		return "try the same puzzle again"
	case "game_over":
		return "the game ends"
	default:
		return "start a fresh puzzle"
	}
}

func formatClock(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func clockStyle(d time.Duration) lipgloss.Style {
	if d <= 10*time.Second {
		return theme.Bad
	}
	return theme.Muted
}

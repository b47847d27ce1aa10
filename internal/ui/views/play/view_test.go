package play_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	gamedto "mindgym/internal/modules/game/dto"
	"mindgym/internal/ui/views/play"
)

type call struct {
	action string
	index  int
	answer string
}

type fakePort struct {
	calls []call
}

func (p *fakePort) record(c call) (gamedto.SnapshotOutput, error) {
	p.calls = append(p.calls, c)
	return gamedto.SnapshotOutput{SessionID: "s1"}, nil
}

func (p *fakePort) Open(context.Context, string) (gamedto.SnapshotOutput, error) {
	return p.record(call{action: "open"})
}

func (p *fakePort) Start(context.Context, string) (gamedto.SnapshotOutput, error) {
	return p.record(call{action: "start"})
}

func (p *fakePort) Toggle(_ context.Context, _ string, index int) (gamedto.SnapshotOutput, error) {
	return p.record(call{action: "toggle", index: index})
}

func (p *fakePort) Move(_ context.Context, _ string, index int, direction string) (gamedto.SnapshotOutput, error) {
	return p.record(call{action: "move", index: index, answer: direction})
}

func (p *fakePort) Submit(_ context.Context, _ string, answer string) (gamedto.SnapshotOutput, error) {
	return p.record(call{action: "submit", answer: answer})
}

func (p *fakePort) Tick(context.Context, string) (gamedto.SnapshotOutput, error) {
	return p.record(call{action: "tick"})
}

func withSnapshot(t *testing.T, port *fakePort, game string, snap gamedto.SnapshotOutput) play.Model {
	t.Helper()
	m := play.New(port, gamedto.GameInfo{Game: game, Title: strings.ToUpper(game[:1]) + game[1:]})
	snap.SessionID = "s1"
	snap.Game = game
	m, _ = m.Update(play.SnapshotMsg{Game: game, Snapshot: snap})
	return m
}

func runCmd(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	if _, ok := cmd().(play.SnapshotMsg); !ok {
		t.Fatalf("expected a snapshot message")
	}
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEnterStartsLevelFromInit(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := withSnapshot(t, port, "numerosity", gamedto.SnapshotOutput{Stage: "init"})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, cmd)
	if len(port.calls) != 1 || port.calls[0].action != "start" {
		t.Fatalf("expected start, got %+v", port.calls)
	}
}

func TestSelectionKeysToggleByPosition(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := withSnapshot(t, port, "numerosity", gamedto.SnapshotOutput{Stage: "present", Puzzle: gamedto.PuzzleView{Live: true, Pool: []int{1, 2, 3}}})
	_, cmd := m.Update(keys("2"))
	runCmd(t, cmd)
	if port.calls[0] != (call{action: "toggle", index: 1}) {
		t.Fatalf("expected toggle of index 1, got %+v", port.calls)
	}
}

func TestDigitspanTypesAnswerInRespondStage(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := withSnapshot(t, port, "digitspan", gamedto.SnapshotOutput{Stage: "respond", Puzzle: gamedto.PuzzleView{Live: true, Hidden: true}})
	if !m.Typing() {
		t.Fatalf("respond stage must focus the answer input")
	}
	m, _ = m.Update(keys("a7"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, cmd)
	if port.calls[0] != (call{action: "submit", answer: "a7"}) {
		t.Fatalf("expected typed answer, got %+v", port.calls)
	}
}

func TestFlashbackAnswersWithKeys(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := withSnapshot(t, port, "flashback", gamedto.SnapshotOutput{Stage: "respond", Puzzle: gamedto.PuzzleView{Live: true, Hidden: true, Probe: &gamedto.SymbolView{Shape: "circle", Color: "red"}}})
	_, cmd := m.Update(keys("n"))
	runCmd(t, cmd)
	if port.calls[0] != (call{action: "submit", answer: "new"}) {
		t.Fatalf("expected new, got %+v", port.calls)
	}
}

func TestFinishedSessionStopsTicking(t *testing.T) {
	t.Parallel()
	m := withSnapshot(t, &fakePort{}, "pathfinder", gamedto.SnapshotOutput{Stage: "gameover", EndReason: "time", ResultMessage: "Time's up!"})
	if m.Tick() != nil {
		t.Fatalf("a finished session must not tick")
	}
	if out := m.View(); !strings.Contains(out, "Time's up!") {
		t.Fatalf("expected result message in view, got %q", out)
	}
}

func TestSnapshotOfOtherGameIsIgnored(t *testing.T) {
	t.Parallel()
	m := withSnapshot(t, &fakePort{}, "shapedance", gamedto.SnapshotOutput{Stage: "init", Level: 1})
	m, _ = m.Update(play.SnapshotMsg{Game: "digitspan", Snapshot: gamedto.SnapshotOutput{SessionID: "other", Level: 9}})
	if m.Snapshot().Level != 1 || m.Snapshot().SessionID != "s1" {
		t.Fatalf("foreign snapshot leaked into tab: %+v", m.Snapshot())
	}
}

func TestLargePoolIsReachableByPaging(t *testing.T) {
	t.Parallel()
	pool := make([]int, 40)
	for i := range pool {
		pool[i] = i + 1
	}
	port := &fakePort{}
	m := withSnapshot(t, port, "numerosity", gamedto.SnapshotOutput{Stage: "present", Puzzle: gamedto.PuzzleView{Live: true, Pool: pool}})
	perPage := len(play.SelectKeys())

	m, cmd := m.Update(keys(">"))
	if cmd != nil {
		t.Fatalf("paging must not dispatch")
	}
	_, cmd = m.Update(keys("1"))
	runCmd(t, cmd)
	if port.calls[0] != (call{action: "toggle", index: perPage}) {
		t.Fatalf("expected first item of second page, got %+v", port.calls)
	}
	if _, cmd := m.Update(keys("z")); cmd != nil {
		t.Fatalf("key past the end of the pool must be ignored")
	}

	m, _ = m.Update(keys("<"))
	_, cmd = m.Update(keys("1"))
	runCmd(t, cmd)
	if port.calls[1] != (call{action: "toggle", index: 0}) {
		t.Fatalf("expected first item after paging back, got %+v", port.calls)
	}
}

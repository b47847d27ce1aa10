package app

import (
	"context"
	"sort"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	gamedto "mindgym/internal/modules/game/dto"
	playview "mindgym/internal/ui/views/play"
)

type tickingPort struct {
	ticked []string
}

func (p *tickingPort) snapshot(id string) (gamedto.SnapshotOutput, error) {
	return gamedto.SnapshotOutput{SessionID: id}, nil
}

func (p *tickingPort) Open(_ context.Context, game string) (gamedto.SnapshotOutput, error) {
	return p.snapshot(game)
}

func (p *tickingPort) Start(_ context.Context, id string) (gamedto.SnapshotOutput, error) {
	return p.snapshot(id)
}

func (p *tickingPort) Toggle(_ context.Context, id string, _ int) (gamedto.SnapshotOutput, error) {
	return p.snapshot(id)
}

func (p *tickingPort) Move(_ context.Context, id string, _ int, _ string) (gamedto.SnapshotOutput, error) {
	return p.snapshot(id)
}

func (p *tickingPort) Submit(_ context.Context, id, _ string) (gamedto.SnapshotOutput, error) {
	return p.snapshot(id)
}

func (p *tickingPort) Tick(_ context.Context, id string) (gamedto.SnapshotOutput, error) {
	p.ticked = append(p.ticked, id)
	return p.snapshot(id)
}

func (p *tickingPort) Reset(context.Context, string) error { return nil }

func (p *tickingPort) ResetAll(context.Context) error { return nil }

// drain runs cmd and every command batched inside it.
func drain(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(c)
		}
	}
}

func TestTickReachesBackgroundTabs(t *testing.T) {
	t.Parallel()
	port := &tickingPort{}
	games := []gamedto.GameInfo{
		{Game: "digitspan", Title: "Digitspan"},
		{Game: "numerosity", Title: "Numerosity"},
		{Game: "flashback", Title: "Flashback"},
	}
	var model tea.Model = NewModel(games, port, nil, time.Millisecond, "digitspan")
	stages := map[string]string{"digitspan": "present", "numerosity": "init", "flashback": "gameover"}
	for game, stage := range stages {
		model, _ = model.Update(playview.SnapshotMsg{Game: game, Snapshot: gamedto.SnapshotOutput{SessionID: "s-" + game, Game: game, Stage: stage}})
	}

	_, cmd := model.Update(tickMsg(time.Now()))
	drain(cmd)

	sort.Strings(port.ticked)
	if len(port.ticked) != 2 || port.ticked[0] != "s-digitspan" || port.ticked[1] != "s-numerosity" {
		t.Fatalf("expected both live sessions ticked, got %v", port.ticked)
	}
}

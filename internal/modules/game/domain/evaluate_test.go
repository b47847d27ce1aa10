package domain_test

import (
	"strings"
	"testing"
	"time"

	"mindgym/internal/modules/game/domain"
)

func TestNumerosityAdditionScenario(t *testing.T) {
	t.Parallel()
	p := domain.NumerosityPuzzle{
		Operator: domain.OpAdd,
		Target:   12,
		Operands: [3]int{3, 4, 5},
		Pool:     []int{9, 3, 1, 4, 5, 7},
	}
	if out := p.Evaluate(domain.Response{Selection: []int{1, 3, 4}}); !out.Correct {
		t.Fatalf("expected 3+4+5 to reach 12: %+v", out)
	}
	if out := p.Evaluate(domain.Response{Selection: []int{1, 3}}); !out.Rejected || out.Detail != "Please select exactly 3 numbers." {
		t.Fatalf("expected short selection to be rejected: %+v", out)
	}
	out := p.Evaluate(domain.Response{Selection: []int{0, 1, 2}})
	if out.Correct || out.Rejected {
		t.Fatalf("expected an incorrect verdict: %+v", out)
	}
	if !strings.Contains(out.Detail, "= 13, but the target was 12") {
		t.Fatalf("unexpected detail %q", out.Detail)
	}
}

func TestNumerosityDivisionIsExactAndOrdered(t *testing.T) {
	t.Parallel()
	p := domain.NumerosityPuzzle{Operator: domain.OpDiv, Target: 2, Operands: [3]int{24, 3, 4}, Pool: []int{24, 3, 4, 5}}
	if out := p.Evaluate(domain.Response{Selection: []int{0, 1, 2}}); !out.Correct {
		t.Fatalf("expected 24/3/4 = 2: %+v", out)
	}
	out := p.Evaluate(domain.Response{Selection: []int{1, 0, 2}})
	if out.Correct || !strings.Contains(out.Detail, "no result") {
		t.Fatalf("expected 3/24 to have no exact result: %+v", out)
	}
	if _, ok := domain.OpDiv.Apply(7, 0, 1); ok {
		t.Fatalf("division by zero must not reduce")
	}
	if got, ok := domain.OpSub.Apply(20, 5, 3); !ok || got != 12 {
		t.Fatalf("expected 20-5-3 = 12, got %d", got)
	}
}

func TestShapedanceScenario(t *testing.T) {
	t.Parallel()
	p := domain.ShapedancePuzzle{MatchingPair: [2]int{1, 3}, Patterns: make([]domain.Pattern, 4)}
	if out := p.Evaluate(domain.Response{Selection: []int{3, 1}}); !out.Correct {
		t.Fatalf("expected unordered pair to match: %+v", out)
	}
	out := p.Evaluate(domain.Response{Selection: []int{0, 2}})
	if out.Correct || out.Rejected {
		t.Fatalf("expected incorrect verdict: %+v", out)
	}
	if !strings.Contains(out.Detail, "Correct answer: [2 4]") {
		t.Fatalf("expected 1-based positions in %q", out.Detail)
	}
	if out := p.Evaluate(domain.Response{Selection: []int{1}}); !out.Rejected {
		t.Fatalf("expected a single pick to be rejected: %+v", out)
	}
}

func TestDigitspanScenario(t *testing.T) {
	t.Parallel()
	p := domain.DigitspanPuzzle{Sequence: "A7", Display: 3 * time.Second}
	if out := p.Evaluate(domain.Response{Text: "A7"}); !out.Correct {
		t.Fatalf("expected exact match: %+v", out)
	}
	if out := p.Evaluate(domain.Response{Text: " A7\n"}); !out.Correct {
		t.Fatalf("expected surrounding whitespace to be ignored: %+v", out)
	}
	out := p.Evaluate(domain.Response{Text: "a7"})
	if out.Correct {
		t.Fatalf("comparison must be case-sensitive")
	}
	if out.Detail != "Incorrect! Your answer: a7. Correct answer: A7. Try again." {
		t.Fatalf("unexpected detail %q", out.Detail)
	}
	if out := p.Evaluate(domain.Response{Text: "  "}); !out.Rejected {
		t.Fatalf("expected empty answer to be rejected: %+v", out)
	}
}

func TestPathfinderReorderScenario(t *testing.T) {
	t.Parallel()
	tiles := func(ids ...int) []domain.Tile {
		out := make([]domain.Tile, len(ids))
		for i, id := range ids {
			out[i] = domain.Tile{ID: id, Type: "straight"}
		}
		return out
	}
	p := domain.PathfinderPuzzle{Template: "road", Correct: tiles(1, 2, 3, 4), Shuffled: tiles(2, 1, 4, 3)}
	state := domain.NewSessionState("s", domain.Rules{Kind: domain.KindPathfinder, TimeBudget: time.Minute}, 1, nil, time.Unix(0, 0))
	state.Present(p, time.Unix(0, 0))

	if out := p.Evaluate(state.Response("")); out.Correct {
		t.Fatalf("scrambled order must not be correct")
	}
	if err := state.MoveTile(0, domain.DirRight); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := state.MoveTile(3, domain.DirLeft); err != nil {
		t.Fatalf("move: %v", err)
	}
	if out := p.Evaluate(state.Response("")); !out.Correct {
		t.Fatalf("expected restored order %v to be correct: %+v", state.Arrangement, out)
	}
	if out := p.Evaluate(domain.Response{Order: []int{1, 2}}); !out.Rejected {
		t.Fatalf("expected partial order to be rejected: %+v", out)
	}
}

func TestFlashbackAnswers(t *testing.T) {
	t.Parallel()
	probe := domain.Symbol{Shape: "circle", Color: "red"}
	p := domain.FlashbackPuzzle{Sequence: []domain.Symbol{probe}, Probe: probe, Seen: true}
	for _, answer := range []string{"seen", "Y", " yes "} {
		if out := p.Evaluate(domain.Response{Text: answer}); !out.Correct {
			t.Fatalf("%q should be a correct seen answer: %+v", answer, out)
		}
	}
	out := p.Evaluate(domain.Response{Text: "n"})
	if out.Correct || out.Detail != "Incorrect! You answered new, but the red circle was seen." {
		t.Fatalf("unexpected verdict %+v", out)
	}
	missed := domain.FlashbackPuzzle{Sequence: []domain.Symbol{{Shape: "square", Color: "green"}}, Probe: probe}
	if out := missed.Evaluate(domain.Response{Text: "yes"}); out.Correct || out.Detail != "Incorrect! You answered seen, but the red circle was new." {
		t.Fatalf("unexpected verdict %+v", out)
	}
	if out := p.Evaluate(domain.Response{Text: "maybe"}); !out.Rejected {
		t.Fatalf("expected unparsable answer to be rejected: %+v", out)
	}
}

package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"mindgym/internal/modules/history/domain"
	"mindgym/internal/modules/history/dto"
	"mindgym/internal/modules/history/service"
	apperrors "mindgym/internal/platform/errors"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (g *seqID) New() string {
	g.n++
	return "run-" + string(rune('0'+g.n))
}

type memoryRunStore struct {
	runs []domain.Run
}

func (s *memoryRunStore) Save(_ context.Context, run domain.Run) error {
	s.runs = append(s.runs, run)
	return nil
}

func (s *memoryRunStore) List(_ context.Context, game string, limit int) ([]domain.Run, error) {
	out := []domain.Run{}
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		if game == "" || s.runs[i].Game == game {
			out = append(out, s.runs[i])
		}
	}
	return out, nil
}

func (s *memoryRunStore) Best(_ context.Context, game string) (domain.Run, error) {
	matching := []domain.Run{}
	for _, r := range s.runs {
		if r.Game == game {
			matching = append(matching, r)
		}
	}
	if len(matching) == 0 {
		return domain.Run{}, apperrors.ErrNotFound
	}
	sort.Slice(matching, func(i, j int) bool { return matching[i].Score > matching[j].Score })
	return matching[0], nil
}

func TestRecordFillsEndAndID(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	store := &memoryRunStore{}
	uc := NewInteractor(service.NewRunService(fixedClock{now: now}, &seqID{}, store))

	out, err := uc.Record(context.Background(), dto.RecordInput{
		SessionID: "s1",
		Game:      " pathfinder ",
		Score:     4,
		Level:     5,
		EndReason: "time",
		StartedAt: now.Add(-5 * time.Minute),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.ID != "run-1" || out.Game != "pathfinder" {
		t.Fatalf("unexpected run output: %+v", out)
	}
	if out.Duration != 5*time.Minute {
		t.Fatalf("expected 5m duration, got %s", out.Duration)
	}
	if len(store.runs) != 1 || !store.runs[0].EndedAt.Equal(now) {
		t.Fatalf("expected one stored run ending now, got %+v", store.runs)
	}
}

func TestListDefaultsAndRejectsNegativeLimit(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	store := &memoryRunStore{}
	uc := NewInteractor(service.NewRunService(fixedClock{now: now}, &seqID{}, store))
	for i := 0; i < 3; i++ {
		if _, err := uc.Record(context.Background(), dto.RecordInput{SessionID: string(rune('a' + i)), Game: "digitspan", Score: i, Level: i + 1, StartedAt: now}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	runs, err := uc.List(context.Background(), dto.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 3 || runs[0].Score != 2 {
		t.Fatalf("expected newest first, got %+v", runs)
	}
	if _, err := uc.List(context.Background(), dto.ListInput{Limit: -1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	best, err := uc.Best(context.Background(), "digitspan")
	if err != nil || best.Score != 2 {
		t.Fatalf("expected best score 2, got %+v (%v)", best, err)
	}
}

func TestJournalNotConfigured(t *testing.T) {
	t.Parallel()
	uc := NewInteractor(service.NewRunService(fixedClock{}, &seqID{}, nil))
	if _, err := uc.Record(context.Background(), dto.RecordInput{SessionID: "s", Game: "g", Level: 1}); !errors.Is(err, apperrors.ErrJournalNotConfigured) {
		t.Fatalf("expected journal not configured, got %v", err)
	}
}

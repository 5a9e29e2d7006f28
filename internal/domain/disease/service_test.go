package disease

import (
	"context"
	"errors"
	"testing"

	"github.com/codemap/codemap/internal/platform/match"
)

// fixedScorer gives every candidate the same score, so acceptance and
// tie-break behavior can be pinned down independently of the real scorer.
type fixedScorer struct{ score int }

func (f fixedScorer) Score(_, _ string) int { return f.score }

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := NewMemoryRepo(DefaultSeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewService(repo, match.TokenSetScorer{}, DefaultThreshold)
}

func TestResolve_Exact(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Resolve(context.Background(), "Asthma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MatchExact {
		t.Fatalf("expected exact match, got %q", res.Kind)
	}
	if res.Name != "Asthma" || res.Entry.ICD11 != "CA23" || res.Entry.TM2 != "TM2-404" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestResolve_ExactTrimsWhitespace(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Resolve(context.Background(), "  Fever  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MatchExact || res.Name != "Fever" {
		t.Errorf("expected exact match for trimmed query, got %+v", res)
	}
}

func TestResolve_CaseMismatchGoesFuzzy(t *testing.T) {
	svc := newTestService(t)

	// Exact lookup is case-sensitive, so "asthma" must take the fuzzy path
	// and still come back with the canonical entry.
	res, err := svc.Resolve(context.Background(), "asthma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MatchFuzzy {
		t.Fatalf("expected fuzzy match, got %q", res.Kind)
	}
	if res.Name != "Asthma" {
		t.Errorf("expected canonical name 'Asthma', got %q", res.Name)
	}
	if res.Score < DefaultThreshold {
		t.Errorf("expected score >= %d, got %d", DefaultThreshold, res.Score)
	}
}

func TestResolve_Transposition(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Resolve(context.Background(), "Astham")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MatchFuzzy || res.Name != "Asthma" {
		t.Errorf("expected fuzzy match on 'Asthma', got %+v", res)
	}
	if res.Score <= DefaultThreshold {
		t.Errorf("expected score > %d, got %d", DefaultThreshold, res.Score)
	}
}

func TestResolve_WordReorder(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Resolve(context.Background(), "mellitus diabetes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MatchFuzzy || res.Name != "Diabetes mellitus" {
		t.Errorf("expected fuzzy match on 'Diabetes mellitus', got %+v", res)
	}
}

func TestResolve_EmptyQuery(t *testing.T) {
	svc := newTestService(t)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := svc.Resolve(context.Background(), q)
		if !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("Resolve(%q): expected ErrInvalidQuery, got %v", q, err)
		}
	}
}

func TestResolve_NoMatch(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Resolve(context.Background(), "zzzqqq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MatchNone {
		t.Errorf("expected no match, got %+v", res)
	}
}

func TestResolve_EmptyCatalog(t *testing.T) {
	repo, err := NewMemoryRepo(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := NewService(repo, match.TokenSetScorer{}, DefaultThreshold)

	res, err := svc.Resolve(context.Background(), "Asthma")
	if err != nil {
		t.Fatalf("expected no error on empty catalog, got %v", err)
	}
	if res.Kind != MatchNone {
		t.Errorf("expected no match on empty catalog, got %+v", res)
	}
}

func TestResolve_ThresholdIsExclusive(t *testing.T) {
	repo, err := NewMemoryRepo(DefaultSeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Score exactly equal to the threshold must NOT match.
	svc := NewService(repo, fixedScorer{score: 70}, 70)
	res, err := svc.Resolve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MatchNone {
		t.Errorf("score equal to threshold must not match, got %+v", res)
	}

	// One above the threshold must match.
	svc = NewService(repo, fixedScorer{score: 71}, 70)
	res, err = svc.Resolve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MatchFuzzy {
		t.Errorf("score above threshold must match, got %+v", res)
	}
}

func TestResolve_TieBreakDeterministic(t *testing.T) {
	repo, err := NewMemoryRepo(map[string]CodeEntry{
		"Beriberi": {ICD11: "5B5K", TM2: "TM2-501"},
		"Anthrax":  {ICD11: "1B97", TM2: "TM2-502"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := NewService(repo, fixedScorer{score: 90}, DefaultThreshold)

	for i := 0; i < 20; i++ {
		res, err := svc.Resolve(context.Background(), "unrelated")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Name != "Anthrax" {
			t.Fatalf("tie-break must pick lexicographically first name, got %q", res.Name)
		}
	}
}

func TestResolve_PerCallThreshold(t *testing.T) {
	svc := newTestService(t)

	// With a high enough threshold even a near hit is rejected.
	res, err := svc.ResolveWithThreshold(context.Background(), "Astham", 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MatchNone {
		t.Errorf("expected no match at threshold 99, got %+v", res)
	}
}

func TestResolve_MutationVisibleToNextResolve(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, "Asthma"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := svc.Resolve(ctx, "Asthma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind == MatchExact {
		t.Error("deleted entry must not resolve exactly")
	}
}

func TestNewService_ThresholdFallback(t *testing.T) {
	repo, _ := NewMemoryRepo(DefaultSeed())
	svc := NewService(repo, match.TokenSetScorer{}, 180)
	if svc.Threshold() != DefaultThreshold {
		t.Errorf("expected fallback to default threshold, got %d", svc.Threshold())
	}
}

func TestUpdate_EmptyName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), "  ", UpdateRequest{})
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestDelete_EmptyName(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Delete(context.Background(), ""); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestList_ReflectsMutations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(before) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(before))
	}

	if err := svc.Delete(ctx, "Fever"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(after) != 2 {
		t.Errorf("expected 2 entries after delete, got %d", len(after))
	}
}

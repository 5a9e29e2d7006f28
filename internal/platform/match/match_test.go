package match

import "testing"

// fixedScorer returns the same score for every candidate, forcing the
// tie-break rule to decide.
type fixedScorer struct{ score int }

func (f fixedScorer) Score(_, _ string) int { return f.score }

func TestTokenSetScorer_CaseInsensitive(t *testing.T) {
	s := TokenSetScorer{}
	if got := s.Score("asthma", "Asthma"); got != 100 {
		t.Errorf("Score(asthma, Asthma) = %d, want 100", got)
	}
}

func TestTokenSetScorer_WordOrder(t *testing.T) {
	s := TokenSetScorer{}
	if got := s.Score("mellitus diabetes", "Diabetes mellitus"); got != 100 {
		t.Errorf("Score(mellitus diabetes, Diabetes mellitus) = %d, want 100", got)
	}
}

func TestTokenSetScorer_Transposition(t *testing.T) {
	s := TokenSetScorer{}
	if got := s.Score("Astham", "Asthma"); got <= 70 {
		t.Errorf("Score(Astham, Asthma) = %d, want > 70", got)
	}
}

func TestTokenSetScorer_Unrelated(t *testing.T) {
	s := TokenSetScorer{}
	if got := s.Score("xyz", "Fever"); got > 50 {
		t.Errorf("Score(xyz, Fever) = %d, want low score", got)
	}
}

func TestBest_PicksHighest(t *testing.T) {
	best, ok := Best(TokenSetScorer{}, "asthma", []string{"Fever", "Asthma", "Diabetes mellitus"})
	if !ok {
		t.Fatal("expected a result")
	}
	if best.Name != "Asthma" {
		t.Errorf("expected best match 'Asthma', got %q", best.Name)
	}
	if best.Score != 100 {
		t.Errorf("expected score 100, got %d", best.Score)
	}
}

func TestBest_EmptyCandidates(t *testing.T) {
	if _, ok := Best(TokenSetScorer{}, "asthma", nil); ok {
		t.Error("expected ok=false for empty candidate set")
	}
}

func TestBest_TieBreakLexicographic(t *testing.T) {
	candidates := []string{"Zoster", "Measles", "Anthrax"}
	for i := 0; i < 20; i++ {
		best, ok := Best(fixedScorer{score: 90}, "anything", candidates)
		if !ok {
			t.Fatal("expected a result")
		}
		if best.Name != "Anthrax" {
			t.Fatalf("tie-break must pick lexicographically first name, got %q", best.Name)
		}
	}
}

func TestBest_DoesNotReorderInput(t *testing.T) {
	candidates := []string{"Zoster", "Anthrax"}
	Best(fixedScorer{score: 1}, "q", candidates)
	if candidates[0] != "Zoster" {
		t.Error("Best must not mutate the caller's slice")
	}
}

// Package match provides fuzzy string scoring for catalog name resolution.
//
// The scoring algorithm is swappable behind the Scorer interface; the
// candidate-selection rules (maximum score, lexicographic tie-break) are
// fixed here and do not depend on the scorer implementation.
package match

import (
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Scorer rates how closely a candidate matches a query on a 0..100 scale.
type Scorer interface {
	Score(query, candidate string) int
}

// TokenSetScorer scores with a token-set ratio, which tolerates word
// reordering, case differences, and minor edits.
type TokenSetScorer struct{}

func (TokenSetScorer) Score(query, candidate string) int {
	return fuzzy.TokenSetRatio(query, candidate)
}

// Result is the best candidate found by a scan.
type Result struct {
	Name  string
	Score int
}

// Best scores query against every candidate and returns the highest-scoring
// one. Candidates are scanned in lexicographic order and a later candidate
// replaces the current best only on a strictly greater score, so equal
// scores always keep the lexicographically smallest name. ok is false when
// the candidate set is empty.
func Best(s Scorer, query string, candidates []string) (best Result, ok bool) {
	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	for _, name := range sorted {
		score := s.Score(query, name)
		if !ok || score > best.Score {
			best = Result{Name: name, Score: score}
			ok = true
		}
	}
	return best, ok
}

package disease

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/codemap/codemap/internal/platform/match"
)

// DefaultThreshold is the minimum (exclusive) similarity score a fuzzy
// candidate must beat to be accepted.
const DefaultThreshold = 70

// Service resolves free-text disease names against the catalog and exposes
// the catalog mutation operations.
type Service struct {
	repo      CatalogRepository
	scorer    match.Scorer
	threshold int
}

// NewService creates a disease resolution service. A threshold outside
// 0..100 falls back to DefaultThreshold.
func NewService(repo CatalogRepository, scorer match.Scorer, threshold int) *Service {
	if threshold < 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	return &Service{repo: repo, scorer: scorer, threshold: threshold}
}

// Threshold returns the service's configured acceptance threshold.
func (s *Service) Threshold() int {
	return s.threshold
}

// Resolve maps a free-text query to a catalog entry using the configured
// threshold.
func (s *Service) Resolve(ctx context.Context, query string) (*MatchResult, error) {
	return s.ResolveWithThreshold(ctx, query, s.threshold)
}

// ResolveWithThreshold maps a free-text query to a catalog entry.
//
// The exact path is case-sensitive and consulted first; only on a miss is
// the query scored against the full name set, and the best candidate is
// accepted only when its score is strictly greater than the threshold.
// An empty catalog resolves to MatchNone, never an error.
func (s *Service) ResolveWithThreshold(ctx context.Context, query string, threshold int) (*MatchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("query must not be empty: %w", ErrInvalidQuery)
	}

	entry, err := s.repo.Get(ctx, trimmed)
	if err == nil {
		return &MatchResult{Kind: MatchExact, Name: trimmed, Entry: entry}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, err
	}

	best, ok := match.Best(s.scorer, trimmed, names)
	if !ok || best.Score <= threshold {
		return &MatchResult{Kind: MatchNone}, nil
	}

	entry, err = s.repo.Get(ctx, best.Name)
	if err != nil {
		return nil, err
	}
	return &MatchResult{Kind: MatchFuzzy, Name: best.Name, Entry: entry, Score: best.Score}, nil
}

// List returns all catalog entries, sorted by canonical name.
func (s *Service) List(ctx context.Context) ([]*Disease, error) {
	return s.repo.List(ctx)
}

// Update applies a partial field update to the named entry.
func (s *Service) Update(ctx context.Context, name string, req UpdateRequest) (*CodeEntry, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("disease name must not be empty: %w", ErrInvalidQuery)
	}
	return s.repo.Update(ctx, name, req)
}

// Delete removes the named entry from the catalog.
func (s *Service) Delete(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("disease name must not be empty: %w", ErrInvalidQuery)
	}
	return s.repo.Delete(ctx, name)
}

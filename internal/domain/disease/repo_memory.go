package disease

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is the in-process catalog store. The catalog is process-wide
// shared mutable state: it is seeded once at construction, mutated in place
// by Update/Delete, and never persisted — state is lost on restart.
//
// All methods are safe for concurrent use. Reads take the read lock and
// return copies, so a mutation is either fully visible or not visible at
// all to any reader.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]CodeEntry
}

// NewMemoryRepo creates a catalog seeded with the given entries. Every seed
// entry must have a non-empty name and both codes; a partial entry is
// rejected outright rather than stored.
func NewMemoryRepo(seed map[string]CodeEntry) (*MemoryRepo, error) {
	entries := make(map[string]CodeEntry, len(seed))
	for name, entry := range seed {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("seed entry with empty disease name")
		}
		if entry.ICD11 == "" || entry.TM2 == "" {
			return nil, fmt.Errorf("seed entry %q is missing a code: %w", name, ErrEmptyCode)
		}
		entries[name] = entry
	}
	return &MemoryRepo{entries: entries}, nil
}

// DefaultSeed returns the built-in catalog seed.
func DefaultSeed() map[string]CodeEntry {
	return map[string]CodeEntry{
		"Asthma":            {ICD11: "CA23", TM2: "TM2-404"},
		"Diabetes mellitus": {ICD11: "5A11", TM2: "TM2-101"},
		"Fever":             {ICD11: "MG21", TM2: "TM2-210"},
	}
}

// LoadSeedFile reads a catalog seed from a JSON file mapping canonical name
// to coding pair, e.g. {"Asthma": {"icd11": "CA23", "tm2": "TM2-404"}}.
func LoadSeedFile(path string) (map[string]CodeEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed map[string]CodeEntry
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("seed file %s contains no entries", path)
	}
	return seed, nil
}

// Get performs a case-sensitive exact lookup.
func (r *MemoryRepo) Get(_ context.Context, name string) (*CodeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return &entry, nil
}

// Names returns a sorted snapshot of the canonical names.
func (r *MemoryRepo) Names(_ context.Context) ([]string, error) {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

// List returns a snapshot of all entries, sorted by name.
func (r *MemoryRepo) List(_ context.Context) ([]*Disease, error) {
	r.mu.RLock()
	diseases := make([]*Disease, 0, len(r.entries))
	for name, entry := range r.entries {
		diseases = append(diseases, &Disease{Name: name, ICD11: entry.ICD11, TM2: entry.TM2})
	}
	r.mu.RUnlock()

	sort.Slice(diseases, func(i, j int) bool { return diseases[i].Name < diseases[j].Name })
	return diseases, nil
}

// Update applies a partial field update under the write lock, so the new
// entry becomes visible to readers all at once.
func (r *MemoryRepo) Update(_ context.Context, name string, req UpdateRequest) (*CodeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	// Reject before touching the entry: a failed update must leave the
	// catalog unchanged, and a blank code would break the no-partial-entry
	// invariant.
	if req.ICD11 != nil && strings.TrimSpace(*req.ICD11) == "" {
		return nil, fmt.Errorf("icd11: %w", ErrEmptyCode)
	}
	if req.TM2 != nil && strings.TrimSpace(*req.TM2) == "" {
		return nil, fmt.Errorf("tm2: %w", ErrEmptyCode)
	}
	if req.ICD11 != nil {
		entry.ICD11 = *req.ICD11
	}
	if req.TM2 != nil {
		entry.TM2 = *req.TM2
	}
	r.entries[name] = entry
	return &entry, nil
}

// Delete removes the entry.
func (r *MemoryRepo) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	delete(r.entries, name)
	return nil
}

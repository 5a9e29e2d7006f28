package disease

import (
	"fmt"
	"strings"

	"github.com/codemap/codemap/internal/platform/fhir"
)

// CodeSystem URIs for the two classification systems carried by every entry.
const (
	SystemICD11 = "http://id.who.int/icd/release/11"
	SystemTM2   = "http://example.org/tm2"
)

// defaultSubject is the placeholder subject reference attached to resolved
// Condition resources until patient context is threaded through.
const defaultSubject = "Patient/P12345"

// CodeEntry is the coding pair for one canonical disease name. Both codes
// are always present; a partial entry is never stored.
type CodeEntry struct {
	ICD11 string `json:"icd11"`
	TM2   string `json:"tm2"`
}

// Disease pairs a canonical name with its coding entry, as returned by List.
type Disease struct {
	Name  string `json:"name"`
	ICD11 string `json:"icd11"`
	TM2   string `json:"tm2"`
}

// UpdateRequest carries a partial update: a nil field keeps its previous
// value.
type UpdateRequest struct {
	ICD11 *string `json:"icd11"`
	TM2   *string `json:"tm2"`
}

// MatchKind classifies how a query was resolved.
type MatchKind string

const (
	MatchExact MatchKind = "exact"
	MatchFuzzy MatchKind = "fuzzy"
	MatchNone  MatchKind = "none"
)

// MatchResult is the outcome of a resolution attempt. Name and Entry are
// set for exact and fuzzy matches; Score is only meaningful for fuzzy.
type MatchResult struct {
	Kind  MatchKind  `json:"kind"`
	Name  string     `json:"name,omitempty"`
	Entry *CodeEntry `json:"entry,omitempty"`
	Score int        `json:"score,omitempty"`
}

// ToFHIR projects a successful match onto a FHIR Condition resource with
// one coding per classification system. Fuzzy matches carry a note telling
// the caller which canonical name the query was corrected to.
func (r *MatchResult) ToFHIR() *fhir.Condition {
	if r.Kind == MatchNone || r.Entry == nil {
		return nil
	}

	cond := &fhir.Condition{
		ResourceType: "Condition",
		ID:           "cond-" + strings.ToLower(r.Name),
		Code: &fhir.CodeableConcept{
			Coding: []fhir.Coding{
				{
					System:  SystemICD11,
					Code:    r.Entry.ICD11,
					Display: r.Name,
				},
				{
					System:  SystemTM2,
					Code:    r.Entry.TM2,
					Display: fmt.Sprintf("%s (TM2)", r.Name),
				},
			},
			Text: r.Name,
		},
		Subject: &fhir.Reference{Reference: defaultSubject},
	}

	if r.Kind == MatchFuzzy {
		cond.Note = []fhir.Annotation{
			{Text: fmt.Sprintf("Did you mean '%s'?", r.Name)},
		}
	}
	return cond
}

// ToFHIR projects a catalog entry onto a FHIR Condition resource.
func (d *Disease) ToFHIR() *fhir.Condition {
	r := &MatchResult{
		Kind:  MatchExact,
		Name:  d.Name,
		Entry: &CodeEntry{ICD11: d.ICD11, TM2: d.TM2},
	}
	return r.ToFHIR()
}

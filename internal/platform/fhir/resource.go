package fhir

type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

type Reference struct {
	Reference string `json:"reference,omitempty"`
	Type      string `json:"type,omitempty"`
	Display   string `json:"display,omitempty"`
}

type Annotation struct {
	Text string `json:"text"`
}

// Condition is the FHIR Condition projection emitted by disease resolution.
// Only the elements this service populates are modelled.
type Condition struct {
	ResourceType string           `json:"resourceType"`
	ID           string           `json:"id"`
	Note         []Annotation     `json:"note,omitempty"`
	Code         *CodeableConcept `json:"code"`
	Subject      *Reference       `json:"subject,omitempty"`
}

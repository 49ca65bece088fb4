package model

import "time"

// Document is a case document as supplied by the extraction collaborator.
// Content is already-decoded plain text; PDF/OCR handling happens upstream.
type Document struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Type         string    `json:"type,omitempty"`          // e.g. "contract", "correspondence", "witness_statement"
	CreationDate time.Time `json:"creation_date,omitempty"` // anchor for relative date resolution
	Author       string    `json:"author,omitempty"`
}

// AnonymizedDocument is the privacy-safe form of a Document. Every analysis
// lane reads these; none may ever see the original content.
type AnonymizedDocument struct {
	ID               string    `json:"id"`
	Content          string    `json:"content"`
	EntitiesDetected []Entity  `json:"entities_detected"`
	Timestamp        time.Time `json:"timestamp"`
	CreationDate     time.Time `json:"creation_date,omitempty"`
}

// Entity is a detected entity after anonymization: only the placeholder
// token and its type survive, never the original value.
type Entity struct {
	Placeholder string  `json:"placeholder"` // e.g. "<PERSON_1>"
	Type        string  `json:"type"`
	Confidence  float64 `json:"confidence"`
	Occurrences int     `json:"occurrences"`
}

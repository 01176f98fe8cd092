package models

import "math"

// Labels returned by the inference backend.
const (
	LabelReal    = "Real"
	LabelFake    = "Fake"
	LabelNoFaces = "No Faces"
)

// Prediction is the classifier verdict for one uploaded video. It is
// immutable once received; a new scan replaces it wholesale.
type Prediction struct {
	Label          string   `json:"label"`
	Confidence     float64  `json:"confidence"`
	Filename       string   `json:"filename"`
	ProcessedBy    string   `json:"processed_by,omitempty"`
	EvidenceFrames []string `json:"frames,omitempty"`
}

// ClampedConfidence keeps the score inside [0,1] no matter what the
// backend sent, since every rendered width is derived from it.
func (p *Prediction) ClampedConfidence() float64 {
	return math.Min(1, math.Max(0, p.Confidence))
}

// Percent returns the confidence as a percentage rounded to one decimal.
func (p *Prediction) Percent() float64 {
	return math.Round(p.ClampedConfidence()*1000) / 10
}

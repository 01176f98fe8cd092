package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dfsentinel/sentinel-web/internal/models"
)

// arcCircumference matches the r=54 SVG ring in the result card:
// 2 * pi * 54. The dash offset walks from full (empty ring) to 0.
const arcCircumference = 339.292

// ResultView carries every display value the result card needs,
// computed server-side so the client never re-derives percentages.
type ResultView struct {
	SessionID      string   `json:"session_id"`
	Label          string   `json:"label"`
	Banner         string   `json:"banner"`
	Verdict        string   `json:"verdict"`
	Percent        string   `json:"percent"`
	BarWidth       float64  `json:"bar_width"`
	ArcOffset      float64  `json:"arc_offset"`
	Filename       string   `json:"filename"`
	ProcessedBy    string   `json:"processed_by,omitempty"`
	EvidenceFrames []string `json:"evidence_frames,omitempty"`
	RawJSON        string   `json:"raw_json"`
}

func BuildResultView(sessionID string, pred *models.Prediction) ResultView {
	c := pred.ClampedConfidence()

	view := ResultView{
		SessionID:      sessionID,
		Label:          pred.Label,
		Percent:        fmt.Sprintf("%.1f", pred.Percent()),
		BarWidth:       c * 100,
		ArcOffset:      arcCircumference * (1 - c),
		Filename:       pred.Filename,
		ProcessedBy:    pred.ProcessedBy,
		EvidenceFrames: pred.EvidenceFrames,
	}

	switch pred.Label {
	case models.LabelFake:
		view.Banner = "FAKE DETECTED"
		view.Verdict = "fake"
	case models.LabelReal:
		view.Banner = "AUTHENTIC"
		view.Verdict = "real"
	case models.LabelNoFaces:
		view.Banner = "NO FACES FOUND"
		view.Verdict = "inconclusive"
	default:
		view.Banner = strings.ToUpper(pred.Label)
		view.Verdict = "inconclusive"
	}

	if raw, err := json.Marshal(pred); err == nil {
		view.RawJSON = string(raw)
	}

	return view
}

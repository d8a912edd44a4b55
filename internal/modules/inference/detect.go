package inference

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"go.uber.org/zap"
)

// labelScore is one classifier prediction.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// DetectAI classifies text with the fixed detector model. Detectors are not
// uniform across providers: responses may arrive as a nested list, a flat
// list, or a single object, and label schemes differ, so matching is a
// case-insensitive substring check for "ai"/"fake".
func (g *Gateway) DetectAI(ctx context.Context, text string) (*DetectResult, error) {
	body, err := json.Marshal(map[string]interface{}{"inputs": text})
	if err != nil {
		return nil, err
	}

	status, _, raw, err := g.post(ctx, g.hfModelURL(detectorModel.ID), g.hfAuthHeaders(), body)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		g.logger.Warn("detector upstream failed", zap.Int("status", status))
		return nil, &UpstreamError{Message: "detection request failed", Payload: raw}
	}

	result := &DetectResult{Model: detectorModel.ID, Verdict: VerdictUnknown}
	entry, ok := findAILabel(parseDetections(raw))
	if !ok {
		return result, nil
	}

	result.Confidence = int(math.Round(entry.Score * 100))
	if entry.Score >= 0.5 {
		result.Verdict = VerdictAI
	} else {
		result.Verdict = VerdictHuman
	}
	return result, nil
}

// parseDetections tolerates the three observed detector response shapes.
func parseDetections(raw []byte) []labelScore {
	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return nested[0]
	}

	var flat []labelScore
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat
	}

	var single labelScore
	if err := json.Unmarshal(raw, &single); err == nil && single.Label != "" {
		return []labelScore{single}
	}

	return nil
}

func findAILabel(entries []labelScore) (labelScore, bool) {
	for _, entry := range entries {
		label := strings.ToLower(entry.Label)
		if strings.Contains(label, "fake") || strings.Contains(label, "ai") {
			return entry, true
		}
	}
	return labelScore{}, false
}

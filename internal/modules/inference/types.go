package inference

import (
	"encoding/json"
	"fmt"
)

// Verdict values for AI-text detection.
const (
	VerdictAI      = "Likely AI-generated"
	VerdictHuman   = "Likely human-written"
	VerdictUnknown = "Unknown"
)

// SummarizeResult is the normalized outcome of a summarization call.
type SummarizeResult struct {
	Model   string `json:"model"`
	Summary string `json:"summary"`
}

// DetectResult is the normalized outcome of an AI-text detection call.
type DetectResult struct {
	Model      string `json:"model"`
	Confidence int    `json:"confidence"` // 0-100
	Verdict    string `json:"verdict"`
}

// ImageResult carries generated image bytes with their upstream content
// type, defaulted to image/png when the provider omits one.
type ImageResult struct {
	Model       string
	Data        []byte
	ContentType string
}

// UpstreamError is any transport, authorization or rate-limit failure from
// a provider. Payload keeps the raw upstream body for diagnosability.
type UpstreamError struct {
	Message string
	Payload []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: %s", e.Message)
}

// Details returns the upstream payload decoded as JSON when possible, or
// the raw text otherwise.
func (e *UpstreamError) Details() interface{} {
	if len(e.Payload) == 0 {
		return nil
	}
	var decoded interface{}
	if err := json.Unmarshal(e.Payload, &decoded); err == nil {
		return decoded
	}
	return string(e.Payload)
}

// LoadingError signals that the requested model is still warming up and the
// caller should retry later. It is a hint, never retried internally.
type LoadingError struct {
	Message       string
	EstimatedTime float64 // seconds, 0 when the provider gave no estimate
}

func (e *LoadingError) Error() string {
	return fmt.Sprintf("model loading: %s", e.Message)
}

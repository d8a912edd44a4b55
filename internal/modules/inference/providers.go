package inference

import "errors"

// providerFamily selects which credential and endpoint base a model uses.
type providerFamily string

const (
	familyHuggingFace providerFamily = "huggingface"
	familyOpenAI      providerFamily = "openai"
	familyAnthropic   providerFamily = "anthropic"
	familyGemini      providerFamily = "gemini"
)

// payloadShape selects how the outbound payload is built and how the
// response is decoded. Provider response shapes are not uniform, so each
// shape owns its decoder.
type payloadShape string

const (
	shapeHFSummarization   payloadShape = "hf-summarization"   // {"inputs": text} -> [{"summary_text"}]
	shapeHFTextGeneration  payloadShape = "hf-text-generation" // instruction-wrapped -> [{"generated_text"}]
	shapeChatCompletion    payloadShape = "chat-completion"    // OpenAI chat completions
	shapeAnthropicMessages payloadShape = "anthropic-messages" // Anthropic messages API
	shapeHFImage           payloadShape = "hf-image"           // binary bytes, JSON on error
	shapeGeminiInline      payloadShape = "gemini-inline"      // candidates/parts inlineData base64
	shapeGeminiPredict     payloadShape = "gemini-predict"     // predictions bytesBase64Encoded
)

// ModelConfig is one compiled-in provider/model entry.
type ModelConfig struct {
	ID     string
	Family providerFamily
	Shape  payloadShape
}

// ErrUnknownModel is returned when modelIndex does not resolve to a table
// entry. It is raised before any outbound call.
var ErrUnknownModel = errors.New("unknown model index")

// summarizeModels is the ordered summarization table. modelIndex selects
// into it; entry 0 is the default.
var summarizeModels = []ModelConfig{
	{ID: "facebook/bart-large-cnn", Family: familyHuggingFace, Shape: shapeHFSummarization},
	{ID: "sshleifer/distilbart-cnn-12-6", Family: familyHuggingFace, Shape: shapeHFSummarization},
	{ID: "google/flan-t5-large", Family: familyHuggingFace, Shape: shapeHFTextGeneration},
	{ID: "gpt-4o-mini", Family: familyOpenAI, Shape: shapeChatCompletion},
	{ID: "claude-haiku-4-5-20251001", Family: familyAnthropic, Shape: shapeAnthropicMessages},
}

// imageModels is the ordered image generation table.
var imageModels = []ModelConfig{
	{ID: "stabilityai/stable-diffusion-xl-base-1.0", Family: familyHuggingFace, Shape: shapeHFImage},
	{ID: "runwayml/stable-diffusion-v1-5", Family: familyHuggingFace, Shape: shapeHFImage},
	{ID: "gemini-2.0-flash-exp-image-generation", Family: familyGemini, Shape: shapeGeminiInline},
	{ID: "imagen-3.0-generate-002", Family: familyGemini, Shape: shapeGeminiPredict},
}

// detectorModel is the fixed AI-text detector. Detection takes no index.
var detectorModel = ModelConfig{
	ID:     "openai-community/roberta-base-openai-detector",
	Family: familyHuggingFace,
	Shape:  shapeHFSummarization,
}

// resolveModel turns a positional index into a table entry, rejecting
// out-of-range values before any outbound call is made.
func resolveModel(table []ModelConfig, index int) (ModelConfig, error) {
	if index < 0 || index >= len(table) {
		return ModelConfig{}, ErrUnknownModel
	}
	return table[index], nil
}

// CatalogEntry describes one selectable model for the read-only catalog.
type CatalogEntry struct {
	Index    int    `json:"index"`
	Model    string `json:"model"`
	Provider string `json:"provider"`
}

// Catalog lists the compiled-in tables so callers can discover valid
// modelIndex values. No credentials or endpoints are exposed.
func Catalog() map[string][]CatalogEntry {
	return map[string][]CatalogEntry{
		"summarize": catalogFor(summarizeModels),
		"generate":  catalogFor(imageModels),
	}
}

func catalogFor(table []ModelConfig) []CatalogEntry {
	out := make([]CatalogEntry, 0, len(table))
	for i, m := range table {
		out = append(out, CatalogEntry{Index: i, Model: m.ID, Provider: string(m.Family)})
	}
	return out
}

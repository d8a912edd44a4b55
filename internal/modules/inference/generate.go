package inference

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// GenerateImage issues one image generation call against the model selected
// by modelIndex. Providers disagree on transport: Hugging Face returns raw
// bytes (or a JSON error under HTTP 200), the Gemini family returns base64
// wrapped in JSON. All are normalized into ImageResult.
func (g *Gateway) GenerateImage(ctx context.Context, prompt string, modelIndex int) (*ImageResult, error) {
	model, err := resolveModel(imageModels, modelIndex)
	if err != nil {
		return nil, err
	}

	switch model.Shape {
	case shapeHFImage:
		return g.generateHF(ctx, model, prompt)
	case shapeGeminiInline:
		return g.generateGeminiInline(ctx, model, prompt)
	case shapeGeminiPredict:
		return g.generateGeminiPredict(ctx, model, prompt)
	default:
		return nil, errors.New("unsupported image payload shape")
	}
}

func (g *Gateway) generateHF(ctx context.Context, model ModelConfig, prompt string) (*ImageResult, error) {
	body, err := json.Marshal(map[string]interface{}{"inputs": prompt})
	if err != nil {
		return nil, err
	}

	headers := g.hfAuthHeaders()
	headers["Accept"] = "image/png"

	status, contentType, raw, err := g.post(ctx, g.hfModelURL(model.ID), headers, body)
	if err != nil {
		return nil, err
	}

	// Some providers answer HTTP 200 with a JSON error body, notably while
	// the model is still warming up, so the content type decides the branch.
	if isJSONContentType(contentType) {
		return nil, classifyImageJSONError(raw)
	}
	if status >= 400 {
		g.logger.Warn("image upstream failed",
			zap.String("model", model.ID), zap.Int("status", status))
		return nil, &UpstreamError{Message: "image generation failed", Payload: raw}
	}
	if !isImageContentType(contentType) {
		contentType = "image/png"
	}

	return &ImageResult{Model: model.ID, Data: raw, ContentType: contentType}, nil
}

func (g *Gateway) generateGeminiInline(ctx context.Context, model ModelConfig, prompt string) (*ImageResult, error) {
	body, err := json.Marshal(map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"responseModalities": []string{"TEXT", "IMAGE"},
		},
	})
	if err != nil {
		return nil, err
	}

	status, _, raw, err := g.post(ctx, g.geminiModelURL(model.ID, ":generateContent"), g.geminiAuthHeaders(), body)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, classifyImageJSONError(raw)
	}

	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					InlineData *struct {
						MimeType string `json:"mimeType"`
						Data     string `json:"data"`
					} `json:"inlineData"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &UpstreamError{Message: "unexpected image response shape", Payload: raw}
	}

	for _, candidate := range payload.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, &UpstreamError{Message: "invalid base64 image data", Payload: raw}
			}
			contentType := part.InlineData.MimeType
			if !isImageContentType(contentType) {
				contentType = "image/png"
			}
			return &ImageResult{Model: model.ID, Data: data, ContentType: contentType}, nil
		}
	}

	return nil, &UpstreamError{Message: "no image in provider response", Payload: raw}
}

func (g *Gateway) generateGeminiPredict(ctx context.Context, model ModelConfig, prompt string) (*ImageResult, error) {
	body, err := json.Marshal(map[string]interface{}{
		"instances":  []map[string]string{{"prompt": prompt}},
		"parameters": map[string]interface{}{"sampleCount": 1},
	})
	if err != nil {
		return nil, err
	}

	status, _, raw, err := g.post(ctx, g.geminiModelURL(model.ID, ":predict"), g.geminiAuthHeaders(), body)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, classifyImageJSONError(raw)
	}

	var payload struct {
		Predictions []struct {
			BytesBase64Encoded string `json:"bytesBase64Encoded"`
			MimeType           string `json:"mimeType"`
		} `json:"predictions"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &UpstreamError{Message: "unexpected image response shape", Payload: raw}
	}

	for _, prediction := range payload.Predictions {
		if prediction.BytesBase64Encoded == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(prediction.BytesBase64Encoded)
		if err != nil {
			return nil, &UpstreamError{Message: "invalid base64 image data", Payload: raw}
		}
		contentType := prediction.MimeType
		if !isImageContentType(contentType) {
			contentType = "image/png"
		}
		return &ImageResult{Model: model.ID, Data: data, ContentType: contentType}, nil
	}

	return nil, &UpstreamError{Message: "no image in provider response", Payload: raw}
}

// classifyImageJSONError distinguishes the "model still loading" condition
// from hard provider failures by inspecting the error text.
func classifyImageJSONError(raw []byte) error {
	message, estimated := decodeUpstreamErrorBody(raw)
	if message == "" {
		message = "image generation failed"
	}
	if strings.Contains(strings.ToLower(message), "loading") {
		return &LoadingError{Message: message, EstimatedTime: estimated}
	}
	return &UpstreamError{Message: message, Payload: raw}
}

// decodeUpstreamErrorBody handles the error field variants providers use:
// a plain string, a list of strings, or a nested {error: {message}} object.
func decodeUpstreamErrorBody(raw []byte) (string, float64) {
	var payload struct {
		Error         json.RawMessage `json:"error"`
		EstimatedTime float64         `json:"estimated_time"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Error) == 0 {
		return "", 0
	}

	var text string
	if err := json.Unmarshal(payload.Error, &text); err == nil {
		return text, payload.EstimatedTime
	}

	var list []string
	if err := json.Unmarshal(payload.Error, &list); err == nil && len(list) > 0 {
		return strings.Join(list, "; "), payload.EstimatedTime
	}

	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Error, &nested); err == nil && nested.Message != "" {
		return nested.Message, payload.EstimatedTime
	}

	return strings.TrimSpace(string(payload.Error)), payload.EstimatedTime
}

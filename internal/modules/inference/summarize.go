package inference

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	"go.uber.org/zap"
)

const (
	summarySystemPrompt = "You are a concise summarization assistant. Reply with the summary only, no preamble."
	maxSummaryTokens    = 300
)

func buildSummaryInstruction(text string) string {
	return "Summarize the following text in a few sentences:\n\n" + text
}

// Summarize issues one summarization call against the model selected by
// modelIndex and normalizes the provider's response shape.
func (g *Gateway) Summarize(ctx context.Context, text string, modelIndex int) (*SummarizeResult, error) {
	model, err := resolveModel(summarizeModels, modelIndex)
	if err != nil {
		return nil, err
	}

	var summary string
	switch model.Shape {
	case shapeHFSummarization:
		summary, err = g.summarizeHF(ctx, model, map[string]interface{}{
			"inputs": text,
		})
	case shapeHFTextGeneration:
		summary, err = g.summarizeHF(ctx, model, map[string]interface{}{
			"inputs":     buildSummaryInstruction(text),
			"parameters": map[string]interface{}{"max_new_tokens": maxSummaryTokens},
		})
	case shapeChatCompletion:
		summary, err = g.summarizeOpenAI(ctx, model, text)
	case shapeAnthropicMessages:
		summary, err = g.summarizeAnthropic(ctx, model, text)
	default:
		err = errors.New("unsupported summarization payload shape")
	}
	if err != nil {
		return nil, err
	}

	return &SummarizeResult{Model: model.ID, Summary: summary}, nil
}

func (g *Gateway) summarizeHF(ctx context.Context, model ModelConfig, payload map[string]interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	status, _, raw, err := g.post(ctx, g.hfModelURL(model.ID), g.hfAuthHeaders(), body)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		g.logger.Warn("summarization upstream failed",
			zap.String("model", model.ID), zap.Int("status", status))
		return "", &UpstreamError{Message: "summarization request failed", Payload: raw}
	}

	return extractSummary(raw), nil
}

func (g *Gateway) summarizeOpenAI(ctx context.Context, model ModelConfig, text string) (string, error) {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(g.providers.OpenAI.APIKey)),
		openaioption.WithMaxRetries(0),
		openaioption.WithHTTPClient(g.client),
	}
	if endpoint := strings.TrimSpace(g.providers.OpenAI.Endpoint); endpoint != "" {
		opts = append(opts, openaioption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}
	client := openaiclient.NewClient(opts...)

	resp, err := client.Chat.Completions.New(ctx, openaiclient.ChatCompletionNewParams{
		Model: openaiclient.ChatModel(model.ID),
		Messages: []openaiclient.ChatCompletionMessageParamUnion{
			openaiclient.SystemMessage(summarySystemPrompt),
			openaiclient.UserMessage(buildSummaryInstruction(text)),
		},
		MaxTokens: openaiclient.Int(maxSummaryTokens),
	})
	if err != nil {
		return "", &UpstreamError{Message: "summarization request failed", Payload: []byte(err.Error())}
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.New("empty response from provider")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (g *Gateway) summarizeAnthropic(ctx context.Context, model ModelConfig, text string) (string, error) {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(strings.TrimSpace(g.providers.Anthropic.APIKey)),
		anthropicoption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(g.providers.Anthropic.Endpoint); endpoint != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}
	client := anthropicclient.NewClient(opts...)
	languageModel := jetanthropic.NewLanguageModel(model.ID, jetanthropic.WithClient(client))

	resp, err := jetai.GenerateText(
		ctx,
		[]jetapi.Message{
			&jetapi.SystemMessage{Content: summarySystemPrompt},
			&jetapi.UserMessage{Content: jetapi.ContentFromText(buildSummaryInstruction(text))},
		},
		jetai.WithModel(languageModel),
		jetai.WithMaxOutputTokens(maxSummaryTokens),
	)
	if err != nil {
		return "", &UpstreamError{Message: "summarization request failed", Payload: []byte(err.Error())}
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}
	result := strings.TrimSpace(full.String())
	if result == "" {
		return "", errors.New("empty response from provider")
	}
	return result, nil
}

// extractSummary pulls a summary string out of a Hugging Face response
// using a priority order: summary_text, then generated_text, then the raw
// body as a last resort. It never fails on an unexpected shape.
func extractSummary(raw []byte) string {
	candidates := make([]map[string]interface{}, 0, 2)

	var list []map[string]interface{}
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		candidates = append(candidates, list[0])
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err == nil {
		candidates = append(candidates, obj)
	}

	for _, item := range candidates {
		for _, key := range []string{"summary_text", "generated_text"} {
			if value, ok := item[key].(string); ok && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		}
	}

	return strings.TrimSpace(string(raw))
}

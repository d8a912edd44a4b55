package inference

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/A-CE-V/Endless-Artificial-Connections/internal/config"
	"go.uber.org/zap"
)

// Gateway translates one inbound task request into one outbound provider
// call and normalizes the result. It holds no per-request state.
type Gateway struct {
	providers config.ProvidersConfig
	client    *http.Client
	logger    *zap.Logger
}

// New builds a Gateway with a bounded outbound timeout. A timed-out call
// surfaces as a generic upstream failure; nothing is retried.
func New(cfg *config.AppConfig, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		providers: cfg.Providers,
		client: &http.Client{
			Timeout: time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// hfModelURL builds the Hugging Face Inference API URL for a model.
func (g *Gateway) hfModelURL(modelID string) string {
	return strings.TrimRight(g.providers.HuggingFace.Endpoint, "/") + "/models/" + modelID
}

// geminiModelURL builds a Generative Language API URL for model + verb
// (":generateContent" or ":predict").
func (g *Gateway) geminiModelURL(modelID, verb string) string {
	return strings.TrimRight(g.providers.Gemini.Endpoint, "/") + "/v1beta/models/" + modelID + verb
}

// post issues one JSON POST and returns status, content type and body.
// Transport failures come back as error; HTTP-level failures do not, the
// caller decides how to interpret status and body per provider shape.
func (g *Gateway) post(ctx context.Context, url string, headers map[string]string, payload []byte) (int, string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		if strings.TrimSpace(v) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, err
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), body, nil
}

func (g *Gateway) hfAuthHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + strings.TrimSpace(g.providers.HuggingFace.APIKey),
	}
}

func (g *Gateway) geminiAuthHeaders() map[string]string {
	return map[string]string{
		"x-goog-api-key": strings.TrimSpace(g.providers.Gemini.APIKey),
	}
}

func isJSONContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "application/json") || strings.Contains(ct, "text/json")
}

func isImageContentType(ct string) bool {
	return strings.HasPrefix(strings.ToLower(ct), "image/")
}

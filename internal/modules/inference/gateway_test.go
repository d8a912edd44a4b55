package inference

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/A-CE-V/Endless-Artificial-Connections/internal/config"
	"go.uber.org/zap"
)

// stubUpstream counts invocations and replays a canned response, so tests
// can assert that rejected requests never produce an outbound call.
type stubUpstream struct {
	server      *httptest.Server
	calls       atomic.Int64
	status      int
	contentType string
	body        []byte
	lastPath    string
	lastAuth    string
}

func newStubUpstream(t *testing.T, status int, contentType string, body []byte) *stubUpstream {
	t.Helper()
	stub := &stubUpstream{status: status, contentType: contentType, body: body}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.calls.Add(1)
		stub.lastPath = r.URL.Path
		stub.lastAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", stub.contentType)
		w.WriteHeader(stub.status)
		w.Write(stub.body)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *stubUpstream) Calls() int64 { return s.calls.Load() }

func newTestGateway(baseURL string) *Gateway {
	cfg := &config.AppConfig{
		Port:     4000,
		Env:      "development",
		Upstream: config.UpstreamConfig{TimeoutSeconds: 5},
		Providers: config.ProvidersConfig{
			HuggingFace: config.ProviderEndpoint{Endpoint: baseURL, APIKey: "hf-test-token"},
			OpenAI:      config.ProviderEndpoint{Endpoint: baseURL + "/v1", APIKey: "openai-test-key"},
			Anthropic:   config.ProviderEndpoint{Endpoint: baseURL, APIKey: "anthropic-test-key"},
			Gemini:      config.ProviderEndpoint{Endpoint: baseURL, APIKey: "gemini-test-key"},
		},
	}
	return New(cfg, zap.NewNop())
}

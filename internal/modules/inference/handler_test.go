package inference

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(gw *Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(gw).RegisterRoutes(router.Group(""))
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerMissingFieldsRejectedBeforeUpstream(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, "application/json", []byte(`[{"summary_text":"never"}]`))
	router := newTestRouter(newTestGateway(stub.server.URL))

	tests := []struct {
		path string
		body string
	}{
		{"/summarize", `{}`},
		{"/summarize", `{"text":"   "}`},
		{"/detect-ai", `{}`},
		{"/generate", `{}`},
		{"/generate", `{"prompt":""}`},
	}
	for _, tt := range tests {
		rec := doJSON(router, http.MethodPost, tt.path, tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tt.path, tt.body)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "required")
	}
	assert.EqualValues(t, 0, stub.Calls())
}

func TestHandlerInvalidModelIndex(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, "application/json", []byte(`[{"summary_text":"never"}]`))
	router := newTestRouter(newTestGateway(stub.server.URL))

	rec := doJSON(router, http.MethodPost, "/summarize", `{"text":"hello","modelIndex":42}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid modelIndex")

	rec = doJSON(router, http.MethodPost, "/generate", `{"prompt":"a cat","modelIndex":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.EqualValues(t, 0, stub.Calls())
}

func TestHandlerSummarizeSuccess(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, "application/json", []byte(`[{"summary_text":"a short summary"}]`))
	router := newTestRouter(newTestGateway(stub.server.URL))

	rec := doJSON(router, http.MethodPost, "/summarize", `{"text":"a very long article"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body SummarizeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a short summary", body.Summary)
	assert.Equal(t, "facebook/bart-large-cnn", body.Model)
}

func TestHandlerSummarizeUpstreamErrorEchoesDetails(t *testing.T) {
	stub := newStubUpstream(t, http.StatusUnauthorized, "application/json", []byte(`{"error":"Authorization header is correct, but the token seems invalid"}`))
	router := newTestRouter(newTestGateway(stub.server.URL))

	rec := doJSON(router, http.MethodPost, "/summarize", `{"text":"hello"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "summarization request failed", body["error"])
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details["error"], "token seems invalid")
}

func TestHandlerDetectAI(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, "application/json", []byte(`[[{"label":"Fake","score":0.93}]]`))
	router := newTestRouter(newTestGateway(stub.server.URL))

	rec := doJSON(router, http.MethodPost, "/detect-ai", `{"text":"as an AI language model"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body DetectResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 93, body.Confidence)
	assert.Equal(t, VerdictAI, body.Verdict)
}

func TestHandlerGenerateBinaryResponse(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, "image/png", fakePNG)
	router := newTestRouter(newTestGateway(stub.server.URL))

	rec := doJSON(router, http.MethodPost, "/generate", `{"prompt":"a cat in space"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, fakePNG, rec.Body.Bytes())
}

func TestHandlerGenerateLoadingReturns503(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, "application/json",
		[]byte(`{"error":"Model is currently loading","estimated_time":20}`))
	router := newTestRouter(newTestGateway(stub.server.URL))

	rec := doJSON(router, http.MethodPost, "/generate", `{"prompt":"a cat"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "loading", body["status"])
	assert.Contains(t, body["error"], "loading")
	assert.InDelta(t, 20, body["estimated_time"], 0.001)
}

func TestHandlerIdempotence(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, "image/png", fakePNG)
	router := newTestRouter(newTestGateway(stub.server.URL))

	first := doJSON(router, http.MethodPost, "/generate", `{"prompt":"a cat"}`)
	second := doJSON(router, http.MethodPost, "/generate", `{"prompt":"a cat"}`)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	assert.Equal(t, first.Header().Get("Content-Type"), second.Header().Get("Content-Type"))
	assert.EqualValues(t, 2, stub.Calls())
}

func TestHandlerModelCatalog(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, "application/json", nil)
	router := newTestRouter(newTestGateway(stub.server.URL))

	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]CatalogEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["summarize"])
	assert.NotEmpty(t, body["generate"])
	assert.EqualValues(t, 0, stub.Calls())
}

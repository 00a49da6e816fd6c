package mcp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symcalc"
	"github.com/njchilds90/symcalc/mcp"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := hclog.New(&hclog.LoggerOptions{Name: "test", Level: hclog.Error, Output: hclog.DefaultOutput})
	srv := mcp.NewServer(symcalc.NewEngine(symcalc.WithLogger(logger)))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postTool(t *testing.T, ts *httptest.Server, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/tool", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHandler_Tool(t *testing.T) {
	ts := newTestServer(t)
	body := `{"tool":"diff","params":{"expr":{"type":"pow","base":{"type":"sym","name":"x"},"exp":{"type":"scalar","re":"3"}},"var":"x"}}`
	resp, out := postTool(t, ts, body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "3 x^2", out["string"])
	assert.NotContains(t, out, "error")
}

func TestHandler_ToolErrorInBody(t *testing.T) {
	ts := newTestServer(t)
	resp, out := postTool(t, ts, `{"tool":"nonexistent","params":{}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "unknown tool: nonexistent", out["error"])
}

func TestHandler_BadRequests(t *testing.T) {
	ts := newTestServer(t)
	for name, body := range map[string]string{
		"malformed":     `{"tool":`,
		"unknown field": `{"tool":"diff","extra":1}`,
		"trailing":      `{"tool":"diff","params":{}} {"tool":"diff"}`,
	} {
		resp, out := postTool(t, ts, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, name)
		assert.NotEmpty(t, out["error"], name)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/tool")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandler_Health(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out["status"])
	assert.NotEmpty(t, out["time"])
}

func TestHandler_Schema(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/schema")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Tools, 9)
}

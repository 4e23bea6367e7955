package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/llm"
)

type extractMockClient struct {
	response string
	err      error
	lastReq  llm.GenerateRequest
}

func (m *extractMockClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "test", LatencyMs: 3}, nil
}

func (m *extractMockClient) Available(context.Context) bool { return m.err == nil }

const coursePage = `<html><head><script>track()</script></head><body>
<div id="chapter-1"><p>Getting started</p>
  <div id="list-content-1"><span>Welcome</span><p class="contentTime">05:30</p></div>
  <div id="list-content-2"><span>Install</span><p class="contentTime">12:00</p></div>
</div></body></html>`

func TestExtract_Success(t *testing.T) {
	mock := &extractMockClient{response: "```json\n" + `{"course":"Go 101","classes":[
		{"module":"Getting started","title":"Welcome","duration":"00:05:30"},
		{"module":"Getting started","title":"Install","duration":"00:12:00"},
		{"module":"Getting started","title":"Quiz","duration":"00:00:00"}
	]}` + "\n```"}

	svc := NewCourseExtractService(mock)
	out, err := svc.Extract(context.Background(), coursePage)
	require.NoError(t, err)

	assert.Equal(t, "Go 101", out.Course)
	assert.Equal(t, []domain.RawItem{
		{Title: "Getting started: Welcome", Duration: "00:05:30"},
		{Title: "Getting started: Install", Duration: "00:12:00"},
	}, out.Items)
	assert.Equal(t, 1, out.Skipped)
	assert.Equal(t, "test", out.Model)

	assert.Equal(t, llm.TaskExtract, mock.lastReq.Task)
	assert.True(t, mock.lastReq.JSON)
	assert.Equal(t, extractSystemPrompt, mock.lastReq.SystemPrompt)
	assert.NotContains(t, mock.lastReq.UserPrompt, "track()", "page is cleaned before prompting")
	assert.True(t, strings.HasPrefix(mock.lastReq.UserPrompt, extractUserPromptPrefix))
}

func TestExtract_NothingFound(t *testing.T) {
	mock := &extractMockClient{response: `{"classes":[]}`}
	_, err := NewCourseExtractService(mock).Extract(context.Background(), coursePage)
	assert.ErrorIs(t, err, ErrNothingExtracted)

	mock = &extractMockClient{response: `{"classes":[{"module":"M","title":"T","duration":"n/a"}]}`}
	_, err = NewCourseExtractService(mock).Extract(context.Background(), coursePage)
	assert.ErrorIs(t, err, ErrNothingExtracted)
}

func TestExtract_EmptyPageSkipsLLM(t *testing.T) {
	mock := &extractMockClient{response: `{"classes":[]}`}
	_, err := NewCourseExtractService(mock).Extract(context.Background(), "<script>only()</script>  ")
	assert.ErrorIs(t, err, ErrNothingExtracted)
	assert.Empty(t, mock.lastReq.UserPrompt)
}

func TestExtract_LLMFailureWrapped(t *testing.T) {
	mock := &extractMockClient{err: llm.ErrTimeout}
	_, err := NewCourseExtractService(mock).Extract(context.Background(), coursePage)
	assert.ErrorIs(t, err, llm.ErrTimeout)
	assert.Contains(t, err.Error(), "llm course extraction failed")
}

func TestExtract_InvalidOutput(t *testing.T) {
	for _, resp := range []string{
		"I could not find any lessons.",
		`{"classes":[{"module":"","title":"","duration":"00:01:00"}]}`,
	} {
		mock := &extractMockClient{response: resp}
		_, err := NewCourseExtractService(mock).Extract(context.Background(), coursePage)
		assert.ErrorIs(t, err, llm.ErrInvalidOutput, resp)
		assert.False(t, errors.Is(err, ErrNothingExtracted))
	}
}

func TestExtract_ThroughOllamaHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "json", body["format"])
		json.NewEncoder(w).Encode(map[string]string{
			"model":    "llama3.2",
			"response": `{"classes":[{"module":"Basics","title":"Loops","duration":"01:15:30"}]}`,
		})
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	svc := NewCourseExtractService(llm.NewOllamaClient(cfg, llm.NoopObserver{}))

	out, err := svc.Extract(context.Background(), coursePage)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Basics: Loops", out.Items[0].Title)
	assert.Equal(t, "llama3.2", out.Model)
}

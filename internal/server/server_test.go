package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/skanaga/veracity/internal/model"
	"github.com/skanaga/veracity/internal/pipeline"
)

type fakeCompleter struct {
	response string
	err      error
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.response}},
		},
	}, nil
}

func newTestServer(fake *fakeCompleter) *Server {
	cfg := model.DefaultConfig()
	p := pipeline.New(cfg, fake)
	return New(p, zap.NewNop(), cfg.Server)
}

func postJSON(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestServer_Analyze_Text(t *testing.T) {
	s := newTestServer(&fakeCompleter{response: "FINAL VERDICT: FAKE\nExplanation: anonymous forward with no source."})

	body, _ := json.Marshal(analyzeRequest{
		Text: "Forwarded message claims drinking hot water every hour cures the virus completely.",
	})
	rec := postJSON(t, s, string(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Verdict != model.VerdictFake {
		t.Errorf("Verdict = %q, want %q", result.Verdict, model.VerdictFake)
	}
	if result.Language != model.LanguageEnglish {
		t.Errorf("Language = %q, want %q", result.Language, model.LanguageEnglish)
	}
	if len(result.Tips) == 0 {
		t.Error("expected verification tips in response")
	}
}

func TestServer_Analyze_RejectsInvalidInput(t *testing.T) {
	s := newTestServer(&fakeCompleter{response: "FINAL VERDICT: REAL"})

	rec := postJSON(t, s, `{"text":"hello"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Error, "valid news content") {
		t.Errorf("unexpected rejection message: %q", resp.Error)
	}
}

func TestServer_Analyze_ServiceFailure(t *testing.T) {
	s := newTestServer(&fakeCompleter{err: errors.New("upstream quota exceeded")})

	rec := postJSON(t, s, `{"text":"The ministry announced the new policy in an official press release today."}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Error, "quota exceeded") {
		t.Errorf("expected underlying cause in error, got %q", resp.Error)
	}
}

func TestServer_Analyze_BadBodies(t *testing.T) {
	s := newTestServer(&fakeCompleter{response: "FINAL VERDICT: REAL"})

	tests := []struct {
		body string
		desc string
	}{
		{"{not json", "malformed JSON"},
		{"{}", "no input variant"},
		{`{"text":"some text here","url":"https://example.com"}`, "two variants"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			rec := postJSON(t, s, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestServer_Analyze_MissingImageField(t *testing.T) {
	s := newTestServer(&fakeCompleter{response: "FINAL VERDICT: REAL"})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("note", "no image attached")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(&fakeCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(&fakeCompleter{response: "FINAL VERDICT: REAL"})

	// One rejected analysis, then scrape.
	postJSON(t, s, `{"text":"hi"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "veracity_analyses_total") {
		t.Error("metrics output missing analysis counter")
	}
}

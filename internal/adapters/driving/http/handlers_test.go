package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// stubQueryService implements driving.QueryService for handler tests
type stubQueryService struct {
	result    *domain.AnswerResult
	answerErr error
	events    []domain.StreamEvent
	streamErr error
}

func (s *stubQueryService) Answer(ctx context.Context, query string) (*domain.AnswerResult, error) {
	if s.answerErr != nil {
		return nil, s.answerErr
	}
	return s.result, nil
}

func (s *stubQueryService) AnswerStream(ctx context.Context, query string) (<-chan domain.StreamEvent, error) {
	if s.streamErr != nil {
		return nil, s.streamErr
	}
	events := make(chan domain.StreamEvent)
	go func() {
		defer close(events)
		for _, e := range s.events {
			events <- e
		}
	}()
	return events, nil
}

// stubPinger implements Pinger
type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func testServer(svc *stubQueryService, db, cache Pinger) *Server {
	return NewServer(Config{Version: "test"}, svc, db, cache)
}

func postJSON(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := testServer(&stubQueryService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestHandleVersion(t *testing.T) {
	s := testServer(&stubQueryService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["version"] != "test" {
		t.Errorf("expected version test, got %q", body["version"])
	}
}

func TestHandleReady(t *testing.T) {
	s := testServer(&stubQueryService{}, &stubPinger{}, &stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandleReady_DatabaseDown(t *testing.T) {
	s := testServer(&stubQueryService{}, &stubPinger{err: errors.New("down")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestHandleQuery(t *testing.T) {
	svc := &stubQueryService{
		result: &domain.AnswerResult{
			Answer: "Bins go out on Tuesdays.",
			Sources: []*domain.Source{
				{Heading: "Waste collection", Title: "Waste", URL: "https://example.org/waste"},
			},
			Metadata: domain.AnswerMetadata{Language: "en", SourceCount: 1},
		},
	}
	s := testServer(svc, nil, nil)

	rec := postJSON(t, s, "/api/v1/query", `{"query":"when is bin collection?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result domain.AnswerResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Answer != "Bins go out on Tuesdays." {
		t.Errorf("unexpected answer: %q", result.Answer)
	}
	if len(result.Sources) != 1 || result.Sources[0].URL != "https://example.org/waste" {
		t.Errorf("unexpected sources: %+v", result.Sources)
	}
}

func TestHandleQuery_InvalidBody(t *testing.T) {
	s := testServer(&stubQueryService{}, nil, nil)

	rec := postJSON(t, s, "/api/v1/query", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleQuery_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"timeout", domain.ErrTimeout, http.StatusGatewayTimeout},
		{"service unavailable", domain.ErrServiceUnavailable, http.StatusServiceUnavailable},
		{"generation failed", domain.ErrGenerationFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(&stubQueryService{answerErr: tt.err}, nil, nil)

			rec := postJSON(t, s, "/api/v1/query", `{"query":"q"}`)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

// parseSSE extracts the JSON payloads from an SSE body
func parseSSE(t *testing.T, body string) []map[string]any {
	t.Helper()

	var frames []map[string]any
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var frame map[string]any
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &frame); err != nil {
			t.Fatalf("invalid frame %q: %v", line, err)
		}
		frames = append(frames, frame)
	}
	return frames
}

func TestHandleQueryStream(t *testing.T) {
	svc := &stubQueryService{
		events: []domain.StreamEvent{
			domain.StartEvent("req-1"),
			domain.SourcesEvent([]*domain.Source{{Heading: "Waste collection", URL: "https://example.org/waste"}}),
			domain.ContentEvent("Bins go out "),
			domain.ContentEvent("on Tuesdays."),
			domain.MetadataEvent(&domain.AnswerMetadata{Language: "en", SourceCount: 1}),
			domain.DoneEvent(),
		},
	}
	s := testServer(svc, nil, nil)

	rec := postJSON(t, s, "/api/v1/query/stream", `{"query":"when?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected SSE content type, got %q", ct)
	}

	frames := parseSSE(t, rec.Body.String())
	wantTypes := []string{"start", "sources", "content", "content", "metadata", "done"}
	if len(frames) != len(wantTypes) {
		t.Fatalf("expected %d frames, got %d", len(wantTypes), len(frames))
	}
	for i, want := range wantTypes {
		if frames[i]["type"] != want {
			t.Errorf("frame %d: expected type %q, got %v", i, want, frames[i]["type"])
		}
	}

	if frames[0]["user_id"] != "req-1" {
		t.Errorf("expected user_id in start frame, got %v", frames[0])
	}
	sources := frames[1]["sources"].([]any)
	src := sources[0].(map[string]any)
	if src["heading"] != "Waste collection" || src["source"] != "https://example.org/waste" {
		t.Errorf("unexpected source frame: %v", src)
	}
	if frames[2]["content"] != "Bins go out " {
		t.Errorf("unexpected content frame: %v", frames[2])
	}
}

func TestHandleQueryStream_ErrorEvent(t *testing.T) {
	svc := &stubQueryService{
		events: []domain.StreamEvent{
			domain.StartEvent("req-2"),
			domain.SourcesEvent(nil),
			domain.ErrorEvent("generation failed"),
		},
	}
	s := testServer(svc, nil, nil)

	rec := postJSON(t, s, "/api/v1/query/stream", `{"query":"q"}`)
	frames := parseSSE(t, rec.Body.String())

	last := frames[len(frames)-1]
	if last["type"] != "error" {
		t.Fatalf("expected terminal error frame, got %v", last)
	}
	if last["message"] != "generation failed" {
		t.Errorf("expected message in error frame, got %v", last)
	}
}

func TestHandleQueryStream_Unsupported(t *testing.T) {
	s := testServer(&stubQueryService{streamErr: domain.ErrStreamingUnsupported}, nil, nil)

	rec := postJSON(t, s, "/api/v1/query/stream", `{"query":"q"}`)
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("expected 501, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected plain JSON failure, got %q", ct)
	}
}

func TestHandleQueryStream_InvalidBody(t *testing.T) {
	s := testServer(&stubQueryService{}, nil, nil)

	rec := postJSON(t, s, "/api/v1/query/stream", `{`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

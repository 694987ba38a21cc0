package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

func TestStreamEncoder_FrameFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	enc, err := NewStreamEncoder(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	enc.Begin()
	if err := enc.Encode(domain.ContentEvent("hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, "data: ") {
		t.Errorf("expected data prefix, got %q", body)
	}
	if !strings.HasSuffix(body, "\n\n") {
		t.Errorf("expected blank-line terminator, got %q", body)
	}
}

func TestMarshalEvent(t *testing.T) {
	tests := []struct {
		name  string
		event domain.StreamEvent
		want  map[string]any
	}{
		{
			name:  "start",
			event: domain.StartEvent("id-1"),
			want:  map[string]any{"type": "start", "user_id": "id-1"},
		},
		{
			name:  "content",
			event: domain.ContentEvent("chunk"),
			want:  map[string]any{"type": "content", "content": "chunk"},
		},
		{
			name:  "done",
			event: domain.DoneEvent(),
			want:  map[string]any{"type": "done"},
		},
		{
			name:  "error",
			event: domain.ErrorEvent("boom"),
			want:  map[string]any{"type": "error", "message": "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := marshalEvent(tt.event)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var got map[string]any
			if err := json.Unmarshal(payload, &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			for k, want := range tt.want {
				if got[k] != want {
					t.Errorf("key %q: expected %v, got %v", k, want, got[k])
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("expected exactly %d keys, got %v", len(tt.want), got)
			}
		})
	}
}

func TestMarshalEvent_SourcesExcludesInternalFields(t *testing.T) {
	payload, err := marshalEvent(domain.SourcesEvent([]*domain.Source{
		{Heading: "H", Title: "T", URL: "https://example.org", Score: 0.9, Passage: "secret passage"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := string(payload)
	if strings.Contains(body, "secret passage") {
		t.Error("expected passage text excluded from wire shape")
	}
	if strings.Contains(body, "0.9") {
		t.Error("expected score excluded from wire shape")
	}
	if !strings.Contains(body, `"source":"https://example.org"`) {
		t.Errorf("expected url under source key, got %s", body)
	}
}

func TestMarshalEvent_NilSources(t *testing.T) {
	payload, err := marshalEvent(domain.StreamEvent{Kind: domain.StreamSources})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(payload), `"sources":[]`) {
		t.Errorf("expected empty array, got %s", payload)
	}
}

func TestMarshalEvent_UnknownKind(t *testing.T) {
	_, err := marshalEvent(domain.StreamEvent{Kind: "bogus"})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

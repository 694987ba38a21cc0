package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// StreamEncoder writes stream events as server-sent events. Each event is a
// single "data: {json}\n\n" frame flushed immediately so fragments reach the
// client as they are generated.
type StreamEncoder struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewStreamEncoder prepares SSE encoding over w.
// Fails when the underlying connection cannot flush incrementally.
func NewStreamEncoder(w http.ResponseWriter) (*StreamEncoder, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support flushing")
	}
	return &StreamEncoder{w: w, flusher: flusher}, nil
}

// Begin writes the SSE response headers
func (e *StreamEncoder) Begin() {
	e.w.Header().Set("Content-Type", "text/event-stream")
	e.w.Header().Set("Cache-Control", "no-cache")
	e.w.Header().Set("Connection", "keep-alive")
	e.w.WriteHeader(http.StatusOK)
	e.flusher.Flush()
}

// Encode writes one event frame and flushes it
func (e *StreamEncoder) Encode(event domain.StreamEvent) error {
	payload, err := marshalEvent(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(e.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	e.flusher.Flush()
	return nil
}

// marshalEvent renders the wire shape for each event kind. The switch is
// exhaustive over kinds; per-kind structs keep unrelated fields off the wire.
func marshalEvent(event domain.StreamEvent) ([]byte, error) {
	switch event.Kind {
	case domain.StreamStart:
		return json.Marshal(struct {
			Type   string `json:"type"`
			UserID string `json:"user_id"`
		}{"start", event.UserID})

	case domain.StreamSources:
		sources := event.Sources
		if sources == nil {
			sources = []*domain.Source{}
		}
		return json.Marshal(struct {
			Type    string           `json:"type"`
			Sources []*domain.Source `json:"sources"`
		}{"sources", sources})

	case domain.StreamContent:
		return json.Marshal(struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		}{"content", event.Content})

	case domain.StreamMetadata:
		return json.Marshal(struct {
			Type     string                 `json:"type"`
			Metadata *domain.AnswerMetadata `json:"metadata"`
		}{"metadata", event.Metadata})

	case domain.StreamDone:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{"done"})

	case domain.StreamError:
		return json.Marshal(struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}{"error", event.Message})

	default:
		return nil, fmt.Errorf("unknown stream event kind %q", event.Kind)
	}
}

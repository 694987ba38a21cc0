package detect

import (
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

func TestDetect_English(t *testing.T) {
	d := NewLinguaDetector(0.6)

	lang, err := d.Detect(context.Background(), "when is the bin collection in my street?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lang.Tag != "en" {
		t.Errorf("expected en, got %q", lang.Tag)
	}
	if lang.Confidence < 0.6 {
		t.Errorf("expected confidence above floor, got %v", lang.Confidence)
	}
}

func TestDetect_Spanish(t *testing.T) {
	d := NewLinguaDetector(0.6)

	lang, err := d.Detect(context.Background(), "¿cuándo recogen la basura en mi calle?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lang.Tag != "es" {
		t.Errorf("expected es, got %q", lang.Tag)
	}
}

func TestDetect_EmptyText(t *testing.T) {
	d := NewLinguaDetector(0.6)

	lang, err := d.Detect(context.Background(), "   ")
	if !errors.Is(err, domain.ErrDetectionInconclusive) {
		t.Fatalf("expected ErrDetectionInconclusive, got %v", err)
	}
	if lang.Known() {
		t.Errorf("expected unknown language, got %q", lang.Tag)
	}
}

func TestDetect_BelowConfidenceFloor(t *testing.T) {
	// An impossible floor forces the inconclusive path.
	d := NewLinguaDetector(1.1)

	lang, err := d.Detect(context.Background(), "hello world")
	if !errors.Is(err, domain.ErrDetectionInconclusive) {
		t.Fatalf("expected ErrDetectionInconclusive, got %v", err)
	}
	if lang.Tag != domain.LanguageUnknown {
		t.Errorf("expected %q, got %q", domain.LanguageUnknown, lang.Tag)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	d := NewLinguaDetector(0.6)

	first, err := d.Detect(context.Background(), "where can I apply for a parking permit?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := d.Detect(context.Background(), "where can I apply for a parking permit?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected deterministic result, got %+v then %+v", first, second)
	}
}

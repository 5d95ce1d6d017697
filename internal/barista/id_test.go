package barista

import (
	"errors"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestGenerateIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := generateID()
		if len(id) != 16 {
			t.Fatalf("expected 16 hex chars, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}

func TestGenerateIDFallback(t *testing.T) {
	orig := idSource
	idSource = failingReader{}
	defer func() { idSource = orig }()

	a, b := generateID(), generateID()
	if !strings.HasPrefix(a, "order-") || strings.Contains(a, "[") {
		t.Fatalf("unexpected fallback id %q", a)
	}
	if a == b {
		t.Fatalf("fallback ids should differ, both %q", a)
	}
}

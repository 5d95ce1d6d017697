package conversation

import (
	"errors"
	"testing"

	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/logger"
)

func TestYesNo(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewAnswerParser(log)

	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		// Yes variants
		{"yes", true, false},
		{"YES", true, false},
		{"  Yes ", true, false},
		{"y", true, false},
		{"yeah", true, false},
		{"sure!", true, false},
		{"yes please", true, false},

		// No variants
		{"no", false, false},
		{"No.", false, false},
		{"n", false, false},
		{"nope", false, false},
		{"no thanks", false, false},

		// Unrecognized
		{"", false, true},
		{"maybe", false, true},
		{"yes and no", false, true},
		{"noo", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parser.YesNo(tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnrecognizedAnswer) {
					t.Fatalf("input=%q: expected ErrUnrecognizedAnswer, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("input=%q: unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("input=%q: got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"Ada", "Ada", false},
		{"  Ada   Lovelace ", "Ada Lovelace", false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tt := range tests {
		got, err := Name(tt.input)
		if tt.wantErr {
			if !errors.Is(err, domain.ErrUnrecognizedAnswer) {
				t.Errorf("input=%q: expected ErrUnrecognizedAnswer, got %v", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("input=%q: got (%q, %v), want %q", tt.input, got, err, tt.want)
		}
	}
}

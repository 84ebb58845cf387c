package tokenizer

import "testing"

func TestLimitKnownModels(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{"gpt-4", 8192},
		{"gpt-4o", 128000},
		{"gpt-3.5-turbo", 16385},
	}

	for _, tt := range tests {
		if got := Limit(tt.model); got != tt.want {
			t.Errorf("Limit(%s) = %d, want %d", tt.model, got, tt.want)
		}
	}
}

func TestLimitUnknownModel(t *testing.T) {
	if got := Limit("not-a-model"); got != 0 {
		t.Errorf("Limit(not-a-model) = %d, want 0", got)
	}
}

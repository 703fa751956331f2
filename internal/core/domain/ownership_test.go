package domain

import "testing"

func TestCanModify(t *testing.T) {
	tests := []struct {
		name   string
		actor  string
		author string
		want   bool
	}{
		{"same id", "60f1a2b3c4d5e6f7a8b9c0d1", "60f1a2b3c4d5e6f7a8b9c0d1", true},
		{"different id", "60f1a2b3c4d5e6f7a8b9c0d1", "60f1a2b3c4d5e6f7a8b9c0d2", false},
		{"case insensitive", "60F1A2B3C4D5E6F7A8B9C0D1", "60f1a2b3c4d5e6f7a8b9c0d1", true},
		{"surrounding space", " 60f1a2b3c4d5e6f7a8b9c0d1 ", "60f1a2b3c4d5e6f7a8b9c0d1", true},
		{"empty actor", "", "", false},
		{"empty author", "60f1a2b3c4d5e6f7a8b9c0d1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModify(tt.actor, tt.author); got != tt.want {
				t.Fatalf("CanModify(%q, %q) = %v, want %v", tt.actor, tt.author, got, tt.want)
			}
			if got := CanModify(tt.author, tt.actor); got != tt.want {
				t.Fatalf("CanModify not symmetric for %q, %q", tt.actor, tt.author)
			}
		})
	}
}

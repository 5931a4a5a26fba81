package importer

import (
	"testing"

	"github.com/english-learn/backend/internal/models"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		name    string
		raw     []string
		want    Row
		wantErr bool
	}{
		{
			name: "full row",
			raw:  []string{"resilient", "recovers quickly", "adjective", "/rɪˈzɪliənt/", "Character", "advanced"},
			want: Row{
				Word: "resilient", Definition: "recovers quickly",
				PartOfSpeech: "adjective", Phonetic: "/rɪˈzɪliənt/",
				Category: "Character", Difficulty: models.DifficultyAdvanced,
			},
		},
		{
			name: "short row defaults difficulty",
			raw:  []string{"bed", "a place to sleep"},
			want: Row{Word: "bed", Definition: "a place to sleep", Difficulty: models.DifficultyIntermediate},
		},
		{
			name: "whitespace trimmed",
			raw:  []string{"  bed  ", "  a place to sleep  "},
			want: Row{Word: "bed", Definition: "a place to sleep", Difficulty: models.DifficultyIntermediate},
		},
		{
			name:    "missing word",
			raw:     []string{"", "a definition"},
			wantErr: true,
		},
		{
			name:    "missing definition",
			raw:     []string{"bed"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRow(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRow: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseRow = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"beginner", models.DifficultyBeginner},
		{"EASY", models.DifficultyBeginner},
		{"a1", models.DifficultyBeginner},
		{"intermediate", models.DifficultyIntermediate},
		{"", models.DifficultyIntermediate},
		{"something else", models.DifficultyIntermediate},
		{"hard", models.DifficultyAdvanced},
		{"C2", models.DifficultyAdvanced},
	}

	for _, tt := range tests {
		if got := NormalizeDifficulty(tt.in); got != tt.want {
			t.Errorf("NormalizeDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

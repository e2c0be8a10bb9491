package segment

import (
	"errors"
	"testing"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Record
		wantErr error
	}{
		{
			name: "valid record",
			line: `{"text": "Hello,", "complexity": 0.3}`,
			want: Record{Text: "Hello,", Complexity: 0.3},
		},
		{
			name: "zero complexity",
			line: `{"text": "word", "complexity": 0}`,
			want: Record{Text: "word", Complexity: 0},
		},
		{
			name: "complexity clamped high",
			line: `{"text": "word", "complexity": 3.5}`,
			want: Record{Text: "word", Complexity: 1},
		},
		{
			name: "complexity clamped low",
			line: `{"text": "word", "complexity": -0.2}`,
			want: Record{Text: "word", Complexity: 0},
		},
		{
			name: "extra fields tolerated",
			line: `{"text": "word", "complexity": 0.5, "index": 7}`,
			want: Record{Text: "word", Complexity: 0.5},
		},
		{
			name:    "missing text",
			line:    `{"complexity": 0.5}`,
			wantErr: ErrIncompleteRecord,
		},
		{
			name:    "missing complexity",
			line:    `{"text": "word"}`,
			wantErr: ErrIncompleteRecord,
		},
		{
			name:    "empty text",
			line:    `{"text": "", "complexity": 0.5}`,
			wantErr: ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecord([]byte(tt.line))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseRecord(%s) error = %v, want %v", tt.line, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRecord(%s) error: %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseRecord(%s) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseRecordRejectsNonObjects(t *testing.T) {
	lines := []string{
		`[1, 2, 3]`,
		`"just a string"`,
		`42`,
		`{"text": 42, "complexity": 0.5}`,
		`{"text": "word", "complexity": "high"}`,
		`{"text": "word", "complexity": 0.5`, // truncated
		`not json at all`,
	}

	for _, line := range lines {
		if _, err := ParseRecord([]byte(line)); err == nil {
			t.Errorf("ParseRecord(%s) succeeded, want error", line)
		}
	}
}

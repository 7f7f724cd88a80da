package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatMarkdownKeepFlags(t *testing.T) {
	in := "# Title  \n\n\n\ntext  \n"

	tests := []struct {
		name       string
		keepSpace  bool
		keepBlanks bool
		want       string
	}{
		{
			name: "defaults_trim_and_collapse",
			want: "# Title\n\ntext\n",
		},
		{
			name:      "keep_trailing_space",
			keepSpace: true,
			want:      "# Title  \n\ntext  \n",
		},
		{
			name:       "keep_both",
			keepSpace:  true,
			keepBlanks: true,
			want:       "# Title  \n\n\n\ntext  \n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "doc.md")
			if err := os.WriteFile(path, []byte(in), 0644); err != nil {
				t.Fatalf("writing input: %v", err)
			}

			formatType = "markdown"
			formatListIndent = 2
			formatKeepTrailingSpace = tt.keepSpace
			formatKeepBlankRuns = tt.keepBlanks
			formatWrite = true

			if err := formatCmd.RunE(formatCmd, []string{path}); err != nil {
				t.Fatalf("format: %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("formatted = %q, want %q", got, tt.want)
			}
		})
	}
}

package textwrap

import (
	"strings"
	"testing"
)

// TestWrap tests word wrapping against display column limits
func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		want     string
		lines    int
		maxWidth int
	}{
		{
			name:     "simple_wrap",
			text:     "the quick brown fox",
			width:    10,
			want:     "the quick\nbrown fox",
			lines:    2,
			maxWidth: 9,
		},
		{
			name:     "exact_fit",
			text:     "abcd",
			width:    4,
			want:     "abcd",
			lines:    1,
			maxWidth: 4,
		},
		{
			name:     "hard_newlines_preserved",
			text:     "ab\ncd",
			width:    10,
			want:     "ab\ncd",
			lines:    2,
			maxWidth: 2,
		},
		{
			name:     "long_word_broken",
			text:     "abcdefghij",
			width:    4,
			want:     "abcd\nefgh\nij",
			lines:    3,
			maxWidth: 4,
		},
		{
			name:     "wide_runes_count_double",
			text:     "日本語のテキスト",
			width:    6,
			want:     "日本語\nのテキ\nスト",
			lines:    3,
			maxWidth: 6,
		},
		{
			name:     "trailing_space_trimmed",
			text:     "ab cd",
			width:    3,
			want:     "ab\ncd",
			lines:    2,
			maxWidth: 2,
		},
		{
			name:     "empty",
			text:     "",
			width:    8,
			want:     "",
			lines:    1,
			maxWidth: 0,
		},
		{
			name:     "blank_line_kept",
			text:     "ab\n\ncd",
			width:    8,
			want:     "ab\n\ncd",
			lines:    3,
			maxWidth: 2,
		},
		{
			name:     "zero_width_measures_only",
			text:     "hello world",
			width:    0,
			want:     "hello world",
			lines:    1,
			maxWidth: 11,
		},
		{
			name:     "negative_width_measures_only",
			text:     "ab\ncdef",
			width:    -1,
			want:     "ab\ncdef",
			lines:    2,
			maxWidth: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if got.Text != tt.want {
				t.Errorf("Text = %q, want %q", got.Text, tt.want)
			}
			if got.Lines != tt.lines {
				t.Errorf("Lines = %d, want %d", got.Lines, tt.lines)
			}
			if got.MaxWidth != tt.maxWidth {
				t.Errorf("MaxWidth = %d, want %d", got.MaxWidth, tt.maxWidth)
			}
		})
	}
}

// TestWrapLongParagraph tests that every wrapped line respects the limit
func TestWrapLongParagraph(t *testing.T) {
	text := "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."
	res := Wrap(text, 24)

	if res.MaxWidth > 24 {
		t.Errorf("MaxWidth = %d, want <= 24", res.MaxWidth)
	}
	if res.Lines < 5 {
		t.Errorf("Lines = %d, want >= 5", res.Lines)
	}

	// No content lost apart from collapsed break whitespace
	joined := strings.ReplaceAll(res.Text, "\n", " ")
	for _, word := range []string{"Lorem", "consectetur", "aliqua."} {
		if !strings.Contains(joined, word) {
			t.Errorf("wrapped text lost %q", word)
		}
	}
}

// TestWidth tests display width measurement
func TestWidth(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"ascii", "hello", 5},
		{"multiline", "ab\ncdef\ng", 4},
		{"wide_runes", "ab\n日本", 4},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Width(tt.text); got != tt.want {
				t.Errorf("Width(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

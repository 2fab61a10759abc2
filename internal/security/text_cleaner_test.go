package security

import "testing"

func TestTextCleaner_Clean(t *testing.T) {
	c := NewTextCleaner()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "A bill to improve access.", "A bill to improve access."},
		{
			"congress summary html",
			"<p><strong>Healthcare Act</strong></p><p>This bill requires coverage.</p>",
			"Healthcare Act This bill requires coverage.",
		},
		{
			"list items",
			"<p>This bill requires permits.</p><ul><li>Item one</li><li>Item two</li></ul>",
			"This bill requires permits. Item one Item two",
		},
		{"line breaks", "First line<br>Second line<br/>Third", "First line Second line Third"},
		{"headings and divs", "<h2>Summary</h2><div>Body</div>", "Summary Body"},
		{"inline tags keep words", "H<sub>2</sub>O and <em>re</em>form", "H2O and reform"},
		{"entities", "Research &amp; Development &quot;R&amp;D&quot;", `Research & Development "R&D"`},
		{"script removed", "Safe<script>alert(1)</script> text", "Safe text"},
		{"whitespace collapsed", "  line one\n\n\tline two  ", "line one line two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// 同一入力に対して常に同一出力を返すこと
func TestTextCleaner_Idempotent(t *testing.T) {
	c := NewTextCleaner()
	input := "<p>Tax &amp; <em>credit</em></p>"

	first := c.Clean(input)
	second := c.Clean(first)
	if first != second {
		t.Errorf("Clean is not idempotent: %q then %q", first, second)
	}
}

package markdown

import "testing"

func TestNormalizeIndentation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no leading whitespace", "# Title\n    code", "# Title\n    code"},
		{"nested block", "\n    # Title\n\n    Para", "# Title\n\nPara"},
		{"whitespace-only anchor", "\n   \n", "\n"},
		{"newlines only", "\n\n", "\n\n"},
		{"deeper lines keep extra indent", "  a\n      b\n  c", "a\n    b\nc"},
		{"shallower lines untouched", "    a\n  b\n    c", "a\n  b\nc"},
		{"crlf", "\r\n    a\r\n    b", "a\nb"},
		{"tabs", "\n\t\tx\n\t\ty", "x\ny"},
		{"anchor without newline", "   only", "only"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeIndentation(tc.in); got != tc.want {
				t.Fatalf("NormalizeIndentation(%q): expected %q, got %q", tc.in, tc.want, got)
			}
		})
	}
}

func TestNormalizeIndentationIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"\n    # Title\n\n    Para",
		"  a\n      b\n  c",
		"\t\tx\n\t\ty\n",
		"plain\n  text",
	}
	for _, in := range inputs {
		once := NormalizeIndentation(in)
		if twice := NormalizeIndentation(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

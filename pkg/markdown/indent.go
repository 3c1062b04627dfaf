package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeIndentation removes the common indent of a block that was written
// nested inside markup. The first non-empty line sets the indent; that many
// leading whitespace characters are stripped from it and every later line
// that has at least as much. Less indented lines are kept as they are and
// leading blank lines are dropped. Text that is empty or does not start with
// whitespace is returned unchanged, as is text with no non-empty line.
func NormalizeIndentation(text string) string {
	if text == "" {
		return text
	}
	first, _ := utf8.DecodeRuneInString(text)
	if !unicode.IsSpace(first) {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	anchor := -1
	for i, line := range lines {
		if line != "" {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return text
	}

	indent := leadingWhitespace(lines[anchor])
	out := make([]string, 0, len(lines)-anchor)
	for _, line := range lines[anchor:] {
		if leadingWhitespace(line) >= indent {
			line = dropRunes(line, indent)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func leadingWhitespace(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

func dropRunes(line string, n int) string {
	for i := range line {
		if n == 0 {
			return line[i:]
		}
		n--
	}
	return ""
}

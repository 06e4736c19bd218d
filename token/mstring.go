package token

import "strings"

// dedent post-processes the accumulated characters of a multi-line string.
// The characters are split at source newlines (escape-produced newlines are
// content, not boundaries). The final line must consist entirely of
// space-like characters none of which came from an escape; it defines the
// indent prefix stripped from every preceding line. Lines are rejoined with
// a LF and no trailing newline.
func dedent(cs []echar) (string, error) {
	var lines [][]echar
	cur := []echar{}
	for _, c := range cs {
		if !c.esc && isNewline(c.r) {
			lines = append(lines, cur)
			cur = []echar{}
			continue
		}
		cur = append(cur, c)
	}
	lines = append(lines, cur)

	last := lines[len(lines)-1]
	for _, c := range last {
		if c.esc {
			return "", ErrInvalidEndLine
		}
		if !isSpace(c.r) {
			return "", ErrInvalidMultilineString
		}
	}
	prefix := last

	body := lines[:len(lines)-1]
	out := make([]string, 0, len(body))
	for _, line := range body {
		if len(line) == 0 {
			out = append(out, "")
			continue
		}
		if len(line) < len(prefix) {
			return "", ErrIncompleteDedentation
		}
		for i, p := range prefix {
			if line[i].r != p.r {
				return "", ErrIncompleteDedentation
			}
		}
		out = append(out, echarString(line[len(prefix):]))
	}
	return strings.Join(out, "\n"), nil
}

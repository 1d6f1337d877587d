package parser

type segment struct {
	start, end int
	closed     bool
}

// findStructures scans s for top-level {...} and [...] segments, skipping
// over quoted strings. A segment still open at the end of input is returned
// unclosed.
//
// Double quotes always open a string inside a segment. Single quotes and
// backticks only do so where a key or value starts (after one of `{[,:`),
// so apostrophes in unquoted prose stay literal.
//
// Iterating bytes is safe for the ASCII delimiters because UTF-8 never uses
// ASCII bytes inside multi-byte sequences.
func findStructures(s string) []segment {
	var out []segment
	var stack []byte
	start := -1
	var quote byte // open string delimiter, 0 outside strings
	escape := false
	var prev byte // last non-space byte outside strings

	for i := 0; i < len(s); i++ {
		b := s[i]
		if escape {
			escape = false
			continue
		}
		if quote != 0 {
			switch b {
			case '\\':
				escape = true
			case quote:
				quote = 0
				prev = b
			}
			continue
		}
		switch b {
		case '"':
			if len(stack) > 0 {
				quote = b
			}
		case '\'', '`':
			if len(stack) > 0 && opensValue(prev) {
				quote = b
			}
		case '{', '[':
			if len(stack) == 0 {
				start = i
			}
			stack = append(stack, b)
		case '}', ']':
			if len(stack) == 0 {
				break
			}
			want := byte('{')
			if b == ']' {
				want = '['
			}
			if stack[len(stack)-1] != want {
				break
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				out = append(out, segment{start: start, end: i + 1, closed: true})
				start = -1
			}
		}
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			prev = b
		}
	}
	if len(stack) > 0 && start >= 0 {
		out = append(out, segment{start: start, end: len(s)})
	}
	return out
}

func opensValue(prev byte) bool {
	switch prev {
	case '{', '[', ',', ':':
		return true
	}
	return false
}

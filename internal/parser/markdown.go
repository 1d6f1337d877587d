package parser

import "strings"

const fence = "```"

type fencedBlock struct {
	lang    string
	content string
	closed  bool
}

// findFences returns every ```lang ... ``` block in order. A final fence
// left open by a truncated stream runs to the end of the text.
func findFences(text string) []fencedBlock {
	var out []fencedBlock
	rest := text
	for {
		open := strings.Index(rest, fence)
		if open < 0 {
			return out
		}
		rest = rest[open+len(fence):]
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			// "```json" with nothing after it yet.
			out = append(out, fencedBlock{lang: strings.TrimSpace(rest)})
			return out
		}
		lang := strings.TrimSpace(rest[:nl])
		rest = rest[nl+1:]
		end := strings.Index(rest, fence)
		if end < 0 {
			out = append(out, fencedBlock{lang: lang, content: strings.TrimSpace(rest)})
			return out
		}
		out = append(out, fencedBlock{lang: lang, content: strings.TrimSpace(rest[:end]), closed: true})
		rest = rest[end+len(fence):]
	}
}

// Package match picks one named candidate for a piece of free text. Enum
// and string-literal coercion both use it.
package match

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"golang.org/x/text/cases"
)

// Candidate is one selectable name together with every string that should
// resolve to it. Aliases usually include Name itself.
type Candidate struct {
	Name    string
	Aliases []string
}

// Kind records which step of the matcher produced a Result.
type Kind int

const (
	Exact Kind = iota
	CaseInsensitive
	Substring
	Fuzzy
)

func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case CaseInsensitive:
		return "case_insensitive"
	case Substring:
		return "substring"
	case Fuzzy:
		return "fuzzy"
	}
	return "unknown"
}

// Result names the selected candidate and the alias string that matched.
type Result struct {
	Name  string
	Alias string
	Kind  Kind
}

// NoMatchError is returned when no candidate, or more than one equally good
// candidate, fits the input.
type NoMatchError struct {
	Input     string
	Tried     []string
	Ambiguous []string
}

func (e *NoMatchError) Error() string {
	if len(e.Ambiguous) > 0 {
		return fmt.Sprintf("ambiguous match for %q between [%s]", e.Input, strings.Join(e.Ambiguous, ", "))
	}
	return fmt.Sprintf("no candidate matched %q; tried: [%s]", e.Input, strings.Join(e.Tried, ", "))
}

const (
	minFuzzyRunes   = 4
	minSimilarity   = 0.8
	minTokenOverlap = 0.5
	minReverseRunes = 3
)

// Match runs the matcher steps in order: exact, case-insensitive,
// token-bounded containment, then edit distance and token overlap.
func Match(input string, cands []Candidate) (Result, error) {
	in := strings.TrimSpace(input)

	for _, c := range cands {
		for _, a := range c.Aliases {
			if a == in {
				return Result{Name: c.Name, Alias: a, Kind: Exact}, nil
			}
		}
	}

	norm := normalize(in)
	if norm != "" {
		for _, c := range cands {
			for _, a := range c.Aliases {
				if normalize(a) == norm {
					return Result{Name: c.Name, Alias: a, Kind: CaseInsensitive}, nil
				}
			}
		}
		if r, ok := containment(norm, cands); ok {
			return r, nil
		}
		r, ambiguous := fuzzy(norm, cands)
		if len(ambiguous) > 1 {
			return Result{}, &NoMatchError{Input: in, Tried: names(cands), Ambiguous: ambiguous}
		}
		if r.Name != "" {
			return r, nil
		}
	}
	return Result{}, &NoMatchError{Input: in, Tried: names(cands)}
}

func containment(norm string, cands []Candidate) (Result, bool) {
	var hit Result
	found := 0
	reverse := utf8.RuneCountInString(norm) >= minReverseRunes
	for _, c := range cands {
		for _, a := range c.Aliases {
			na := normalize(a)
			if na == "" {
				continue
			}
			if containsToken(norm, na) || (reverse && containsToken(na, norm)) {
				found++
				hit = Result{Name: c.Name, Alias: a, Kind: Substring}
				break
			}
		}
	}
	return hit, found == 1
}

// fuzzy returns the strict best candidate, or every tied candidate name
// when the best score is shared.
func fuzzy(norm string, cands []Candidate) (Result, []string) {
	var best Result
	bestScore := 0.0
	var tied []string
	for _, c := range cands {
		score, alias := 0.0, ""
		for _, a := range c.Aliases {
			if s := similarity(norm, normalize(a)); s > score {
				score, alias = s, a
			}
		}
		switch {
		case score == 0:
		case score > bestScore:
			best = Result{Name: c.Name, Alias: alias, Kind: Fuzzy}
			bestScore = score
			tied = []string{c.Name}
		case score == bestScore:
			tied = append(tied, c.Name)
		}
	}
	if len(tied) > 1 {
		return Result{}, tied
	}
	return best, nil
}

func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	score := 0.0
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la >= minFuzzyRunes && lb >= minFuzzyRunes {
		longest := la
		if lb > longest {
			longest = lb
		}
		s := 1 - float64(levenshtein.Distance(a, b, nil))/float64(longest)
		if s >= minSimilarity {
			score = s
		}
	}
	ta, tb := strings.Fields(a), strings.Fields(b)
	if len(ta) > 1 || len(tb) > 1 {
		if j := jaccard(ta, tb); j >= minTokenOverlap && j > score {
			score = j
		}
	}
	return score
}

func jaccard(a, b []string) float64 {
	set := make(map[string]int, len(a)+len(b))
	for _, t := range a {
		set[t] |= 1
	}
	for _, t := range b {
		set[t] |= 2
	}
	both := 0
	for _, m := range set {
		if m == 3 {
			both++
		}
	}
	return float64(both) / float64(len(set))
}

// containsToken reports whether needle occurs in hay on word boundaries.
func containsToken(hay, needle string) bool {
	for from := 0; from <= len(hay)-len(needle); {
		i := strings.Index(hay[from:], needle)
		if i < 0 {
			return false
		}
		i += from
		end := i + len(needle)
		before, _ := utf8.DecodeLastRuneInString(hay[:i])
		after, _ := utf8.DecodeRuneInString(hay[end:])
		if (i == 0 || !isWord(before)) && (end == len(hay) || !isWord(after)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(hay[i:])
		from = i + size
	}
	return false
}

func isWord(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

// normalize trims, strips surrounding punctuation and quotes, collapses
// whitespace and case-folds. A Caser holds state, so each call gets its own.
func normalize(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '_') || unicode.IsSymbol(r)
	})
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

func names(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Name
	}
	return out
}

// Package menu resolves free-form dish names to canonical menu keys.
//
// Resolution is two-staged. An exact match of the normalised query against a
// key, name or alias wins outright. Otherwise every known name is scored with
// the longest-common-substring similarity 2·LCS/(|q|+|n|), expressed in
// per-mille so comparisons stay integral. The best score must reach the
// threshold; ties go to the longer common substring, then the smaller key.
package menu

import (
	"sort"
	"strings"
	"unicode"

	"hotel-concierge/internal/pkg/errs"
)

const (
	DefaultThreshold = 600
	maxScore         = 1000
)

type Entry struct {
	Key   string
	Names []string
}

type Match struct {
	Key   string
	Score int
	Exact bool
}

type candidate struct {
	key  string
	name []rune
}

type Matcher struct {
	exact      map[string]string
	candidates []candidate
	threshold  int
}

func NewMatcher(entries []Entry, threshold int) *Matcher {
	if threshold <= 0 || threshold > maxScore {
		threshold = DefaultThreshold
	}
	m := &Matcher{
		exact:     make(map[string]string),
		threshold: threshold,
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	for _, e := range sorted {
		names := append([]string{e.Key}, e.Names...)
		for _, n := range names {
			norm := Normalize(n)
			if norm == "" {
				continue
			}
			if _, taken := m.exact[norm]; !taken {
				m.exact[norm] = e.Key
			}
			m.candidates = append(m.candidates, candidate{key: e.Key, name: []rune(norm)})
		}
	}
	return m
}

func (m *Matcher) Threshold() int {
	return m.threshold
}

// Resolve returns the canonical key for query or errs.ErrItemNotFound.
func (m *Matcher) Resolve(query string) (Match, error) {
	norm := Normalize(query)
	if norm == "" {
		return Match{}, errs.Wrap(errs.ErrItemNotFound, "empty item name")
	}
	if key, ok := m.exact[norm]; ok {
		return Match{Key: key, Score: maxScore, Exact: true}, nil
	}

	q := []rune(norm)
	best := Match{}
	bestLCS := -1
	for _, c := range m.candidates {
		lcs := longestCommonSubstring(q, c.name)
		score := 2 * maxScore * lcs / (len(q) + len(c.name))
		if score > best.Score ||
			(score == best.Score && lcs > bestLCS) ||
			(score == best.Score && lcs == bestLCS && best.Key != "" && c.key < best.Key) {
			best = Match{Key: c.key, Score: score}
			bestLCS = lcs
		}
	}

	if best.Key == "" || best.Score < m.threshold {
		return Match{}, errs.Wrapf(errs.ErrItemNotFound, "no menu item close to %q", query)
	}
	return best, nil
}

// Normalize lowercases, drops punctuation and collapses whitespace.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '_', r == '\u200c':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func longestCommonSubstring(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	longest := 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > longest {
					longest = curr[j]
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return longest
}

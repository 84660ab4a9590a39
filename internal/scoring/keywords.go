package scoring

import (
	"strconv"
	"strings"
	"unicode"
)

// matchKeywords finds weighted keywords in a commit subject, in subject order.
//
// The first word matches the longest keyword it starts with, so "fixes" and
// "feat(api)" count as "fix" and "feat". Later words must equal a keyword.
// Each keyword counts at most once.
func matchKeywords(subject string, important, trivial map[string]int) []KeywordHit {
	words := strings.FieldsFunc(strings.ToLower(subject), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return nil
	}

	weight := func(k string) (int, bool) {
		if w, ok := important[k]; ok {
			return w, true
		}
		w, ok := trivial[k]
		return w, ok
	}

	seen := make(map[string]bool)
	var hits []KeywordHit

	if k := longestPrefixKeyword(words[0], important, trivial); k != "" {
		w, _ := weight(k)
		hits = append(hits, KeywordHit{Keyword: k, Weight: w})
		seen[k] = true
	}

	for _, word := range words[1:] {
		if seen[word] {
			continue
		}
		if w, ok := weight(word); ok {
			hits = append(hits, KeywordHit{Keyword: word, Weight: w})
			seen[word] = true
		}
	}

	return hits
}

func longestPrefixKeyword(word string, tables ...map[string]int) string {
	best := ""
	for _, table := range tables {
		for k := range table {
			if len(k) > len(best) && strings.HasPrefix(word, k) {
				best = k
			}
		}
	}
	return best
}

// signed formats a weight with an explicit sign: "+2", "-1", "+0".
func signed(n int) string {
	if n < 0 {
		return strconv.Itoa(n)
	}
	return "+" + strconv.Itoa(n)
}

func clampScore(score, lo, hi int) int {
	if score < lo {
		return lo
	}
	if score > hi {
		return hi
	}
	return score
}

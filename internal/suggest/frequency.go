package suggest

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const minWordLength = 3

type wordCount struct {
	word  string
	count int
}

// TopWords returns the n most frequent lower-cased words longer than two
// characters across texts. Ties keep the order in which words first appeared.
func TopWords(texts []string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	index := make(map[string]int)
	counts := make([]wordCount, 0)
	for _, text := range texts {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			if utf8.RuneCountInString(word) < minWordLength {
				continue
			}
			if i, ok := index[word]; ok {
				counts[i].count++
				continue
			}
			index[word] = len(counts)
			counts = append(counts, wordCount{word: word, count: 1})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		out = append(out, c.word)
	}
	return out
}

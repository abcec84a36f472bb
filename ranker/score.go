package ranker

import (
	"strings"
	"unicode"

	"github.com/c360studio/steering/document"
)

// termFrequencies tokenizes text into lowercase terms and counts them.
func termFrequencies(text string) map[string]int {
	freqs := make(map[string]int)
	for _, term := range tokenize(text) {
		freqs[term]++
	}
	return freqs
}

// tokenize splits text on non-letter, non-digit runes and lowercases
// the result. Single-rune terms are dropped as noise.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 1 {
			terms = append(terms, f)
		}
	}
	return terms
}

// overlapScore computes term-frequency overlap between the description
// and a document: for each shared term, the smaller of the two counts,
// normalized by document length so long documents do not dominate.
func overlapScore(descTerms map[string]int, doc *document.Document) float64 {
	if len(descTerms) == 0 {
		return 0
	}

	docTerms := termFrequencies(doc.Title + " " + doc.Body)
	if len(docTerms) == 0 {
		return 0
	}

	docTotal := 0
	for _, n := range docTerms {
		docTotal += n
	}

	overlap := 0
	for term, n := range descTerms {
		if m, ok := docTerms[term]; ok {
			if m < n {
				overlap += m
			} else {
				overlap += n
			}
		}
	}

	return float64(overlap) / float64(docTotal)
}

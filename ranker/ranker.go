// Package ranker orders activated steering documents by relevance to a
// task description and fits them into a content budget. Always-mode
// documents are cross-cutting standards: they are never dropped, and
// other documents are truncated or dropped before an always document
// loses content.
package ranker

import (
	"sort"

	"github.com/c360studio/steering/activation"
	"github.com/c360studio/steering/document"
)

// RankedDocument is a document selected for the final context, possibly
// with its content truncated to fit the budget.
type RankedDocument struct {
	// Doc is the underlying document. Its Body is the full content;
	// Content below is what fits the budget.
	Doc *document.Document

	// Content is the budgeted (possibly truncated) document text.
	Content string

	// Score is the relevance score against the task description.
	Score float64

	// Truncated is true if Content is shorter than the full body.
	Truncated bool
}

// Rank orders the activated documents by relevance to the description
// and fits them into a character budget.
//
// Policy: score each document by term-frequency overlap with the
// description; sort descending by score, ties broken by activation
// (registry) order; accumulate into the budget, truncating the last
// included document. Always-mode documents are allocated their content
// first and are never dropped; file-match and manual documents are
// truncated or dropped before an always document loses content.
func Rank(activated activation.Result, description string, budget int) []RankedDocument {
	if budget < 0 {
		budget = 0
	}

	descTerms := termFrequencies(description)

	ranked := make([]RankedDocument, len(activated.Documents))
	order := make([]int, len(activated.Documents))
	for i, doc := range activated.Documents {
		ranked[i] = RankedDocument{
			Doc:   doc,
			Score: overlapScore(descTerms, doc),
		}
		order[i] = i
	}

	// Score descending, activation order breaks ties.
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := ranked[order[a]], ranked[order[b]]
		if ra.Score != rb.Score {
			return ra.Score > rb.Score
		}
		return order[a] < order[b]
	})

	// First pass: reserve content for always documents in rank order.
	remaining := budget
	include := make(map[int]bool, len(order))
	granted := make(map[int]int, len(order))

	for _, idx := range order {
		if ranked[idx].Doc.Mode != document.ModeAlways {
			continue
		}
		include[idx] = true
		size := ranked[idx].Doc.Size
		if size > remaining {
			size = remaining
		}
		granted[idx] = size
		remaining -= size
	}

	// Second pass: fill the rest, truncating the last document that
	// fits and dropping the remainder.
	for _, idx := range order {
		if ranked[idx].Doc.Mode == document.ModeAlways {
			continue
		}
		if remaining <= 0 {
			break
		}
		include[idx] = true
		size := ranked[idx].Doc.Size
		if size > remaining {
			size = remaining
		}
		granted[idx] = size
		remaining -= size
	}

	result := make([]RankedDocument, 0, len(include))
	for _, idx := range order {
		if !include[idx] {
			continue
		}
		rd := ranked[idx]
		size := granted[idx]
		rd.Content = rd.Doc.Body[:size]
		rd.Truncated = size < rd.Doc.Size
		result = append(result, rd)
	}

	return result
}

// TotalSize returns the budgeted content size of a ranked set.
func TotalSize(ranked []RankedDocument) int {
	total := 0
	for _, rd := range ranked {
		total += len(rd.Content)
	}
	return total
}

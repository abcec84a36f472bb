package ranker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/steering/activation"
	"github.com/c360studio/steering/document"
)

func doc(id string, mode document.Mode, body string) *document.Document {
	return &document.Document{
		ID:   id,
		Mode: mode,
		Body: body,
		Size: len(body),
	}
}

func activated(docs ...*document.Document) activation.Result {
	return activation.Result{Documents: docs}
}

func rankedIDs(ranked []RankedDocument) []string {
	out := make([]string, len(ranked))
	for i, rd := range ranked {
		out[i] = rd.Doc.ID
	}
	return out
}

func TestRank_ScoresByDescriptionOverlap(t *testing.T) {
	docs := activated(
		doc("api.md", document.ModeFileMatch, "endpoint versioning requires headers"),
		doc("db.md", document.ModeFileMatch, "database migration rollback schema"),
	)

	ranked := Rank(docs, "write a database migration", 10000)
	require.Len(t, ranked, 2)

	assert.Equal(t, "db.md", ranked[0].Doc.ID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestRank_TiesBreakByActivationOrder(t *testing.T) {
	body := "identical content for everyone"
	docs := activated(
		doc("a.md", document.ModeFileMatch, body),
		doc("b.md", document.ModeFileMatch, body),
		doc("c.md", document.ModeFileMatch, body),
	)

	ranked := Rank(docs, "unrelated description", 10000)
	assert.Equal(t, []string{"a.md", "b.md", "c.md"}, rankedIDs(ranked))
}

func TestRank_NeverExceedsBudget(t *testing.T) {
	docs := activated(
		doc("a.md", document.ModeAlways, strings.Repeat("alpha ", 100)),
		doc("b.md", document.ModeFileMatch, strings.Repeat("beta ", 100)),
		doc("c.md", document.ModeManual, strings.Repeat("gamma ", 100)),
	)

	for _, budget := range []int{0, 10, 100, 500, 1000, 100000} {
		ranked := Rank(docs, "beta", budget)
		assert.LessOrEqual(t, TotalSize(ranked), budget, "budget %d", budget)
	}
}

func TestRank_ShrinkingBudgetNeverIncreasesCount(t *testing.T) {
	docs := activated(
		doc("a.md", document.ModeAlways, strings.Repeat("x", 200)),
		doc("b.md", document.ModeFileMatch, strings.Repeat("y", 200)),
		doc("c.md", document.ModeManual, strings.Repeat("z", 200)),
	)

	prev := -1
	for _, budget := range []int{1000, 600, 450, 250, 150, 50, 0} {
		count := len(Rank(docs, "", budget))
		if prev >= 0 {
			assert.LessOrEqual(t, count, prev, "budget %d", budget)
		}
		prev = count
	}
}

func TestRank_TruncatesLastIncludedDocument(t *testing.T) {
	docs := activated(
		doc("a.md", document.ModeFileMatch, strings.Repeat("a", 100)),
		doc("b.md", document.ModeFileMatch, strings.Repeat("b", 100)),
	)

	ranked := Rank(docs, "", 150)
	require.Len(t, ranked, 2)

	assert.Equal(t, 100, len(ranked[0].Content))
	assert.False(t, ranked[0].Truncated)
	assert.Equal(t, 50, len(ranked[1].Content))
	assert.True(t, ranked[1].Truncated)
}

func TestRank_AlwaysDocumentsKeepContentBeforeOthers(t *testing.T) {
	// The always document scores zero against the description, the
	// file-match document scores high. Cross-cutting standards still
	// keep their full content; the relevant document is truncated.
	docs := activated(
		doc("standards.md", document.ModeAlways, strings.Repeat("unrelated ", 20)),
		doc("relevant.md", document.ModeFileMatch, strings.Repeat("database migration ", 20)),
	)
	alwaysSize := docs.Documents[0].Size

	ranked := Rank(docs, "database migration", alwaysSize+50)
	require.Len(t, ranked, 2)

	byID := map[string]RankedDocument{}
	for _, rd := range ranked {
		byID[rd.Doc.ID] = rd
	}

	assert.False(t, byID["standards.md"].Truncated)
	assert.Equal(t, alwaysSize, len(byID["standards.md"].Content))
	assert.True(t, byID["relevant.md"].Truncated)
	assert.Equal(t, 50, len(byID["relevant.md"].Content))
}

func TestRank_AlwaysDocumentNeverDropped(t *testing.T) {
	docs := activated(
		doc("a.md", document.ModeAlways, strings.Repeat("a", 100)),
		doc("b.md", document.ModeAlways, strings.Repeat("b", 100)),
		doc("c.md", document.ModeFileMatch, strings.Repeat("c", 100)),
	)

	// Budget below the always documents' combined size: both stay,
	// truncated; the file-match document is dropped.
	ranked := Rank(docs, "", 120)
	assert.ElementsMatch(t, []string{"a.md", "b.md"}, rankedIDs(ranked))
	assert.LessOrEqual(t, TotalSize(ranked), 120)
}

func TestRank_OutputOrderIsScoreOrder(t *testing.T) {
	docs := activated(
		doc("a.md", document.ModeAlways, "nothing in common"),
		doc("b.md", document.ModeFileMatch, "database database database"),
	)

	ranked := Rank(docs, "database", 10000)
	assert.Equal(t, []string{"b.md", "a.md"}, rankedIDs(ranked))
}

func TestRank_Idempotent(t *testing.T) {
	docs := activated(
		doc("a.md", document.ModeAlways, "alpha beta gamma"),
		doc("b.md", document.ModeFileMatch, "beta gamma delta"),
		doc("c.md", document.ModeManual, "gamma delta epsilon"),
	)

	first := Rank(docs, "beta gamma", 30)
	second := Rank(docs, "beta gamma", 30)
	assert.Equal(t, first, second)
}

func TestRank_EmptyActivation(t *testing.T) {
	ranked := Rank(activation.Result{}, "anything", 1000)
	assert.Empty(t, ranked)
}

package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/steering/document"
	"github.com/c360studio/steering/registry"
)

func snapshot(docs ...*document.Document) *registry.Snapshot {
	return registry.NewSnapshot(docs)
}

func TestResolve_AlwaysIncludedRegardlessOfContext(t *testing.T) {
	snap := snapshot(
		&document.Document{ID: "general.md", Mode: document.ModeAlways},
	)

	contexts := []TaskContext{
		{},
		{ActiveFile: "main.go"},
		{Tags: []string{"compliance"}},
		{ActiveFile: "Foo.tsx", Tags: []string{"a", "b"}, Description: "anything"},
	}

	for _, tc := range contexts {
		assert.Equal(t, []string{"general.md"}, Resolve(snap, tc).IDs())
	}
}

func TestResolve_FileMatch(t *testing.T) {
	snap := snapshot(
		&document.Document{ID: "react.md", Mode: document.ModeFileMatch, Pattern: "*.tsx"},
	)

	tests := []struct {
		name string
		file string
		want bool
	}{
		{"matching extension", "Foo.tsx", true},
		{"non-matching extension", "Foo.ts", false},
		{"base name match in subdirectory", "src/components/Foo.tsx", true},
		{"no active file", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(snap, TaskContext{ActiveFile: tt.file})
			if tt.want {
				assert.Equal(t, []string{"react.md"}, got.IDs())
			} else {
				assert.Empty(t, got.IDs())
			}
		})
	}
}

func TestResolve_Manual(t *testing.T) {
	snap := snapshot(
		&document.Document{ID: "legacy.md", Mode: document.ModeManual, Tag: "legacy-system-integration"},
	)

	assert.Equal(t, []string{"legacy.md"},
		Resolve(snap, TaskContext{Tags: []string{"legacy-system-integration"}}).IDs())

	assert.Empty(t, Resolve(snap, TaskContext{Tags: []string{"other"}}).IDs())
	assert.Empty(t, Resolve(snap, TaskContext{}).IDs())
}

func TestResolve_EmptyContextYieldsAlwaysOnly(t *testing.T) {
	snap := snapshot(
		&document.Document{ID: "a-always.md", Mode: document.ModeAlways},
		&document.Document{ID: "b-files.md", Mode: document.ModeFileMatch, Pattern: "**/*.go"},
		&document.Document{ID: "c-manual.md", Mode: document.ModeManual, Tag: "x"},
	)

	assert.Equal(t, []string{"a-always.md"}, Resolve(snap, TaskContext{}).IDs())
}

func TestResolve_OrderFollowsRegistryNotMatchStrength(t *testing.T) {
	snap := snapshot(
		&document.Document{ID: "z-exact.md", Mode: document.ModeFileMatch, Pattern: "cmd/main.go"},
		&document.Document{ID: "a-broad.md", Mode: document.ModeFileMatch, Pattern: "**/*.go"},
	)

	got := Resolve(snap, TaskContext{ActiveFile: "cmd/main.go"})
	assert.Equal(t, []string{"a-broad.md", "z-exact.md"}, got.IDs())
}

func TestResolve_Idempotent(t *testing.T) {
	snap := snapshot(
		&document.Document{ID: "a.md", Mode: document.ModeAlways},
		&document.Document{ID: "b.md", Mode: document.ModeFileMatch, Pattern: "*.sql"},
		&document.Document{ID: "c.md", Mode: document.ModeManual, Tag: "compliance"},
	)
	tc := TaskContext{ActiveFile: "schema.sql", Tags: []string{"compliance"}}

	first := Resolve(snap, tc)
	second := Resolve(snap, tc)
	assert.Equal(t, first.IDs(), second.IDs())
}

// End-to-end scenario: D1 (always), D2 (file-match *.sql), D3 (manual
// tag compliance).
func TestResolve_EndToEnd(t *testing.T) {
	snap := snapshot(
		&document.Document{ID: "d1.md", Mode: document.ModeAlways},
		&document.Document{ID: "d2.md", Mode: document.ModeFileMatch, Pattern: "*.sql"},
		&document.Document{ID: "d3.md", Mode: document.ModeManual, Tag: "compliance"},
	)

	got := Resolve(snap, TaskContext{ActiveFile: "schema.sql"})
	assert.Equal(t, []string{"d1.md", "d2.md"}, got.IDs())

	got = Resolve(snap, TaskContext{ActiveFile: "app.tsx", Tags: []string{"compliance"}})
	assert.Equal(t, []string{"d1.md", "d3.md"}, got.IDs())
}

func TestMatchesFile(t *testing.T) {
	tests := []struct {
		pattern string
		file    string
		want    bool
	}{
		{"*.tsx", "Foo.tsx", true},
		{"*.tsx", "Foo.ts", false},
		{"*.sql", "migrations/schema.sql", true},
		{"src/*.go", "src/main.go", true},
		{"src/*.go", "src/sub/main.go", false},
		{"src/**/*.go", "src/sub/deep/main.go", true},
		{"**/*.go", "main.go", true},
		{"docs/**", "docs/guide/intro.md", true},
		{"docs/**", "src/main.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" vs "+tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesFile(tt.pattern, tt.file))
		})
	}
}

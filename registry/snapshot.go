package registry

import (
	"sort"
	"time"

	"github.com/c360studio/steering/document"
)

// Snapshot is an immutable view of the loaded document set. Snapshots
// are shared freely across concurrent resolutions; a reload swaps in a
// whole new snapshot so readers never observe a partial update.
type Snapshot struct {
	docs     []*document.Document
	byID     map[string]*document.Document
	loadedAt time.Time
}

// NewSnapshot builds a snapshot from documents supplied by the caller,
// sorted into registry order (lexicographic by ID). Most callers get
// snapshots from Registry.Load instead; this is for embedding the
// resolver over documents that come from elsewhere.
func NewSnapshot(docs []*document.Document) *Snapshot {
	sorted := make([]*document.Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return newSnapshot(sorted)
}

func newSnapshot(docs []*document.Document) *Snapshot {
	byID := make(map[string]*document.Document, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	return &Snapshot{
		docs:     docs,
		byID:     byID,
		loadedAt: time.Now(),
	}
}

// All returns the documents in deterministic order, lexicographic by ID.
// Callers must not mutate the returned slice or its documents.
func (s *Snapshot) All() []*document.Document {
	if s == nil {
		return nil
	}
	return s.docs
}

// Get returns a document by ID.
func (s *Snapshot) Get(id string) (*document.Document, bool) {
	if s == nil {
		return nil, false
	}
	d, ok := s.byID[id]
	return d, ok
}

// Len returns the number of documents in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.docs)
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

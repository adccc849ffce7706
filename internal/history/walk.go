// Package history reconstructs commit ancestry from parent links.
package history

import (
	"fmt"

	"github.com/grit-scm/grit/internal/objects"
)

// Edge is one parent link in the commit graph, directed child -> parent.
type Edge struct {
	Child  string
	Parent string
}

// Walker traverses the parent-pointer graph reachable from a starting
// commit id. It holds no state between walks; the visited set is scoped to
// a single Walk call, so concurrent independent walks never interfere.
type Walker struct {
	store *objects.ObjectStore
}

func NewWalker(store *objects.ObjectStore) *Walker {
	return &Walker{store: store}
}

// Walk returns the deduplicated edge sequence reachable from startHash.
// Each commit is expanded at most once, which bounds the walk even over
// convergent histories; an edge is still emitted for every declared parent,
// so a merge commit contributes one edge per parent.
//
// Expansion order is deterministic: a worklist stack with parents pushed in
// reverse declaration order, so the first-declared parent is expanded first.
//
// A parent id missing from the store fails the walk with the store's
// not-found error; missing ancestors are never silently skipped.
func (w *Walker) Walk(startHash string) ([]Edge, error) {
	visited := make(map[string]bool)
	frontier := []string{startHash}
	var edges []Edge

	for len(frontier) > 0 {
		hash := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if visited[hash] {
			continue
		}
		visited[hash] = true

		commit, err := w.store.ReadCommit(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve commit %s: %w", hash, err)
		}

		parents := commit.Parents()
		for _, parent := range parents {
			edges = append(edges, Edge{Child: hash, Parent: parent})
		}
		for i := len(parents) - 1; i >= 0; i-- {
			if !visited[parents[i]] {
				frontier = append(frontier, parents[i])
			}
		}
	}

	return edges, nil
}

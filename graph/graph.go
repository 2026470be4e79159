// Package graph assembles decoded DataSets into the object graph SMPTE
// 377M's strong-reference fields describe, and walks that graph the way
// a structural validator or dump tool needs to: once per instance,
// reporting any reference that does not resolve.
package graph

import (
	"github.com/google/uuid"
	"github.com/smartjog/go-mxf/dataset"
)

// Graph indexes every decoded DataSet by its InstanceUID so that strong
// references found on one set can be resolved to another.
type Graph struct {
	objects map[uuid.UUID]*dataset.DataSet
	order   []uuid.UUID
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{objects: make(map[uuid.UUID]*dataset.DataSet)}
}

// Add indexes ds under its own InstanceUID, dark or not. Sets without
// an InstanceUID are not addressable and are silently skipped; callers
// that need to report on them do so outside the graph.
func (g *Graph) Add(ds *dataset.DataSet) {
	id, ok := ds.InstanceUID()
	if !ok {
		return
	}

	if _, exists := g.objects[id]; !exists {
		g.order = append(g.order, id)
	}
	g.objects[id] = ds
}

// Lookup resolves an instance identifier to its DataSet.
func (g *Graph) Lookup(id uuid.UUID) (*dataset.DataSet, bool) {
	ds, ok := g.objects[id]
	return ds, ok
}

// Len reports how many addressable objects the graph holds.
func (g *Graph) Len() int {
	return len(g.objects)
}

// Node is one visited object in a Report, annotated with its nesting
// depth relative to the walk's root.
type Node struct {
	ID    uuid.UUID
	Set   *dataset.DataSet
	Depth int
}

// Report is the result of a Walk: every object reached from the root,
// visited exactly once, plus every strong reference that did not
// resolve to an indexed object.
type Report struct {
	Visited []Node
	Broken  []BrokenReference
}

// BrokenReference names a strong reference found on Parent that did not
// resolve to any object in the graph.
type BrokenReference struct {
	Parent uuid.UUID
	Target uuid.UUID
}

// Walk traverses the graph depth-first from root, following strong
// references, visiting each reachable object exactly once and
// collecting any reference that fails to resolve.
func (g *Graph) Walk(root uuid.UUID) Report {
	var rep Report
	visited := make(map[uuid.UUID]bool)

	var visit func(id uuid.UUID, depth int)
	visit = func(id uuid.UUID, depth int) {
		if visited[id] {
			return
		}
		visited[id] = true

		ds, ok := g.objects[id]
		if !ok {
			return
		}
		rep.Visited = append(rep.Visited, Node{ID: id, Set: ds, Depth: depth})

		for _, ref := range ds.GetStrongReferences() {
			if _, ok := g.objects[ref]; !ok {
				rep.Broken = append(rep.Broken, BrokenReference{Parent: id, Target: ref})
				continue
			}
			visit(ref, depth+1)
		}
	}

	visit(root, 0)

	return rep
}

// BrokenReferences reports every strong reference reachable from root
// that does not resolve to an indexed object: the Broken list of
// Walk(root).
func (g *Graph) BrokenReferences(root uuid.UUID) []BrokenReference {
	return g.Walk(root).Broken
}

// Orphans returns every addressable object never reached by Walk(root),
// useful for flagging Dark or unreferenced sets a file carries but never
// links from its Preface.
func (g *Graph) Orphans(root uuid.UUID) []uuid.UUID {
	rep := g.Walk(root)
	reached := make(map[uuid.UUID]bool, len(rep.Visited))
	for _, n := range rep.Visited {
		reached[n.ID] = true
	}

	var orphans []uuid.UUID
	for _, id := range g.order {
		if !reached[id] {
			orphans = append(orphans, id)
		}
	}

	return orphans
}

// Package group converts a set of matched record pairs into equivalence
// classes, grounded on
// recordgroups.py's adjacency_list/components/
// singles_and_groups trio.
package group

import "github.com/ehdc-llpg/linkage/internal/record"

// AdjacencyGraph is an undirected graph over records, built from a match
// edge list. A record absent from the list has no matches at all.
type AdjacencyGraph struct {
	neighbours map[string][]record.Record
	byKey map[string]record.Record
	order []string // first-seen node key, for deterministic BFS start order
}

func newAdjacencyGraph() *AdjacencyGraph {
	return &AdjacencyGraph{
		neighbours: make(map[string][]record.Record),
		byKey: make(map[string]record.Record),
	}
}

func (a *AdjacencyGraph) addNode(r record.Record) {
	key := r.Key()
	if _, ok := a.byKey[key]; !ok {
		a.byKey[key] = r
		a.order = append(a.order, key)
	}
}

func (a *AdjacencyGraph) addEdge(r1, r2 record.Record) {
	a.addNode(r1)
	a.addNode(r2)
	a.neighbours[r1.Key()] = append(a.neighbours[r1.Key()], r2)
	a.neighbours[r2.Key()] = append(a.neighbours[r2.Key()], r1)
}

func (a *AdjacencyGraph) has(r record.Record) bool {
	_, ok := a.byKey[r.Key()]
	return ok
}

// AdjacencyList builds the match graph from an edge list of matching
// pairs. Records never appearing as either side of a pair are absent
// from the resulting structure, matching the Python source's
// "nodes not listed in the edge list are absent" contract.
func AdjacencyList(matches []record.Pair) *AdjacencyGraph {
	adj := newAdjacencyGraph()
	for _, pair := range matches {
		adj.addEdge(pair.A, pair.B)
	}
	return adj
}

// Components runs breadth-first search from every unvisited node (in
// first-seen order) and returns each BFS frontier as a group, each group
// sorted by the record's natural order.
func Components(adj *AdjacencyGraph) [][]record.Record {
	var groups [][]record.Record
	visited := make(map[string]bool, len(adj.order))

	for _, start := range adj.order {
		if visited[start] {
			continue
		}
		var newGroup []record.Record
		queue := []string{start}
		for len(queue) > 0 {
			key := queue[0]
			queue = queue[1:]
			if visited[key] {
				continue
			}
			visited[key] = true
			newGroup = append(newGroup, adj.byKey[key])
			for _, n := range adj.neighbours[key] {
				if !visited[n.Key()] {
					queue = append(queue, n.Key())
				}
			}
		}
		record.SortRecords(newGroup)
		groups = append(groups, newGroup)
	}
	return groups
}

// SinglesAndGroups partitions allRecords into singles (records that
// matched nothing) and groups (connected components of the match
// graph), per the singles_and_groups contract. Groups
// are emitted in discovery order; each group is sorted by natural
// record order; output is stable given a stable allRecords iteration
// order.
func SinglesAndGroups(matches []record.Pair, allRecords []record.Record) (singles []record.Record, groups [][]record.Record) {
	adj := AdjacencyList(matches)
	groups = Components(adj)
	for _, r := range allRecords {
		if !adj.has(r) {
			singles = append(singles, r)
		}
	}
	return singles, groups
}

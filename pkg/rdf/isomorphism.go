package rdf

import (
	"sort"
)

// TriplesMatch reports whether two triple sets are equal up to blank-node
// relabeling, ignoring order and duplicates.
func TriplesMatch(expected, actual []*Triple) bool {
	return QuadsMatch(triplesAsQuads(expected), triplesAsQuads(actual))
}

// QuadsMatch reports whether two quad sets are equal up to blank-node
// relabeling, ignoring order and duplicates. Two sets match if there is a
// bijection between their blank nodes under which they are identical.
func QuadsMatch(expected, actual []*Quad) bool {
	e := dedupQuads(expected)
	a := dedupQuads(actual)
	if len(e) != len(a) {
		return false
	}

	expectedBlanks := collectBlankLabels(e)
	actualBlanks := collectBlankLabels(a)
	if len(expectedBlanks) != len(actualBlanks) {
		return false
	}

	actualSet := make(map[string]bool, len(a))
	for _, q := range a {
		actualSet[CanonicalQuad(q)] = true
	}

	if len(expectedBlanks) == 0 {
		for _, q := range e {
			if !actualSet[CanonicalQuad(q)] {
				return false
			}
		}
		return true
	}

	// Match high-degree blank nodes first to prune the search early.
	sortByDegree(expectedBlanks, e)
	sortByDegree(actualBlanks, a)

	mapping := make(map[string]string, len(expectedBlanks))
	used := make(map[string]bool, len(actualBlanks))
	return matchBlanks(e, actualSet, expectedBlanks, actualBlanks, mapping, used, 0)
}

func triplesAsQuads(triples []*Triple) []*Quad {
	quads := make([]*Quad, len(triples))
	for i, t := range triples {
		quads[i] = t.AsQuad()
	}
	return quads
}

func dedupQuads(quads []*Quad) []*Quad {
	seen := make(map[string]bool, len(quads))
	out := make([]*Quad, 0, len(quads))
	for _, q := range quads {
		key := CanonicalQuad(q)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
	}
	return out
}

func collectBlankLabels(quads []*Quad) []string {
	blanks := make(map[string]bool)
	for _, q := range quads {
		collectBlanksFromTerm(q.Subject, blanks)
		collectBlanksFromTerm(q.Object, blanks)
		if q.Graph != nil {
			collectBlanksFromTerm(q.Graph, blanks)
		}
	}

	labels := make([]string, 0, len(blanks))
	for label := range blanks {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func collectBlanksFromTerm(term Term, blanks map[string]bool) {
	switch t := term.(type) {
	case *BlankNode:
		blanks[t.ID] = true
	case *TripleTerm:
		collectBlanksFromTerm(t.Subject, blanks)
		collectBlanksFromTerm(t.Predicate, blanks)
		collectBlanksFromTerm(t.Object, blanks)
	}
}

func sortByDegree(blanks []string, quads []*Quad) {
	degrees := make(map[string]int, len(blanks))
	counts := make(map[string]bool)
	for _, q := range quads {
		for k := range counts {
			delete(counts, k)
		}
		collectBlanksFromTerm(q.Subject, counts)
		collectBlanksFromTerm(q.Object, counts)
		if q.Graph != nil {
			collectBlanksFromTerm(q.Graph, counts)
		}
		for label := range counts {
			degrees[label]++
		}
	}

	sort.SliceStable(blanks, func(i, j int) bool {
		if degrees[blanks[i]] != degrees[blanks[j]] {
			return degrees[blanks[i]] > degrees[blanks[j]]
		}
		return blanks[i] < blanks[j]
	})
}

// matchBlanks assigns actual labels to expected labels one at a time,
// pruning whenever a fully-mapped expected quad has no counterpart.
func matchBlanks(expected []*Quad, actualSet map[string]bool, expectedBlanks, actualBlanks []string, mapping map[string]string, used map[string]bool, idx int) bool {
	if idx == len(expectedBlanks) {
		for _, q := range expected {
			if !actualSet[CanonicalQuad(relabelQuad(q, mapping))] {
				return false
			}
		}
		return true
	}

	source := expectedBlanks[idx]
	for _, target := range actualBlanks {
		if used[target] {
			continue
		}
		mapping[source] = target
		used[target] = true

		if quadsConsistent(expected, actualSet, mapping) &&
			matchBlanks(expected, actualSet, expectedBlanks, actualBlanks, mapping, used, idx+1) {
			return true
		}

		delete(mapping, source)
		delete(used, target)
	}
	return false
}

func quadsConsistent(expected []*Quad, actualSet map[string]bool, mapping map[string]string) bool {
	for _, q := range expected {
		if !quadFullyMapped(q, mapping) {
			continue
		}
		if !actualSet[CanonicalQuad(relabelQuad(q, mapping))] {
			return false
		}
	}
	return true
}

func quadFullyMapped(q *Quad, mapping map[string]string) bool {
	blanks := make(map[string]bool)
	collectBlanksFromTerm(q.Subject, blanks)
	collectBlanksFromTerm(q.Object, blanks)
	if q.Graph != nil {
		collectBlanksFromTerm(q.Graph, blanks)
	}
	for label := range blanks {
		if _, ok := mapping[label]; !ok {
			return false
		}
	}
	return true
}

func relabelQuad(q *Quad, mapping map[string]string) *Quad {
	graph := q.Graph
	if graph != nil {
		graph = relabelTerm(graph, mapping)
	}
	return NewQuad(
		relabelTerm(q.Subject, mapping),
		relabelTerm(q.Predicate, mapping),
		relabelTerm(q.Object, mapping),
		graph,
	)
}

func relabelTerm(term Term, mapping map[string]string) Term {
	switch t := term.(type) {
	case *BlankNode:
		if target, ok := mapping[t.ID]; ok {
			return NewBlankNode(target)
		}
		return t
	case *TripleTerm:
		return NewTripleTerm(
			relabelTerm(t.Subject, mapping),
			relabelTerm(t.Predicate, mapping),
			relabelTerm(t.Object, mapping),
		)
	default:
		return term
	}
}

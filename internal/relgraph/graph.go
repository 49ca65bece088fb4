// Package relgraph builds and analyzes the undirected weighted graph of
// anonymized entities: typed co-occurrence relationships, communities,
// centrality, and the bridging pathways between otherwise-separate groups.
package relgraph

import "sort"

// Node is an anonymized entity in the relationship graph. AnonymizedValue is
// always a placeholder token, never an original value.
type Node struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	AnonymizedValue string  `json:"anonymized_value"`
	Confidence      float64 `json:"confidence"`
}

// Edge is an undirected relationship between two entities. NodeA and NodeB
// are stored in sorted order so lookup is direction-independent.
type Edge struct {
	NodeA            string   `json:"node_a"`
	NodeB            string   `json:"node_b"`
	RelationshipType string   `json:"relationship_type"`
	Strength         float64  `json:"strength"`
	Confidence       float64  `json:"confidence"`
	EvidenceRefs     []string `json:"evidence_refs,omitempty"`
	CoOccurrences    int      `json:"co_occurrences"`
}

// Graph is an undirected simple graph: one edge per unordered pair,
// re-adding merges rather than duplicating, and edges auto-create their
// endpoints.
type Graph struct {
	nodes map[string]*Node
	edges map[[2]string]*Edge
	adj   map[string]map[string]bool
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[[2]string]*Edge),
		adj:   make(map[string]map[string]bool),
	}
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// AddNode inserts or merges a node. On merge the higher confidence wins.
func (g *Graph) AddNode(node Node) {
	if existing, ok := g.nodes[node.ID]; ok {
		if node.Confidence > existing.Confidence {
			existing.Confidence = node.Confidence
		}
		return
	}
	copied := node
	g.nodes[node.ID] = &copied
	g.adj[node.ID] = make(map[string]bool)
}

// AddEdge inserts or merges an undirected edge. Missing endpoints are
// auto-created as untyped nodes. Merging accumulates co-occurrence count,
// keeps the stronger strength and confidence, and unions evidence refs.
func (g *Graph) AddEdge(edge Edge) {
	if edge.NodeA == edge.NodeB {
		return
	}
	for _, id := range []string{edge.NodeA, edge.NodeB} {
		if _, ok := g.nodes[id]; !ok {
			g.AddNode(Node{ID: id, AnonymizedValue: id})
		}
	}

	key := pairKey(edge.NodeA, edge.NodeB)
	if existing, ok := g.edges[key]; ok {
		existing.CoOccurrences += max(edge.CoOccurrences, 1)
		if edge.Strength > existing.Strength {
			existing.Strength = edge.Strength
		}
		if edge.Confidence > existing.Confidence {
			existing.Confidence = edge.Confidence
		}
		existing.EvidenceRefs = unionRefs(existing.EvidenceRefs, edge.EvidenceRefs)
		if existing.RelationshipType == "co_occurrence" && edge.RelationshipType != "" && edge.RelationshipType != "co_occurrence" {
			existing.RelationshipType = edge.RelationshipType
		}
		return
	}

	copied := edge
	copied.NodeA, copied.NodeB = key[0], key[1]
	if copied.CoOccurrences == 0 {
		copied.CoOccurrences = 1
	}
	if copied.RelationshipType == "" {
		copied.RelationshipType = "co_occurrence"
	}
	g.edges[key] = &copied
	g.adj[key[0]][key[1]] = true
	g.adj[key[1]][key[0]] = true
}

// GetEdge returns the edge between two nodes regardless of argument order.
func (g *Graph) GetEdge(a, b string) (*Edge, bool) {
	edge, ok := g.edges[pairKey(a, b)]
	return edge, ok
}

// GetNode returns a node by ID.
func (g *Graph) GetNode(id string) (*Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Degree returns the number of distinct neighbors of a node.
func (g *Graph) Degree(id string) int {
	return len(g.adj[id])
}

// Neighbors returns a node's neighbor IDs in sorted order.
func (g *Graph) Neighbors(id string) []string {
	out := make([]string, 0, len(g.adj[id]))
	for n := range g.adj[id] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Nodes returns all nodes sorted by ID.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns all edges sorted by endpoint pair.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NodeA != out[j].NodeA {
			return out[i].NodeA < out[j].NodeA
		}
		return out[i].NodeB < out[j].NodeB
	})
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

func unionRefs(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := a
	for _, r := range a {
		seen[r] = true
	}
	for _, r := range b {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

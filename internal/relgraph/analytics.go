package relgraph

import "sort"

// Community is a connected component of the graph with at least two
// members. Cohesion is the average strength of its internal edges.
type Community struct {
	Members  []string `json:"members"`
	Cohesion float64  `json:"cohesion"`
}

// CentralNode ranks an entity by how connected it is.
type CentralNode struct {
	NodeID string `json:"node_id"`
	Degree int    `json:"degree"`
}

// Bridge is a high-betweenness entity connecting otherwise-separate groups.
// TypeDiverse marks bridges whose neighborhoods span multiple entity types,
// which tend to carry the most legal significance.
type Bridge struct {
	NodeID      string  `json:"node_id"`
	Betweenness float64 `json:"betweenness"`
	TypeDiverse bool    `json:"type_diverse"`
}

// Result is the relationship lane's complete output.
type Result struct {
	Nodes       []Node        `json:"nodes"`
	Edges       []Edge        `json:"edges"`
	Communities []Community   `json:"communities"`
	Central     []CentralNode `json:"central_nodes"`
	Bridges     []Bridge      `json:"bridges"`
	Status      string        `json:"processing_status"`
}

// Communities returns connected components of size two or more, each with
// its cohesion score.
func (g *Graph) Communities() []Community {
	visited := make(map[string]bool)
	var communities []Community

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, start := range ids {
		if visited[start] {
			continue
		}
		var members []string
		stack := []string{start}
		visited[start] = true
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, id)
			for _, n := range g.Neighbors(id) {
				if !visited[n] {
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}
		if len(members) < 2 {
			continue
		}
		sort.Strings(members)
		communities = append(communities, Community{
			Members:  members,
			Cohesion: g.cohesion(members),
		})
	}

	sort.Slice(communities, func(i, j int) bool {
		return len(communities[i].Members) > len(communities[j].Members)
	})
	return communities
}

func (g *Graph) cohesion(members []string) float64 {
	inSet := make(map[string]bool, len(members))
	for _, m := range members {
		inSet[m] = true
	}
	total, count := 0.0, 0
	for _, edge := range g.edges {
		if inSet[edge.NodeA] && inSet[edge.NodeB] {
			total += edge.Strength
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// DegreeCentrality ranks all connected nodes by degree, descending.
func (g *Graph) DegreeCentrality() []CentralNode {
	var out []CentralNode
	for id := range g.nodes {
		if d := g.Degree(id); d > 0 {
			out = append(out, CentralNode{NodeID: id, Degree: d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Degree != out[j].Degree {
			return out[i].Degree > out[j].Degree
		}
		return out[i].NodeID < out[j].NodeID
	})
	return out
}

// Betweenness computes betweenness centrality for every node via Brandes'
// accumulation over BFS shortest paths. All-pairs traversal is fine at the
// scale of a single case's entity count.
func (g *Graph) Betweenness() map[string]float64 {
	centrality := make(map[string]float64, len(g.nodes))
	for id := range g.nodes {
		centrality[id] = 0
	}

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, source := range ids {
		var stack []string
		preds := make(map[string][]string)
		sigma := map[string]float64{source: 1}
		dist := map[string]int{source: 0}
		queue := []string{source}

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range g.Neighbors(v) {
				if _, seen := dist[w]; !seen {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		delta := make(map[string]float64)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != source {
				centrality[w] += delta[w]
			}
		}
	}

	// Undirected graph: every pair was counted twice.
	for id := range centrality {
		centrality[id] /= 2
	}
	return centrality
}

// Bridges returns nodes with non-zero betweenness, flagging those whose
// neighborhoods span more than one entity type.
func (g *Graph) Bridges() []Bridge {
	var bridges []Bridge
	for id, score := range g.Betweenness() {
		if score <= 0 {
			continue
		}
		types := make(map[string]bool)
		for _, n := range g.Neighbors(id) {
			if node, ok := g.nodes[n]; ok && node.Type != "" {
				types[node.Type] = true
			}
		}
		bridges = append(bridges, Bridge{
			NodeID:      id,
			Betweenness: score,
			TypeDiverse: len(types) > 1,
		})
	}
	sort.Slice(bridges, func(i, j int) bool {
		if bridges[i].Betweenness != bridges[j].Betweenness {
			return bridges[i].Betweenness > bridges[j].Betweenness
		}
		return bridges[i].NodeID < bridges[j].NodeID
	})
	return bridges
}

// Analyze bundles the full analytics pass into a lane result.
func (g *Graph) Analyze() *Result {
	return &Result{
		Nodes:       g.Nodes(),
		Edges:       g.Edges(),
		Communities: g.Communities(),
		Central:     g.DegreeCentrality(),
		Bridges:     g.Bridges(),
		Status:      "ok",
	}
}

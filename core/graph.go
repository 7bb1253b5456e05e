// File: graph.go
// Role: Vertex/edge lifecycle for the arena Graph — InternVertex, AddEdge,
//       lookups, and the accessors the loader/topo/timing packages build on.
// Determinism: insertion order is preserved by appending to vertices/edges;
//              every order-dependent iteration walks those slices, never a map.
package core

import "slices"

// InternVertex returns the id of the vertex named name, creating it (with
// the given Role/Tag/Delay) on first reference. A vertex referenced again
// with a different Role is only promoted from RoleInternal to a more
// specific role — the loader may see a signal's declaration (RolePrimaryInput)
// before or after its use as a gate operand (RoleInternal); the first
// non-internal role wins.
//
// Complexity: O(1) amortized.
func (g *Graph) InternVertex(name string, role Role, tag GateTag, delay float64) (int, error) {
	if name == "" {
		return -1, ErrEmptyName
	}

	if id, ok := g.nameToID[name]; ok {
		v := &g.vertices[id]
		if v.Role == RoleInternal && role != RoleInternal {
			if err := g.SetRole(id, role); err != nil {
				return -1, err
			}
		}
		if v.Tag == TagUNKNOWN && tag != TagUNKNOWN {
			v.Tag = tag
			v.Delay = delay
		}
		return id, nil
	}

	id := len(g.vertices)
	g.vertices = append(g.vertices, Vertex{
		ID:           id,
		Name:         name,
		Role:         role,
		Tag:          tag,
		Delay:        delay,
		CriticalPred: -1,
	})
	g.outEdges = append(g.outEdges, nil)
	g.inEdges = append(g.inEdges, nil)
	g.nameToID[name] = id

	if role.IsStartpoint() {
		g.Startpoints = append(g.Startpoints, id)
	}
	if role.IsEndpoint() {
		g.Endpoints = append(g.Endpoints, id)
	}

	return id, nil
}

// RetagVertex overwrites an already-interned vertex's Tag and Delay. The
// loader uses this when a vertex is first seen as a bare operand reference
// (tagged UNKNOWN, e.g. a primary input declared after its first use) and
// only later classified by its own assignment or instantiation.
func (g *Graph) RetagVertex(id int, tag GateTag, delay float64) error {
	if id < 0 || id >= len(g.vertices) {
		return ErrVertexNotFound
	}
	g.vertices[id].Tag = tag
	g.vertices[id].Delay = delay

	return nil
}

// SetRole overwrites an already-interned vertex's Role, maintaining the
// Startpoints/Endpoints index slices: an id leaves the index of its old
// role and joins the index of its new one. Used by the loader to give a
// DFF's Q/D split vertices their roles, and by InternVertex when a primary
// port declaration arrives after first reference.
func (g *Graph) SetRole(id int, role Role) error {
	if id < 0 || id >= len(g.vertices) {
		return ErrVertexNotFound
	}
	v := &g.vertices[id]
	if v.Role == role {
		return nil
	}
	isID := func(x int) bool { return x == id }
	if v.Role.IsStartpoint() {
		g.Startpoints = slices.DeleteFunc(g.Startpoints, isID)
	}
	if v.Role.IsEndpoint() {
		g.Endpoints = slices.DeleteFunc(g.Endpoints, isID)
	}
	v.Role = role
	if role.IsStartpoint() {
		g.Startpoints = append(g.Startpoints, id)
	}
	if role.IsEndpoint() {
		g.Endpoints = append(g.Endpoints, id)
	}

	return nil
}

// AddEdge records that the value produced at fromID is a direct fan-in of
// toID. A repeated call with the same (fromID,toID) pair returns the
// existing edge id instead of creating a parallel edge.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(fromID, toID int) (int, error) {
	if fromID < 0 || fromID >= len(g.vertices) || toID < 0 || toID >= len(g.vertices) {
		return -1, ErrVertexNotFound
	}

	key := [2]int{fromID, toID}
	if id, ok := g.pairToEdge[key]; ok {
		return id, nil
	}

	id := len(g.edges)
	g.edges = append(g.edges, Edge{ID: id, From: fromID, To: toID})
	g.pairToEdge[key] = id
	g.outEdges[fromID] = append(g.outEdges[fromID], id)
	g.inEdges[toID] = append(g.inEdges[toID], id)

	return id, nil
}

// VertexByName returns the vertex id interned under name, if any.
func (g *Graph) VertexByName(name string) (int, bool) {
	id, ok := g.nameToID[name]
	return id, ok
}

// Vertex returns a copy of the vertex record at id.
func (g *Graph) Vertex(id int) Vertex {
	return g.vertices[id]
}

// VertexPtr returns a mutable pointer to the vertex record at id, for the
// timing passes to populate AT/RT/Slack/CriticalPred in place.
func (g *Graph) VertexPtr(id int) *Vertex {
	return &g.vertices[id]
}

// NumVertices returns the number of interned vertices.
func (g *Graph) NumVertices() int {
	return len(g.vertices)
}

// NumEdges returns the number of interned edges.
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// Edge returns a copy of the edge record at id.
func (g *Graph) Edge(id int) Edge {
	return g.edges[id]
}

// OutEdges returns, in insertion order, the edge ids leaving vertex v.
// The returned slice is shared with the graph and must be treated as
// read-only by callers.
func (g *Graph) OutEdges(v int) []int {
	return g.outEdges[v]
}

// InEdges returns, in insertion order, the edge ids entering vertex v.
// The returned slice is shared with the graph and must be treated as
// read-only by callers.
func (g *Graph) InEdges(v int) []int {
	return g.inEdges[v]
}

// InDegree returns len(InEdges(v)) without allocating.
func (g *Graph) InDegree(v int) int {
	return len(g.inEdges[v])
}

// OutDegree returns len(OutEdges(v)) without allocating.
func (g *Graph) OutDegree(v int) int {
	return len(g.outEdges[v])
}

// Names returns the canonical names of every interned vertex, indexed by
// vertex id (Names()[id] == Vertex(id).Name).
func (g *Graph) Names() []string {
	names := make([]string, len(g.vertices))
	for i := range g.vertices {
		names[i] = g.vertices[i].Name
	}

	return names
}

package model

import "strings"

// NodeType distinguishes the seed topic node from person nodes
type NodeType string

const (
	NodeTypeTopic  NodeType = "Topic"
	NodeTypePerson NodeType = "Person"
)

// Node is a single node of the connection graph. Identity is the exact
// name after trimming whitespace.
type Node struct {
	Name   string   `json:"name"`
	Type   NodeType `json:"type"`
	Gender Gender   `json:"gender,omitempty"`
}

// Edge is a directed edge between two node names
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is a directed graph of a topic and the persons connected to it.
// Node genders are first-write-wins and edges are presence-only, adding
// an existing edge a second time is a no-op. Insertion order of nodes
// and edges is preserved so that exports are deterministic.
type Graph struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     map[Edge]struct{}
	edgeOrder []Edge
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		nodes: map[string]*Node{},
		edges: map[Edge]struct{}{},
	}
}

// AddTopic adds the topic node. Adding the same topic twice is a no-op.
// An empty name is never stored.
func (g *Graph) AddTopic(name string) {
	g.addNode(name, NodeTypeTopic, "")
}

// AddPerson adds a person node with its gender. The first observed gender
// for a name is permanent, later calls with a different gender leave the
// node untouched.
func (g *Graph) AddPerson(name string, gender Gender) {
	g.addNode(name, NodeTypePerson, gender)
}

func (g *Graph) addNode(name string, nodeType NodeType, gender Gender) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if _, ok := g.nodes[name]; ok {
		return
	}
	g.nodes[name] = &Node{Name: name, Type: nodeType, Gender: gender}
	g.nodeOrder = append(g.nodeOrder, name)
}

// AddEdge inserts the directed edge source -> target. Re-adding an
// existing pair is a no-op. Edges referencing unknown or empty node names
// are ignored so the graph never contains dangling edges.
func (g *Graph) AddEdge(source string, target string) {
	source = strings.TrimSpace(source)
	target = strings.TrimSpace(target)
	if _, ok := g.nodes[source]; !ok {
		return
	}
	if _, ok := g.nodes[target]; !ok {
		return
	}
	edge := Edge{Source: source, Target: target}
	if _, ok := g.edges[edge]; ok {
		return
	}
	g.edges[edge] = struct{}{}
	g.edgeOrder = append(g.edgeOrder, edge)
}

// Node returns the node with the given name, or nil if it does not exist
func (g *Graph) Node(name string) *Node {
	return g.nodes[strings.TrimSpace(name)]
}

// HasEdge reports whether the directed edge source -> target exists
func (g *Graph) HasEdge(source string, target string) bool {
	_, ok := g.edges[Edge{Source: source, Target: target}]
	return ok
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodeOrder))
	for _, name := range g.nodeOrder {
		nodes = append(nodes, g.nodes[name])
	}
	return nodes
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edgeOrder))
	copy(edges, g.edgeOrder)
	return edges
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct directed edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// OutgoingEdges returns all edges leaving the given node, in insertion order
func (g *Graph) OutgoingEdges(source string) []Edge {
	var edges []Edge
	for _, edge := range g.edgeOrder {
		if edge.Source == source {
			edges = append(edges, edge)
		}
	}
	return edges
}

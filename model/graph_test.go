package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAddNodes(t *testing.T) {
	t.Run("Add topic node", func(t *testing.T) {
		g := NewGraph()
		g.AddTopic("Artificial Intelligence")

		node := g.Node("Artificial Intelligence")
		require.NotNil(t, node, "Expected topic node to exist")
		assert.Equal(t, NodeTypeTopic, node.Type)
		assert.Equal(t, 1, g.NodeCount())
	})

	t.Run("Adding the same topic twice is a no-op", func(t *testing.T) {
		g := NewGraph()
		g.AddTopic("AI")
		g.AddTopic("AI")
		assert.Equal(t, 1, g.NodeCount())
	})

	t.Run("Add person node with gender", func(t *testing.T) {
		g := NewGraph()
		g.AddPerson("Ada Lovelace", GenderFemale)

		node := g.Node("Ada Lovelace")
		require.NotNil(t, node)
		assert.Equal(t, NodeTypePerson, node.Type)
		assert.Equal(t, GenderFemale, node.Gender)
	})

	t.Run("Person gender is first-write-wins", func(t *testing.T) {
		g := NewGraph()
		g.AddPerson("Robin", GenderMale)
		g.AddPerson("Robin", GenderFemale)

		node := g.Node("Robin")
		require.NotNil(t, node)
		assert.Equal(t, GenderMale, node.Gender, "Expected first observed gender to be permanent")
		assert.Equal(t, 1, g.NodeCount())
	})

	t.Run("Empty name is never stored", func(t *testing.T) {
		g := NewGraph()
		g.AddPerson("   ", GenderUnknown)
		g.AddTopic("")
		assert.Equal(t, 0, g.NodeCount())
	})

	t.Run("Node names are trimmed", func(t *testing.T) {
		g := NewGraph()
		g.AddPerson(" Alan Turing ", GenderMale)
		require.NotNil(t, g.Node("Alan Turing"))
	})
}

func TestGraphAddEdges(t *testing.T) {
	t.Run("Add edge between existing nodes", func(t *testing.T) {
		g := NewGraph()
		g.AddTopic("AI")
		g.AddPerson("Alice", GenderFemale)
		g.AddEdge("AI", "Alice")

		assert.True(t, g.HasEdge("AI", "Alice"))
		assert.False(t, g.HasEdge("Alice", "AI"), "Expected edge to be directed")
		assert.Equal(t, 1, g.EdgeCount())
	})

	t.Run("Re-adding an edge is idempotent", func(t *testing.T) {
		g := NewGraph()
		g.AddTopic("AI")
		g.AddPerson("Alice", GenderFemale)
		g.AddEdge("AI", "Alice")
		g.AddEdge("AI", "Alice")

		assert.Equal(t, 1, g.EdgeCount())
	})

	t.Run("Edge to unknown node is ignored", func(t *testing.T) {
		g := NewGraph()
		g.AddTopic("AI")
		g.AddEdge("AI", "Nobody")
		g.AddEdge("Nobody", "AI")

		assert.Equal(t, 0, g.EdgeCount(), "Expected no dangling edges")
	})

	t.Run("Self loop is allowed", func(t *testing.T) {
		g := NewGraph()
		g.AddPerson("Alice", GenderFemale)
		g.AddEdge("Alice", "Alice")

		assert.True(t, g.HasEdge("Alice", "Alice"))
		assert.Equal(t, 1, g.EdgeCount())
	})

	t.Run("No dangling edges after building", func(t *testing.T) {
		g := NewGraph()
		g.AddTopic("AI")
		g.AddPerson("Alice", GenderFemale)
		g.AddPerson("Bob", GenderMale)
		g.AddEdge("AI", "Alice")
		g.AddEdge("AI", "Bob")
		g.AddEdge("Alice", "Bob")

		for _, edge := range g.Edges() {
			assert.NotNil(t, g.Node(edge.Source), "Expected source node to exist for edge %v", edge)
			assert.NotNil(t, g.Node(edge.Target), "Expected target node to exist for edge %v", edge)
		}
	})
}

func TestGraphOrdering(t *testing.T) {
	t.Run("Nodes are returned in insertion order", func(t *testing.T) {
		g := NewGraph()
		g.AddTopic("AI")
		g.AddPerson("Alice", GenderFemale)
		g.AddPerson("Bob", GenderMale)

		nodes := g.Nodes()
		require.Len(t, nodes, 3)
		assert.Equal(t, "AI", nodes[0].Name)
		assert.Equal(t, "Alice", nodes[1].Name)
		assert.Equal(t, "Bob", nodes[2].Name)
	})

	t.Run("Edges are returned in insertion order", func(t *testing.T) {
		g := NewGraph()
		g.AddTopic("AI")
		g.AddPerson("Alice", GenderFemale)
		g.AddPerson("Bob", GenderMale)
		g.AddEdge("AI", "Bob")
		g.AddEdge("AI", "Alice")

		edges := g.Edges()
		require.Len(t, edges, 2)
		assert.Equal(t, Edge{Source: "AI", Target: "Bob"}, edges[0])
		assert.Equal(t, Edge{Source: "AI", Target: "Alice"}, edges[1])
	})

	t.Run("Outgoing edges for a node", func(t *testing.T) {
		g := NewGraph()
		g.AddPerson("Alice", GenderFemale)
		g.AddPerson("Bob", GenderMale)
		g.AddPerson("Carol", GenderFemale)
		g.AddEdge("Alice", "Bob")
		g.AddEdge("Bob", "Alice")
		g.AddEdge("Alice", "Carol")

		outgoing := g.OutgoingEdges("Alice")
		require.Len(t, outgoing, 2)
		assert.Equal(t, "Bob", outgoing[0].Target)
		assert.Equal(t, "Carol", outgoing[1].Target)
	})
}

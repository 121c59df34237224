package graph

import (
	"fmt"

	"github.com/siherrmann/wikigraph/helper"
	"github.com/siherrmann/wikigraph/model"
)

// TraversalResult contains a node and its distance from the source
type TraversalResult struct {
	Node     *model.Node
	Distance int
	Path     []string // Path from source to this node
}

// BFS performs breadth-first search from a source node
func BFS(g *model.Graph, source string, maxHops int) ([]*TraversalResult, error) {
	sourceNode := g.Node(source)
	if sourceNode == nil {
		return nil, helper.NewError("source lookup", fmt.Errorf("node %q not in graph", source))
	}

	visited := map[string]bool{sourceNode.Name: true}
	queue := []TraversalResult{{
		Node:     sourceNode,
		Distance: 0,
		Path:     []string{sourceNode.Name},
	}}

	var results []*TraversalResult
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		results = append(results, &current)

		// Stop if we've reached max hops
		if current.Distance >= maxHops {
			continue
		}

		for _, edge := range g.OutgoingEdges(current.Node.Name) {
			if visited[edge.Target] {
				continue
			}
			visited[edge.Target] = true

			newPath := make([]string, len(current.Path))
			copy(newPath, current.Path)
			newPath = append(newPath, edge.Target)

			queue = append(queue, TraversalResult{
				Node:     g.Node(edge.Target),
				Distance: current.Distance + 1,
				Path:     newPath,
			})
		}
	}

	return results, nil
}

// DFS performs depth-first search from a source node
func DFS(g *model.Graph, source string, maxHops int) ([]*TraversalResult, error) {
	sourceNode := g.Node(source)
	if sourceNode == nil {
		return nil, helper.NewError("source lookup", fmt.Errorf("node %q not in graph", source))
	}

	visited := map[string]bool{}
	var results []*TraversalResult
	dfsRecursive(g, sourceNode, 0, maxHops, []string{sourceNode.Name}, visited, &results)

	return results, nil
}

// dfsRecursive is the recursive helper for DFS
func dfsRecursive(g *model.Graph, node *model.Node, distance int, maxHops int, path []string, visited map[string]bool, results *[]*TraversalResult) {
	if visited[node.Name] {
		return
	}
	visited[node.Name] = true

	*results = append(*results, &TraversalResult{
		Node:     node,
		Distance: distance,
		Path:     path,
	})

	if distance >= maxHops {
		return
	}

	for _, edge := range g.OutgoingEdges(node.Name) {
		newPath := make([]string, len(path))
		copy(newPath, path)
		newPath = append(newPath, edge.Target)

		dfsRecursive(g, g.Node(edge.Target), distance+1, maxHops, newPath, visited, results)
	}
}

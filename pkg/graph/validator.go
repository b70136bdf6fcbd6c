// Package graph provides structural validation for workflow graphs.
package graph

import "github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"

// WouldCreateCycle reports whether adding the edge from -> to would close a
// cycle. It runs a breadth-first search from the target node over outgoing
// connections; the edge is cyclic iff the source node is reachable.
func WouldCreateCycle(workflow *models.Workflow, fromNodeID, toNodeID string) bool {
	visited := make(map[string]bool, len(workflow.Nodes))
	queue := []string{toNodeID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == fromNodeID {
			return true
		}

		if visited[current] {
			continue
		}

		visited[current] = true

		for _, conn := range workflow.Connections {
			if conn.FromNodeID == current && !visited[conn.ToNodeID] {
				queue = append(queue, conn.ToNodeID)
			}
		}
	}

	return false
}

// IsDuplicateConnection reports whether the workflow already holds a
// connection with the same source node, target node, and source port.
func IsDuplicateConnection(workflow *models.Workflow, fromNodeID, toNodeID, fromPort string) bool {
	for _, conn := range workflow.Connections {
		if conn.FromNodeID == fromNodeID && conn.ToNodeID == toNodeID && conn.FromPort == fromPort {
			return true
		}
	}

	return false
}

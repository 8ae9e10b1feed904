// Package graph renders a batchql plan tree — a planner.Operator chain
// or any other graph.Visualizer — as Graphviz DOT, the way
// cmd/batchqlctl's --visualize flag inspects a delim-join plan.
package graph

import (
	"fmt"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

// Field is one labeled attribute shown inside a plan node's record box
// (e.g. a hash-aggregate's group-by column, a delim-scan's column
// count).
type Field struct {
	Name, Value string
}

// Child names the port a plan node's child hangs off — "child_0"/
// "child_1" for a join, "join"/"distinct"/"delim_scan_0" for a delim-join wrapper
// — so the rendered edge carries that label instead of a bare index.
type Child struct {
	Name string
	Node *Node
}

// Node is one box in the rendered plan: an operator name, its fields,
// and its labeled children.
type Node struct {
	Name     string
	Fields   []Field
	Children []Child
}

// NewNode starts a bare node with no fields or children yet.
func NewNode(name string) *Node {
	return &Node{
		Name: name,
	}
}

// AddField appends a labeled attribute to the node's record box.
func (n *Node) AddField(name, value string) {
	n.Fields = append(n.Fields, Field{
		Name:  name,
		Value: value,
	})
}

// AddChild hangs a child node off the named port.
func (n *Node) AddChild(name string, node *Node) {
	n.Children = append(n.Children, Child{
		Name: name,
		Node: node,
	})
}

// Visualizer is implemented by anything that can describe itself as a
// plan node tree — planner.Operator is the only implementation in this
// module.
type Visualizer interface {
	Visualize() *Node
}

// Show renders root and everything reachable from it as a Graphviz
// DOT graph, laid out left-to-right so a join's probe side reads
// before its build side. Rendering a plan is expected to succeed;
// callers that fail here have handed Show a node whose name or port
// gographviz itself rejects (e.g. one containing a stray quote), which
// is a caller bug rather than something the renderer can repair.
func Show(root *Node) (*gographviz.Graph, error) {
	g := gographviz.NewGraph()
	g.Directed = true
	if err := g.AddAttr("", "rankdir", "LR"); err != nil {
		return nil, errors.Wrap(err, "couldn't set plan graph layout direction")
	}

	r := &nodeRenderer{graph: g, idsByName: make(map[string]int)}
	if _, err := r.render(root); err != nil {
		return nil, err
	}
	return g, nil
}

// nodeRenderer walks a Node tree once, handing gographviz one record
// node per Node and one port edge per Child, and disambiguating
// repeated operator names (e.g. two HASH_JOIN nodes in the same plan)
// with a running counter.
type nodeRenderer struct {
	graph     *gographviz.Graph
	idsByName map[string]int
}

// reserveID mints the next unique graphviz node ID for a given operator
// name, so "HASH_JOIN" and a second "HASH_JOIN" elsewhere in the same
// plan don't collide.
func (r *nodeRenderer) reserveID(name string) string {
	n := r.idsByName[name]
	r.idsByName[name]++
	return fmt.Sprintf("%s_%d", strings.Replace(name, " ", "_", -1), n)
}

// render adds node and, recursively, its whole subtree to the graph,
// returning node's graphviz ID so the caller can wire up the edge into
// it.
func (r *nodeRenderer) render(node *Node) (string, error) {
	fields := make([]string, len(node.Fields))
	for i, field := range node.Fields {
		fields[i] = fmt.Sprintf("<%s> %s: %s", field.Name, field.Name, field.Value)
	}
	childPorts := make([]string, len(node.Children))
	for i, child := range node.Children {
		childPorts[i] = fmt.Sprintf("<%s> %s", child.Name, child.Name)
	}

	labelParts := []string{fmt.Sprintf("<f0> %s", node.Name)}
	if len(fields) > 0 {
		labelParts = append(labelParts, strings.Join(fields, "|"))
	}
	if len(childPorts) > 0 {
		labelParts = append(labelParts, strings.Join(childPorts, "|"))
	}
	label := fmt.Sprintf("\"{{%s}}\"", strings.Join(labelParts, "}|{"))

	id := r.reserveID(node.Name)
	if err := r.graph.AddNode("", id, map[string]string{
		"shape": "record",
		"label": label,
	}); err != nil {
		return "", errors.Wrapf(err, "couldn't add plan node %q", node.Name)
	}

	for _, child := range node.Children {
		childID, err := r.render(child.Node)
		if err != nil {
			return "", err
		}
		if err := r.graph.AddPortEdge(id, child.Name, childID, "", true, map[string]string{}); err != nil {
			return "", errors.Wrapf(err, "couldn't connect %q to child %q", node.Name, child.Name)
		}
	}
	return id, nil
}

package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShow(t *testing.T) {
	child := NewNode("the child")
	child.AddField("young", "true")
	child.AddField("age", "3")

	right := NewNode("mid")
	right.AddChild("child", child)

	left := NewNode("mid")
	left.AddField("lefty", "true")

	root := NewNode("root")
	root.AddField("root", "true")
	root.AddChild("left", left)
	root.AddChild("right", right)

	g, err := Show(root)
	require.NoError(t, err)
	require.NotEmpty(t, g.String())
}

func TestShow_DuplicateNamesGetDistinctIDs(t *testing.T) {
	a := NewNode("leaf")
	b := NewNode("leaf")

	root := NewNode("root")
	root.AddChild("a", a)
	root.AddChild("b", b)

	g, err := Show(root)
	require.NoError(t, err)
	dot := g.String()
	require.Contains(t, dot, "leaf_0")
	require.Contains(t, dot, "leaf_1")
}

package htmlnode

// WalkFunc is called for each node visited by Walk. Depth is 0 for the root.
// Returning false skips the node's children.
type WalkFunc func(node Node, depth int) bool

// Walk traverses the tree rooted at node in pre-order.
func Walk(node Node, fn WalkFunc) {
	walk(node, 0, fn)
}

func walk(node Node, depth int, fn WalkFunc) {
	if node == nil {
		return
	}
	if !fn(node, depth) {
		return
	}
	parent, ok := node.(*Parent)
	if !ok {
		return
	}
	for _, child := range parent.Children {
		walk(child, depth+1, fn)
	}
}

// CountElements returns the number of tagged nodes in the tree. Untagged
// text leaves are not counted.
func CountElements(node Node) int {
	count := 0
	Walk(node, func(n Node, _ int) bool {
		switch n := n.(type) {
		case *Leaf:
			if n.Tag != "" {
				count++
			}
		case *Parent:
			count++
		}
		return true
	})
	return count
}

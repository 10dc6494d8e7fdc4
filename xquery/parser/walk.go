package parser

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the node just visited.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// Inspect is like Walk but calls fn(nil) after the children of a node have
// been visited, so callers can track nesting.
func Inspect(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		Inspect(child, fn)
	}
	fn(nil)
}

// NodeAt returns the deepest node whose span contains the byte offset. End
// offsets are inclusive so that a cursor just after a name still finds it.
func NodeAt(n *Node, offset int) *Node {
	if n == nil || offset < n.Span.Start.Offset || offset > n.Span.End.Offset {
		return nil
	}
	for _, child := range n.Children {
		if child.Span.Start.Offset == child.Span.End.Offset {
			continue
		}
		if found := NodeAt(child, offset); found != nil {
			return found
		}
	}
	return n
}

// Ancestors returns the chain of nodes from root down to target, or nil when
// target is not in the tree.
func Ancestors(root, target *Node) []*Node {
	if root == nil {
		return nil
	}
	if root == target {
		return []*Node{root}
	}
	for _, child := range root.Children {
		if path := Ancestors(child, target); path != nil {
			return append([]*Node{root}, path...)
		}
	}
	return nil
}

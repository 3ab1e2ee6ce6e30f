package commenttree

// Insert adds node to the forest. Without a parentID the node becomes the first
// root. With a parentID it is appended to the replies of the first node with
// that id in depth-first pre-order. When the parent is not found the original
// forest is returned with inserted=false and the caller should refetch.
func Insert(forest []Node, node Node, parentID string) ([]Node, bool) {
	if parentID == "" {
		out := make([]Node, 0, len(forest)+1)
		out = append(out, node)
		return append(out, forest...), true
	}

	updated, ok := insertReply(forest, node, parentID)
	if !ok {
		return forest, false
	}
	return updated, true
}

func insertReply(list []Node, node Node, parentID string) ([]Node, bool) {
	for i := range list {
		current := list[i]

		if current.ID == parentID {
			replies := make([]Node, 0, len(current.Replies)+1)
			replies = append(replies, current.Replies...)
			current.Replies = append(replies, node)
			return replaceAt(list, i, current), true
		}

		if len(current.Replies) == 0 {
			continue
		}

		if nested, ok := insertReply(current.Replies, node, parentID); ok {
			current.Replies = nested
			return replaceAt(list, i, current), true
		}
	}
	return nil, false
}

// Remove deletes the first node with targetID (pre-order) together with its
// whole subtree. removedCount is the size of that subtree, measured before
// removal. On a miss the original forest is returned with removed=false.
func Remove(forest []Node, targetID string) (updated []Node, removed bool, removedCount int) {
	updated, removedCount, removed = removeNode(forest, targetID)
	if !removed {
		return forest, false, 0
	}
	return updated, true, removedCount
}

func removeNode(list []Node, targetID string) ([]Node, int, bool) {
	for i := range list {
		current := list[i]

		if current.ID == targetID {
			out := make([]Node, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out, CountSubtree(current), true
		}

		if len(current.Replies) == 0 {
			continue
		}

		if nested, count, ok := removeNode(current.Replies, targetID); ok {
			current.Replies = nested
			return replaceAt(list, i, current), count, true
		}
	}
	return nil, 0, false
}

// replaceAt returns a copy of list with the i-th element replaced. Other
// elements are shared with list.
func replaceAt(list []Node, i int, n Node) []Node {
	out := make([]Node, len(list))
	copy(out, list)
	out[i] = n
	return out
}

// CountSubtree returns the number of nodes in the subtree rooted at n,
// including n itself.
func CountSubtree(n Node) int {
	total := 1
	for _, r := range n.Replies {
		total += CountSubtree(r)
	}
	return total
}

// Count returns the number of nodes reachable from the forest.
func Count(forest []Node) int {
	total := 0
	for _, n := range forest {
		total += CountSubtree(n)
	}
	return total
}

// Find returns the first node with id in depth-first pre-order.
func Find(forest []Node, id string) (Node, bool) {
	for _, n := range forest {
		if n.ID == id {
			return n, true
		}
		if found, ok := Find(n.Replies, id); ok {
			return found, true
		}
	}
	return Node{}, false
}

// Decrement subtracts removed from count, never going below zero.
func Decrement(count, removed int) int {
	return max(0, count-removed)
}

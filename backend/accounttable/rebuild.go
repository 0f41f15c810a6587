// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package accounttable

// minImbalanceSize is the smallest child weight at which a node may be
// considered imbalanced. Smaller subtrees are never rebuilt.
const minImbalanceSize = 4

// isImbalanced reports whether one child of n is at least one and a half
// times as heavy as the other while one of them holds at least
// minImbalanceSize nodes.
func isImbalanced(n *node) bool {
	l, r := sizeOf(n.left), sizeOf(n.right)
	if l < minImbalanceSize && r < minImbalanceSize {
		return false
	}
	return 2*l >= 3*r || 2*r >= 3*l
}

// rebalance rebuilds the subtree rooted by n if it is imbalanced and returns
// the root of the resulting subtree. Rebuilding drops all vacant nodes.
func rebalance(n *node) *node {
	if !isImbalanced(n) {
		return n
	}
	nodes := flatten(n, make([]*node, 0, n.size-n.vacant))
	return build(nodes)
}

// flatten appends the active nodes of the subtree in ascending order.
func flatten(n *node, nodes []*node) []*node {
	if n == nil {
		return nodes
	}
	nodes = flatten(n.left, nodes)
	if !n.isVacant() {
		nodes = append(nodes, n)
	}
	return flatten(n.right, nodes)
}

// build links the given sorted nodes into a tree by repeatedly picking the
// median as the root of a subtree.
func build(nodes []*node) *node {
	if len(nodes) == 0 {
		return nil
	}
	mid := (len(nodes) - 1) / 2
	n := nodes[mid]
	n.left = build(nodes[:mid])
	n.right = build(nodes[mid+1:])
	n.update()
	return n
}

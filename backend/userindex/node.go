// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package userindex

import (
	"fmt"
	"strings"

	"github.com/DrewBarlow/UTreeDTree/backend/accounttable"
	"github.com/DrewBarlow/UTreeDTree/common"
)

// node is an AVL node owning the accounts of a single username. The username
// itself is not stored, it is the one shared by the records of the table.
type node struct {
	accounts    *accounttable.Table
	left, right *node
	height      int
}

// newNode creates a leaf holding the given record. It fails for records
// rejected by the table, since a node must never hold an empty table.
func newNode(record common.Record) (*node, bool) {
	accounts := accounttable.NewTable()
	if !accounts.Insert(record) {
		return nil, false
	}
	return &node{accounts: accounts}, true
}

func (n *node) username() string {
	return n.accounts.Username()
}

func heightOf(n *node) int {
	if n == nil {
		return -1
	}
	return n.height
}

func (n *node) update() {
	n.height = 1 + max(heightOf(n.left), heightOf(n.right))
}

func balanceFactor(n *node) int {
	if n == nil {
		return 0
	}
	return heightOf(n.left) - heightOf(n.right)
}

func (n *node) find(username string) *node {
	for n != nil {
		switch c := strings.Compare(username, n.username()); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

//      n              l
//     / \            / \
//    l   c    =>    a   n
//   / \                / \
//  a   b              b   c
func rotateRight(n *node) *node {
	l := n.left
	n.left = l.right
	l.right = n
	n.update()
	l.update()
	return l
}

//    n                  r
//   / \                / \
//  a   r      =>      n   c
//     / \            / \
//    b   c          a   b
func rotateLeft(n *node) *node {
	r := n.right
	n.right = r.left
	r.left = n
	n.update()
	r.update()
	return r
}

// rebalance refreshes the height of n and restores the AVL property at n,
// assuming both subtrees are balanced and differ in height by at most 2.
func rebalance(n *node) *node {
	n.update()
	switch bf := balanceFactor(n); {
	case bf > 1:
		if balanceFactor(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case bf < -1:
		if balanceFactor(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

// removeSelf unlinks n from the tree after its table got emptied and returns
// the root of the remaining subtree. If there is a left child, the content of
// the in-order predecessor is copied into n and the predecessor is spliced out.
func removeSelf(n *node) *node {
	if n.left == nil {
		return n.right
	}
	var predecessor *node
	n.left = removeMax(n.left, &predecessor)
	n.accounts.CopyFrom(predecessor.accounts)
	return rebalance(n)
}

// removeMax splices out the rightmost node of the given subtree, which is
// reported through removed, and returns the rebalanced remainder.
func removeMax(n *node, removed **node) *node {
	if n.right == nil {
		*removed = n
		return n.left
	}
	n.right = removeMax(n.right, removed)
	return rebalance(n)
}

func (n *node) forEachNode(callback func(*node)) {
	if n == nil {
		return
	}
	n.left.forEachNode(callback)
	callback(n)
	n.right.forEachNode(callback)
}

func (n *node) dump(sb *strings.Builder) {
	if n == nil {
		return
	}
	sb.WriteRune('(')
	n.left.dump(sb)
	fmt.Fprintf(sb, "%s:%d:%d", n.username(), n.height, n.accounts.ActiveRecordCount())
	n.right.dump(sb)
	sb.WriteRune(')')
}

func (n *node) check(errs *[]error) {
	if n == nil {
		return
	}
	n.left.check(errs)
	n.right.check(errs)

	username := n.username()
	if want := 1 + max(heightOf(n.left), heightOf(n.right)); n.height != want {
		*errs = append(*errs, fmt.Errorf("invalid height of node %q, wanted %d, got %d", username, want, n.height))
	}
	if bf := balanceFactor(n); bf < -1 || bf > 1 {
		*errs = append(*errs, fmt.Errorf("node %q is unbalanced, balance factor %d", username, bf))
	}
	if n.accounts.ActiveRecordCount() == 0 {
		*errs = append(*errs, fmt.Errorf("node %q holds no active records", username))
	}
	if err := n.accounts.Check(); err != nil {
		*errs = append(*errs, fmt.Errorf("invalid accounts of %q: %w", username, err))
	}
}

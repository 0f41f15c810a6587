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

import (
	"fmt"
	"strings"

	"github.com/DrewBarlow/UTreeDTree/common"
)

// slotState tags whether a node currently holds a retrievable record.
type slotState byte

const (
	slotActive slotState = iota
	slotVacant
)

func (s slotState) String() string {
	if s == slotVacant {
		return "vacant"
	}
	return "active"
}

// node is a single slot of the table. Vacant nodes keep the record they held
// so that the search order stays intact.
type node struct {
	record      common.Record
	left, right *node
	size        int // number of nodes in this subtree, vacant ones included
	vacant      int // number of vacant nodes in this subtree
	state       slotState
}

func newNode(record common.Record) *node {
	return &node{record: record, size: 1}
}

func (n *node) discriminator() common.Discriminator {
	return n.record.Discriminator
}

func (n *node) isVacant() bool {
	return n.state == slotVacant
}

func sizeOf(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func vacantOf(n *node) int {
	if n == nil {
		return 0
	}
	return n.vacant
}

// update recomputes the counters of this node from its children.
func (n *node) update() {
	n.size = 1 + sizeOf(n.left) + sizeOf(n.right)
	n.vacant = vacantOf(n.left) + vacantOf(n.right)
	if n.isVacant() {
		n.vacant++
	}
}

// find returns the first node on the search path holding the given
// discriminator, which may be vacant.
func (n *node) find(d common.Discriminator) *node {
	for n != nil {
		switch {
		case d < n.discriminator():
			n = n.left
		case d > n.discriminator():
			n = n.right
		default:
			return n
		}
	}
	return nil
}

func (n *node) min() *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

func (n *node) max() *node {
	for n.right != nil {
		n = n.right
	}
	return n
}

// accepts reports whether this vacant node may take a record with the given
// discriminator without breaking the search order of its subtree.
func (n *node) accepts(d common.Discriminator) bool {
	lo, hi := common.Discriminator(0), common.MaxDiscriminator
	if n.left != nil {
		lo = n.left.max().discriminator()
	}
	if n.right != nil {
		hi = n.right.min().discriminator()
	}
	return lo <= d && d <= hi
}

type outcome byte

const (
	rejected outcome = iota
	inserted         // a new leaf was added
	reused           // a vacant node took the record
)

// insert adds the record to the subtree rooted by n and returns the new root
// of the subtree. Callers have to make sure no active node holds the
// discriminator of the record.
func insert(n *node, record common.Record) (*node, outcome) {
	if n == nil {
		return newNode(record), inserted
	}

	d := record.Discriminator
	if n.isVacant() && n.accepts(d) {
		n.record = record
		n.state = slotActive
		n.vacant--
		return n, reused
	}

	var res outcome
	switch {
	case d < n.discriminator():
		n.left, res = insert(n.left, record)
	case d > n.discriminator():
		n.right, res = insert(n.right, record)
	default:
		// an active node with the same discriminator
		return n, rejected
	}

	switch res {
	case inserted:
		n.update()
		return rebalance(n), inserted
	case reused:
		n.vacant--
	}
	return n, res
}

// remove marks the node holding the given discriminator as vacant.
func remove(n *node, d common.Discriminator) (removed common.Record, found bool) {
	if n == nil {
		return
	}
	switch {
	case d < n.discriminator():
		removed, found = remove(n.left, d)
	case d > n.discriminator():
		removed, found = remove(n.right, d)
	default:
		if n.isVacant() {
			return
		}
		n.state = slotVacant
		removed, found = n.record, true
	}
	if found {
		n.vacant++
	}
	return
}

// clone copies this node first, then its left and its right subtree.
func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	res := &node{
		record: n.record,
		size:   n.size,
		vacant: n.vacant,
		state:  n.state,
	}
	res.left = n.left.clone()
	res.right = n.right.clone()
	return res
}

// forEachNode visits all nodes of the subtree in order, vacant ones included.
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
	fmt.Fprintf(sb, "%d:%d:%d", n.discriminator(), n.size, n.vacant)
	n.right.dump(sb)
	sb.WriteRune(')')
}

// check verifies the subtree rooted by n, where all discriminators have to be
// within [lo, hi].
func (n *node) check(lo, hi common.Discriminator, username string, errs *[]error) {
	if n == nil {
		return
	}
	d := n.discriminator()
	if d < lo || d > hi {
		*errs = append(*errs, fmt.Errorf("discriminator %d outside of range [%d, %d]", d, lo, hi))
	}
	if n.record.Username != username {
		*errs = append(*errs, fmt.Errorf("node %d holds username %q, table holds %q", d, n.record.Username, username))
	}
	if want := 1 + sizeOf(n.left) + sizeOf(n.right); n.size != want {
		*errs = append(*errs, fmt.Errorf("invalid size of node %d, wanted %d, got %d", d, want, n.size))
	}
	want := vacantOf(n.left) + vacantOf(n.right)
	if n.isVacant() {
		want++
	}
	if n.vacant != want {
		*errs = append(*errs, fmt.Errorf("invalid vacant count of node %d, wanted %d, got %d", d, want, n.vacant))
	}
	if isImbalanced(n) {
		*errs = append(*errs, fmt.Errorf("node %d is imbalanced, left size %d, right size %d", d, sizeOf(n.left), sizeOf(n.right)))
	}
	n.left.check(lo, d, username, errs)
	n.right.check(d, hi, username, errs)
}

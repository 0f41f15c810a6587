// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package accounttable implements the per-username account index: a binary
// search tree over discriminators that is kept in balance by subtree weights.
//
// Removal does not unlink nodes. A removed account leaves a vacant node behind
// that keeps its position and its old discriminator until it is either reused by
// a later insert or dropped when the subtree containing it is rebuilt. Rebuilds
// are only triggered on the insert path, whenever the weight of one side of a
// node exceeds the other by half.
package accounttable

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/DrewBarlow/UTreeDTree/common"
)

// Table is a weight balanced search tree of records keyed by discriminator.
// The zero value is an empty table ready to use.
type Table struct {
	root *node
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Insert adds the record to the table. It fails without modifying the table if
// the record is invalid or an active record with the same discriminator exists.
// The record is placed into a reusable vacant node on its search path if there
// is one, otherwise a new leaf is added and the path is rebalanced.
func (t *Table) Insert(record common.Record) bool {
	if record.Validate() != nil {
		return false
	}
	if _, found := t.Retrieve(record.Discriminator); found {
		return false
	}
	var res outcome
	t.root, res = insert(t.root, record)
	return res != rejected
}

// Remove marks the node holding the given discriminator as vacant and returns
// a copy of the record it held. The tree shape is left untouched.
func (t *Table) Remove(d common.Discriminator) (common.Record, bool) {
	return remove(t.root, d)
}

// Retrieve returns the active record with the given discriminator.
func (t *Table) Retrieve(d common.Discriminator) (common.Record, bool) {
	n := t.root.find(d)
	if n == nil || n.isVacant() {
		return common.Record{}, false
	}
	return n.record, true
}

// ActiveRecordCount returns the number of non-vacant nodes.
func (t *Table) ActiveRecordCount() int {
	if t.root == nil {
		return 0
	}
	return t.root.size - t.root.vacant
}

// Size returns the number of nodes in the table, including vacant ones.
func (t *Table) Size() int {
	return sizeOf(t.root)
}

// Username returns the username of the records stored in this table, or the
// empty string if the table has no nodes. Vacant nodes still carry the
// username of the record they held.
func (t *Table) Username() string {
	if t.root == nil {
		return ""
	}
	return t.root.record.Username
}

// Clone creates a deep copy of this table preserving its exact shape,
// including vacant nodes.
func (t *Table) Clone() *Table {
	return &Table{root: t.root.clone()}
}

// CopyFrom replaces the content of this table by a deep copy of the source.
func (t *Table) CopyFrom(src *Table) {
	if t == src {
		return
	}
	t.root = src.root.clone()
}

// Clear removes all nodes.
func (t *Table) Clear() {
	t.root = nil
}

// ForEach visits all active records in ascending discriminator order.
func (t *Table) ForEach(callback func(common.Record)) {
	t.root.forEachNode(func(n *node) {
		if !n.isVacant() {
			callback(n.record)
		}
	})
}

// GetHash computes a digest of the active records. Tables holding the same
// records have the same hash, independently of their shape.
func (t *Table) GetHash() common.Hash {
	return common.HashRecords(t.ForEach)
}

// String renders the structure of the table using the parenthesized in-order
// notation, where every node is printed as discriminator:size:vacant.
func (t *Table) String() string {
	var sb strings.Builder
	t.root.dump(&sb)
	return sb.String()
}

// Check verifies the invariants of the table: node counters, search order,
// unique active discriminators, a single username and the weight balance.
func (t *Table) Check() error {
	var errs []error
	t.root.check(0, common.MaxDiscriminator, t.Username(), &errs)

	var prev *node
	t.root.forEachNode(func(n *node) {
		if n.isVacant() {
			return
		}
		if prev != nil && prev.discriminator() >= n.discriminator() {
			errs = append(errs, fmt.Errorf("active discriminators out of order: %d before %d", prev.discriminator(), n.discriminator()))
		}
		prev = n
	})
	return errors.Join(errs...)
}

func (t *Table) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*t))
	var payload uintptr
	t.root.forEachNode(func(n *node) {
		payload += uintptr(len(n.record.Username) + len(n.record.Badge) + len(n.record.Status))
	})
	nodes := common.NewMemoryFootprint(uintptr(t.Size())*unsafe.Sizeof(node{}) + payload)
	if t.root != nil && t.root.vacant > 0 {
		nodes.SetNote(fmt.Sprintf("%d vacant", t.root.vacant))
	}
	mf.AddChild("nodes", nodes)
	return mf
}

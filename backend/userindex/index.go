// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package userindex implements the outer level of the account index: an AVL
// tree keyed by username where every node owns the accounttable.Table holding
// the accounts registered under that username.
package userindex

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/DrewBarlow/UTreeDTree/backend/accounttable"
	"github.com/DrewBarlow/UTreeDTree/common"
)

// Index is an in-memory index of account records keyed by (username,
// discriminator). It is not safe for concurrent use.
type Index struct {
	root    *node
	users   int // number of nodes in the tree
	records int // number of active records over all tables
}

func NewIndex() *Index {
	return &Index{}
}

// Insert adds the given record to the index. It fails if the record is
// invalid or the (username, discriminator) pair is already taken.
func (i *Index) Insert(record common.Record) bool {
	if record.Validate() != nil {
		return false
	}
	var added bool
	i.root, added = i.insert(i.root, record)
	if added {
		i.records++
	}
	return added
}

func (i *Index) insert(n *node, record common.Record) (*node, bool) {
	if n == nil {
		n, added := newNode(record)
		if added {
			i.users++
		}
		return n, added
	}
	var added bool
	switch c := strings.Compare(record.Username, n.username()); {
	case c < 0:
		n.left, added = i.insert(n.left, record)
	case c > 0:
		n.right, added = i.insert(n.right, record)
	default:
		return n, n.accounts.Insert(record)
	}
	if !added {
		return n, false
	}
	return rebalance(n), true
}

// RemoveUser removes the account with the given discriminator from the given
// username and returns the removed record. If it was the last active account
// of the username, the username is dropped from the index.
func (i *Index) RemoveUser(username string, d common.Discriminator) (common.Record, bool) {
	var removed common.Record
	var found bool
	i.root, removed, found = i.remove(i.root, username, d)
	if found {
		i.records--
	}
	return removed, found
}

func (i *Index) remove(n *node, username string, d common.Discriminator) (*node, common.Record, bool) {
	if n == nil {
		return nil, common.Record{}, false
	}
	var removed common.Record
	var found bool
	switch c := strings.Compare(username, n.username()); {
	case c < 0:
		n.left, removed, found = i.remove(n.left, username, d)
	case c > 0:
		n.right, removed, found = i.remove(n.right, username, d)
	default:
		removed, found = n.accounts.Remove(d)
		if !found || n.accounts.ActiveRecordCount() > 0 {
			return n, removed, found
		}
		i.users--
		return removeSelf(n), removed, true
	}
	if !found {
		return n, removed, false
	}
	return rebalance(n), removed, true
}

// Retrieve provides read-only access to the accounts of the given username.
func (i *Index) Retrieve(username string) (accounttable.View, bool) {
	n := i.root.find(username)
	if n == nil {
		return nil, false
	}
	return n.accounts.AsView(), true
}

// RetrieveRecord looks up a single account.
func (i *Index) RetrieveRecord(username string, d common.Discriminator) (common.Record, bool) {
	n := i.root.find(username)
	if n == nil {
		return common.Record{}, false
	}
	return n.accounts.Retrieve(d)
}

// NumUsers returns the number of active accounts registered under the given
// username, 0 if the username is unknown.
func (i *Index) NumUsers(username string) int {
	n := i.root.find(username)
	if n == nil {
		return 0
	}
	return n.accounts.ActiveRecordCount()
}

// Len returns the number of distinct usernames in the index.
func (i *Index) Len() int {
	return i.users
}

// RecordCount returns the number of active records in the index.
func (i *Index) RecordCount() int {
	return i.records
}

// Height returns the height of the tree, -1 for an empty index.
func (i *Index) Height() int {
	return heightOf(i.root)
}

// ForEach visits all records ordered by username and discriminator.
func (i *Index) ForEach(callback func(common.Record)) {
	i.root.forEachNode(func(n *node) {
		n.accounts.ForEach(callback)
	})
}

// ForEachUser visits the accounts of all usernames in username order.
func (i *Index) ForEachUser(callback func(username string, accounts accounttable.View)) {
	i.root.forEachNode(func(n *node) {
		callback(n.username(), n.accounts.AsView())
	})
}

func (i *Index) Clear() {
	i.root = nil
	i.users = 0
	i.records = 0
}

// String dumps the structure of the tree, printing username, height and the
// number of active accounts of every node.
func (i *Index) String() string {
	var sb strings.Builder
	i.root.dump(&sb)
	return sb.String()
}

// Check verifies the invariants of the index and all of its tables. All
// detected violations are reported.
func (i *Index) Check() error {
	var errs []error
	i.root.check(&errs)

	users, records := 0, 0
	var prev string
	i.root.forEachNode(func(n *node) {
		if users > 0 && prev >= n.username() {
			errs = append(errs, fmt.Errorf("usernames out of order: %q before %q", prev, n.username()))
		}
		prev = n.username()
		users++
		records += n.accounts.ActiveRecordCount()
	})
	if users != i.users {
		errs = append(errs, fmt.Errorf("invalid user count, wanted %d, got %d", users, i.users))
	}
	if records != i.records {
		errs = append(errs, fmt.Errorf("invalid record count, wanted %d, got %d", records, i.records))
	}
	return errors.Join(errs...)
}

// GetHash computes a digest of the content of the index. Indexes holding the
// same records have the same hash, independently of their internal structure.
func (i *Index) GetHash() common.Hash {
	buffer := make([]byte, 0, len(common.Hash{})*i.users)
	i.root.forEachNode(func(n *node) {
		hash := n.accounts.GetHash()
		buffer = append(buffer, hash[:]...)
	})
	return common.Keccak256(buffer)
}

func (i *Index) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*i))
	var tables uintptr
	vacant := 0
	i.root.forEachNode(func(n *node) {
		tables += n.accounts.GetMemoryFootprint().Total()
		vacant += n.accounts.Size() - n.accounts.ActiveRecordCount()
	})
	mf.AddChild("nodes", common.NewMemoryFootprint(uintptr(i.users)*unsafe.Sizeof(node{})))
	accounts := common.NewMemoryFootprint(tables)
	if vacant > 0 {
		accounts.SetNote(fmt.Sprintf("%d vacant", vacant))
	}
	mf.AddChild("accounts", accounts)
	return mf
}

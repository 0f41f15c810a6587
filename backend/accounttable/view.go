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

import "github.com/DrewBarlow/UTreeDTree/common"

// View provides read access to a table owned by another structure.
type View interface {
	// Username returns the username shared by the records of the table.
	Username() string
	// Retrieve returns the active record with the given discriminator.
	Retrieve(d common.Discriminator) (common.Record, bool)
	// ActiveRecordCount returns the number of records that may be retrieved.
	ActiveRecordCount() int
	// Size returns the number of nodes including vacant ones.
	Size() int
	// ForEach visits all active records in ascending discriminator order.
	ForEach(callback func(common.Record))
	// GetHash returns a digest of the active records.
	GetHash() common.Hash
	String() string
}

// AsView returns a read-only view of the table. The view reflects later
// modifications of the table, but does not expose any means to perform them.
func (t *Table) AsView() View {
	return readOnlyTable{table: t}
}

type readOnlyTable struct {
	table *Table
}

func (v readOnlyTable) Username() string {
	return v.table.Username()
}

func (v readOnlyTable) Retrieve(d common.Discriminator) (common.Record, bool) {
	return v.table.Retrieve(d)
}

func (v readOnlyTable) ActiveRecordCount() int {
	return v.table.ActiveRecordCount()
}

func (v readOnlyTable) Size() int {
	return v.table.Size()
}

func (v readOnlyTable) ForEach(callback func(common.Record)) {
	v.table.ForEach(callback)
}

func (v readOnlyTable) GetHash() common.Hash {
	return v.table.GetHash()
}

func (v readOnlyTable) String() string {
	return v.table.String()
}

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package loader

//go:generate mockgen -source sink.go -destination sink_mocks.go -package loader

import "github.com/DrewBarlow/UTreeDTree/common"

// Sink is the destination of a bulk load. It is implemented by
// *userindex.Index.
type Sink interface {
	// Insert adds a record, returning false if it was rejected.
	Insert(record common.Record) bool
	// Clear drops all records.
	Clear()
}

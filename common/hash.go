// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"fmt"
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Hash is a Keccak-256 digest summarizing the content of an index.
type Hash [32]byte

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// Keccak256 computes the Keccak-256 hash of the given data.
func Keccak256(data []byte) Hash {
	hasher := keccakHasherPool.Get().(hash.Hash)
	defer keccakHasherPool.Put(hasher)
	hasher.Reset()
	hasher.Write(data)
	var res Hash
	hasher.Sum(res[:0])
	return res
}

// HashRecords computes the hash of a sequence of records. The hash depends on
// the content and the order of the visited records, not on the structure
// holding them.
func HashRecords(forEach func(func(Record))) Hash {
	hasher := keccakHasherPool.Get().(hash.Hash)
	defer keccakHasherPool.Put(hasher)
	hasher.Reset()
	buffer := make([]byte, 0, 64)
	forEach(func(r Record) {
		buffer = r.AppendTo(buffer[:0])
		hasher.Write(buffer)
	})
	var res Hash
	hasher.Sum(res[:0])
	return res
}

var keccakHasherPool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}

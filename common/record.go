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
	"encoding/binary"
	"fmt"
)

// Discriminator distinguishes accounts sharing the same username.
type Discriminator uint16

// MaxDiscriminator is the largest valid discriminator.
const MaxDiscriminator Discriminator = 9999

// Record is a single account. Records are handled by value, so every record
// handed out by an index is a detached copy of the stored one.
// A record is identified by its (Username, Discriminator) pair.
type Record struct {
	Username      string
	Discriminator Discriminator
	Nitro         bool
	Badge         string
	Status        string
}

// Validate checks that the record can be stored in an index.
func (r Record) Validate() error {
	if r.Discriminator > MaxDiscriminator {
		return fmt.Errorf("%w: %d > %d", ErrDiscriminatorOutOfRange, r.Discriminator, MaxDiscriminator)
	}
	return nil
}

func (r Record) String() string {
	return fmt.Sprintf("Account name: %s\n\tDiscriminator: %d\n\tNitro: %t\n\tBadge: %s\n\tStatus: %s",
		r.Username, r.Discriminator, r.Nitro, r.Badge, r.Status)
}

// AppendTo appends a self-delimiting binary encoding of the record to the given
// buffer. The encoding is used as the input for hashing records.
func (r Record) AppendTo(buffer []byte) []byte {
	buffer = appendString(buffer, r.Username)
	buffer = binary.BigEndian.AppendUint16(buffer, uint16(r.Discriminator))
	if r.Nitro {
		buffer = append(buffer, 1)
	} else {
		buffer = append(buffer, 0)
	}
	buffer = appendString(buffer, r.Badge)
	return appendString(buffer, r.Status)
}

func appendString(buffer []byte, s string) []byte {
	buffer = binary.AppendUvarint(buffer, uint64(len(s)))
	return append(buffer, s...)
}

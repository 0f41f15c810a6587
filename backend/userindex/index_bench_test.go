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
	"testing"

	"github.com/DrewBarlow/UTreeDTree/common"
	"github.com/brianvoe/gofakeit/v6"
)

func newFakeRecords(users, accounts int) []common.Record {
	faker := gofakeit.New(7)
	res := make([]common.Record, 0, users*accounts)
	for i := 0; i < users; i++ {
		username := fmt.Sprintf("%s%d", faker.Username(), i)
		for j := 0; j < accounts; j++ {
			res = append(res, common.Record{
				Username:      username,
				Discriminator: common.Discriminator(faker.Number(0, int(common.MaxDiscriminator))),
				Nitro:         faker.Bool(),
				Badge:         faker.HackerNoun(),
				Status:        faker.RandomString([]string{"online", "idle", "offline"}),
			})
		}
	}
	faker.ShuffleAnySlice(res)
	return res
}

func BenchmarkIndex_Insert(b *testing.B) {
	for _, users := range []int{10, 100, 1000} {
		records := newFakeRecords(users, 10)
		b.Run(fmt.Sprintf("users=%d", users), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				index := NewIndex()
				for _, r := range records {
					index.Insert(r)
				}
			}
		})
	}
}

func BenchmarkIndex_RetrieveRecord(b *testing.B) {
	records := newFakeRecords(1000, 10)
	index := NewIndex()
	for _, r := range records {
		index.Insert(r)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := records[i%len(records)]
		index.RetrieveRecord(r.Username, r.Discriminator)
	}
}

func BenchmarkIndex_RemoveAndInsert(b *testing.B) {
	records := newFakeRecords(1000, 2)
	index := NewIndex()
	for _, r := range records {
		index.Insert(r)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := records[i%len(records)]
		index.RemoveUser(r.Username, r.Discriminator)
		index.Insert(r)
	}
}

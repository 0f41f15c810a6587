// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"os"

	"github.com/DrewBarlow/UTreeDTree/backend/loader"
	"github.com/DrewBarlow/UTreeDTree/common"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/urfave/cli/v2"
)

var generateCommand = cli.Command{
	Action: addPerformanceDiagnoses(generate),
	Name:   "generate",
	Usage:  "writes a file of randomly generated accounts",
	Flags: []cli.Flag{
		&outputFlag,
		&numUsersFlag,
		&numAccountsFlag,
		&seedFlag,
	},
}

var (
	outputFlag = cli.StringFlag{
		Name:     "output",
		Usage:    "the file to write the accounts to",
		Required: true,
	}
	numUsersFlag = cli.IntFlag{
		Name:  "users",
		Usage: "the number of users to generate",
		Value: 100,
	}
	numAccountsFlag = cli.IntFlag{
		Name:  "accounts",
		Usage: "the maximum number of accounts per user",
		Value: 5,
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the generator, 0 picks a random one",
	}
)

var statuses = []string{"online", "idle", "do not disturb", "offline"}

func generate(context *cli.Context) (err error) {
	numUsers := context.Int(numUsersFlag.Name)
	numAccounts := context.Int(numAccountsFlag.Name)
	if numUsers < 0 || numAccounts < 1 {
		return fmt.Errorf("invalid number of users (%d) or accounts per user (%d)", numUsers, numAccounts)
	}

	faker := gofakeit.New(context.Int64(seedFlag.Name))
	records := make([]common.Record, 0, numUsers*numAccounts)
	for i := 0; i < numUsers; i++ {
		username := faker.Username()
		for j := faker.Number(1, numAccounts); j > 0; j-- {
			records = append(records, common.Record{
				Username:      username,
				Discriminator: common.Discriminator(faker.Number(0, int(common.MaxDiscriminator))),
				Nitro:         faker.Bool(),
				Badge:         faker.HackerAdjective(),
				Status:        faker.RandomString(statuses),
			})
		}
	}

	path := context.String(outputFlag.Name)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeError := file.Close(); err == nil {
			err = closeError
		}
	}()

	err = loader.Write(file, func(yield func(common.Record)) {
		for _, r := range records {
			yield(r)
		}
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(context.App.Writer, "Wrote %d accounts to %s\n", len(records), path)
	return nil
}

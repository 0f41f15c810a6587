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

	"github.com/urfave/cli/v2"
)

var getCommand = cli.Command{
	Action: addPerformanceDiagnoses(get),
	Name:   "get",
	Usage:  "prints a single account",
	Flags: []cli.Flag{
		&inputFlag,
		&progressWindowFlag,
		&requiredUserFlag,
		&discriminatorFlag,
	},
}

var removeCommand = cli.Command{
	Action: addPerformanceDiagnoses(remove),
	Name:   "remove",
	Usage:  "removes a single account and prints the resulting index structure",
	Flags: []cli.Flag{
		&inputFlag,
		&progressWindowFlag,
		&requiredUserFlag,
		&discriminatorFlag,
	},
}

func get(context *cli.Context) error {
	d, err := getDiscriminator(context)
	if err != nil {
		return err
	}
	index, err := load(context)
	if err != nil {
		return err
	}
	username := context.String(requiredUserFlag.Name)
	record, found := index.RetrieveRecord(username, d)
	if !found {
		return fmt.Errorf("no such account: %s#%04d", username, d)
	}
	fmt.Fprintln(context.App.Writer, record)
	return nil
}

func remove(context *cli.Context) error {
	d, err := getDiscriminator(context)
	if err != nil {
		return err
	}
	index, err := load(context)
	if err != nil {
		return err
	}
	username := context.String(requiredUserFlag.Name)
	record, found := index.RemoveUser(username, d)
	if !found {
		return fmt.Errorf("no such account: %s#%04d", username, d)
	}

	out := context.App.Writer
	fmt.Fprintf(out, "Removed:\n%v\n", record)
	fmt.Fprintf(out, "Remaining accounts of %s: %d\n", username, index.NumUsers(username))
	fmt.Fprintln(out, index)
	return index.Check()
}

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

	"github.com/DrewBarlow/UTreeDTree/backend/accounttable"
	"github.com/DrewBarlow/UTreeDTree/backend/userindex"
	"github.com/DrewBarlow/UTreeDTree/common"
	"github.com/urfave/cli/v2"
)

var dumpCommand = cli.Command{
	Action: addPerformanceDiagnoses(dump),
	Name:   "dump",
	Usage:  "prints the structure of the index, or of the accounts of a single user",
	Flags: []cli.Flag{
		&inputFlag,
		&progressWindowFlag,
		&userFlag,
	},
}

var treeCommand = cli.Command{
	Action: addPerformanceDiagnoses(tree),
	Name:   "tree",
	Usage:  "renders the user tree of the index",
	Flags: []cli.Flag{
		&inputFlag,
		&progressWindowFlag,
	},
}

var printCommand = cli.Command{
	Action: addPerformanceDiagnoses(printAccounts),
	Name:   "print",
	Usage:  "prints all accounts, or the accounts of a single user",
	Flags: []cli.Flag{
		&inputFlag,
		&progressWindowFlag,
		&userFlag,
	},
}

func dump(context *cli.Context) error {
	index, err := load(context)
	if err != nil {
		return err
	}
	if !context.IsSet(userFlag.Name) {
		fmt.Fprintln(context.App.Writer, index)
		return nil
	}
	accounts, err := retrieveUser(index, context.String(userFlag.Name))
	if err != nil {
		return err
	}
	fmt.Fprintln(context.App.Writer, accounts)
	return nil
}

func tree(context *cli.Context) error {
	index, err := load(context)
	if err != nil {
		return err
	}
	fmt.Fprint(context.App.Writer, index.PrintTree())
	return nil
}

func printAccounts(context *cli.Context) error {
	index, err := load(context)
	if err != nil {
		return err
	}
	out := context.App.Writer
	printRecord := func(r common.Record) {
		fmt.Fprintln(out, r)
	}
	if !context.IsSet(userFlag.Name) {
		index.ForEach(printRecord)
		return nil
	}
	accounts, err := retrieveUser(index, context.String(userFlag.Name))
	if err != nil {
		return err
	}
	accounts.ForEach(printRecord)
	return nil
}

func retrieveUser(index *userindex.Index, username string) (accounttable.View, error) {
	accounts, found := index.Retrieve(username)
	if !found {
		return nil, fmt.Errorf("no such user: %q", username)
	}
	return accounts, nil
}

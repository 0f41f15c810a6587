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

var checkCommand = cli.Command{
	Action: addPerformanceDiagnoses(check),
	Name:   "check",
	Usage:  "performs extensive invariants checks",
	Flags: []cli.Flag{
		&inputFlag,
		&progressWindowFlag,
	},
}

func check(context *cli.Context) error {
	index, err := load(context)
	if err != nil {
		return err
	}
	fmt.Fprintf(context.App.Writer, "Checking index of %d users ...\n", index.Len())
	if err := index.Check(); err != nil {
		return err
	}
	fmt.Fprintf(context.App.Writer, "All checks passed!\n")
	return nil
}

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
	"runtime"

	"github.com/pbnjay/memory"
	"github.com/urfave/cli/v2"
)

var infoCommand = cli.Command{
	Action: addPerformanceDiagnoses(info),
	Name:   "info",
	Usage:  "prints summary information about an account index",
	Flags: []cli.Flag{
		&inputFlag,
		&progressWindowFlag,
		&footprintFlag,
	},
}

var footprintFlag = cli.BoolFlag{
	Name:  "footprint",
	Usage: "print the memory footprint break-down of the index",
}

func info(context *cli.Context) error {
	index, err := load(context)
	if err != nil {
		return err
	}

	out := context.App.Writer
	footprint := index.GetMemoryFootprint()
	fmt.Fprintf(out, "Index contains the following data:\n")
	fmt.Fprintf(out, "\tUsers:          %d\n", index.Len())
	fmt.Fprintf(out, "\tAccounts:       %d\n", index.RecordCount())
	fmt.Fprintf(out, "\tHeight:         %d\n", index.Height())
	fmt.Fprintf(out, "\tHash:           %v\n", index.GetHash())
	fmt.Fprintf(out, "\tMemory:         %d bytes", footprint.Total())
	if total := memory.TotalMemory(); total > 0 {
		fmt.Fprintf(out, " (%.4f%% of system memory)", float64(footprint.Total())*100/float64(total))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "\tHeap in use:    %d bytes\n", getHeapInUse())

	if context.Bool(footprintFlag.Name) {
		fmt.Fprint(out, "\n--- Memory Footprint ---\n")
		fmt.Fprint(out, footprint.ToString("index"))
	}
	return nil
}

// getHeapInUse returns the heap usage of the process after a full collection.
func getHeapInUse() uint64 {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapInuse
}

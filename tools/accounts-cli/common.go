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

	"github.com/DrewBarlow/UTreeDTree/backend/loader"
	"github.com/DrewBarlow/UTreeDTree/backend/userindex"
	"github.com/DrewBarlow/UTreeDTree/common"
	"github.com/DrewBarlow/UTreeDTree/common/interrupt"
	"github.com/DrewBarlow/UTreeDTree/common/progress"
	"github.com/urfave/cli/v2"
)

var (
	inputFlag = cli.StringSliceFlag{
		Name:     "input",
		Usage:    "account files to load, later files are appended to earlier ones",
		Required: true,
	}
	userFlag = cli.StringFlag{
		Name:  "user",
		Usage: "the username to operate on",
	}
	requiredUserFlag = cli.StringFlag{
		Name:     userFlag.Name,
		Usage:    userFlag.Usage,
		Required: true,
	}
	discriminatorFlag = cli.UintFlag{
		Name:     "disc",
		Usage:    "the discriminator of the account to operate on",
		Required: true,
	}
	progressWindowFlag = cli.IntFlag{
		Name:  "progress-window",
		Usage: "number of records between two progress reports, 0 disables them",
		Value: loader.DefaultConfig.ProgressWindow,
	}
)

// load creates an index holding the content of all input files. The load can
// be interrupted with SIGINT, in which case an error is returned.
func load(context *cli.Context) (*userindex.Index, error) {
	ctx, cancel := interrupt.Register(context.Context)
	defer cancel()

	log := progress.NewLog()
	index := userindex.NewIndex()
	for i, path := range context.StringSlice(inputFlag.Name) {
		cfg := loader.DefaultConfig
		cfg.Append = i > 0
		cfg.ProgressWindow = context.Int(progressWindowFlag.Name)
		cfg.Log = log

		log.Printf("Loading %s ...", path)
		if _, err := loader.LoadFile(ctx, path, index, cfg); err != nil {
			return nil, err
		}
	}
	log.Printf("Index holds %d records of %d users", index.RecordCount(), index.Len())
	return index, nil
}

func getDiscriminator(context *cli.Context) (common.Discriminator, error) {
	d := context.Uint(discriminatorFlag.Name)
	if d > uint(common.MaxDiscriminator) {
		return 0, fmt.Errorf("%w: %d", common.ErrDiscriminatorOutOfRange, d)
	}
	return common.Discriminator(d), nil
}

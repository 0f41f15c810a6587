// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package loader reads account records from comma separated text into an
// index and writes them back in the same format.
//
// Every line holds exactly five fields separated by commas:
//
//	username,discriminator,nitro,badge,status
//
// where nitro is an integer flag, any value other than 0 meaning true. There
// is no quoting, so fields can not contain commas or line breaks, and every
// line, including an empty one, must hold all five fields.
package loader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DrewBarlow/UTreeDTree/common"
	"github.com/DrewBarlow/UTreeDTree/common/interrupt"
	"github.com/DrewBarlow/UTreeDTree/common/progress"
)

const (
	ErrMalformedLine = common.ConstError("malformed line")
	ErrInvalidField  = common.ConstError("invalid field")
)

const (
	numFields     = 5
	separator     = ","
	maxLineLength = 1 << 20
)

var fieldNames = [numFields]string{"username", "discriminator", "nitro", "badge", "status"}

// ParseError reports the position of a line that could not be loaded.
type ParseError struct {
	Line  int    // 1-based line number
	Field string // name of the offending field, empty if the whole line is malformed
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: field %s: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Config struct {
	// Append keeps the current content of the sink. Otherwise the sink is
	// cleared before the first record is inserted.
	Append bool
	// ProgressWindow is the number of records between two progress reports.
	ProgressWindow int
	// Log receives progress reports, nil disables them.
	Log *progress.Log
}

var DefaultConfig = Config{
	ProgressWindow: 100_000,
}

// Stats summarizes a load.
type Stats struct {
	Inserted   int // records accepted by the sink
	Duplicates int // records rejected by the sink
}

// LoadFile loads the records of the given file into the sink.
func LoadFile(ctx context.Context, path string, sink Sink, cfg Config) (Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer file.Close()
	stats, err := Load(ctx, file, sink, cfg)
	if err != nil {
		return stats, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return stats, nil
}

// Load reads records line by line and inserts them into the sink. Loading
// stops at the first line that can not be parsed or when the context is
// cancelled; records read before remain in the sink.
func Load(ctx context.Context, r io.Reader, sink Sink, cfg Config) (Stats, error) {
	if !cfg.Append {
		sink.Clear()
	}

	var tracker *progress.RecordTracker
	if cfg.Log != nil {
		tracker = cfg.Log.NewRecordTracker(cfg.ProgressWindow)
	}

	var stats Stats
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for line := 1; scanner.Scan(); line++ {
		if interrupt.IsCancelled(ctx) {
			return stats, interrupt.ErrCanceled
		}
		record, parseErr := parseLine(strings.TrimSuffix(scanner.Text(), "\r"))
		if parseErr != nil {
			parseErr.Line = line
			return stats, parseErr
		}
		added := sink.Insert(record)
		if added {
			stats.Inserted++
		} else {
			stats.Duplicates++
		}
		tracker.Record(added)
	}
	if err := scanner.Err(); err != nil {
		return stats, err
	}

	tracker.Finish()
	return stats, nil
}

func parseLine(line string) (common.Record, *ParseError) {
	fields := strings.Split(line, separator)
	if len(fields) != numFields {
		return common.Record{}, &ParseError{
			Err: fmt.Errorf("%w: got %d fields, want %d", ErrMalformedLine, len(fields), numFields),
		}
	}

	discriminator, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 16)
	if err != nil {
		return common.Record{}, &ParseError{Field: fieldNames[1], Err: fmt.Errorf("%w: %q is not a discriminator", ErrInvalidField, fields[1])}
	}
	nitro, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return common.Record{}, &ParseError{Field: fieldNames[2], Err: fmt.Errorf("%w: %q is not a number", ErrInvalidField, fields[2])}
	}

	record := common.Record{
		Username:      fields[0],
		Discriminator: common.Discriminator(discriminator),
		Nitro:         nitro != 0,
		Badge:         fields[3],
		Status:        fields[4],
	}
	if err := record.Validate(); err != nil {
		return common.Record{}, &ParseError{Field: fieldNames[1], Err: fmt.Errorf("%w: %w", ErrInvalidField, err)}
	}
	return record, nil
}

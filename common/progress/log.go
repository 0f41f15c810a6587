// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package progress provides loggers reporting the advancement of long running
// tasks such as bulk loads.
package progress

import (
	"fmt"
	"io"
	"log"
	"time"
)

// Log prefixes every message with the time elapsed since its creation.
type Log struct {
	start  time.Time
	logger *log.Logger
}

// NewLog creates a new logger writing to the standard logger.
func NewLog() *Log {
	return &Log{start: time.Now(), logger: log.Default()}
}

// NewLogTo creates a new logger writing to the given writer.
func NewLogTo(out io.Writer) *Log {
	return &Log{start: time.Now(), logger: log.New(out, "", log.LstdFlags)}
}

func (l *Log) Print(msg string) {
	elapsed := uint64(time.Since(l.start).Seconds())
	l.logger.Printf("[t=%4d:%02d] - %s\n", elapsed/60, elapsed%60, msg)
}

func (l *Log) Printf(format string, v ...any) {
	l.Print(fmt.Sprintf(format, v...))
}

// RecordTracker counts the records passed to a sink and reports the
// throughput once per window of records. A nil tracker counts nothing and
// reports nothing.
type RecordTracker struct {
	log                *Log
	window             int
	accepted, rejected int
	pending            int
	start, lastReport  time.Time
}

// NewRecordTracker creates a tracker reporting every window records. A window
// of zero or less only reports the final summary.
func (l *Log) NewRecordTracker(window int) *RecordTracker {
	now := time.Now()
	return &RecordTracker{log: l, window: window, start: now, lastReport: now}
}

// Record counts a single record, accepted or rejected by the sink.
func (t *RecordTracker) Record(accepted bool) {
	if t == nil {
		return
	}
	if accepted {
		t.accepted++
	} else {
		t.rejected++
	}
	t.pending++
	if t.window <= 0 || t.pending < t.window {
		return
	}
	now := time.Now()
	t.log.Printf("read %d records, %.2f records/s", t.Count(), float64(t.pending)/now.Sub(t.lastReport).Seconds())
	t.pending = 0
	t.lastReport = now
}

// Count returns the number of records seen so far.
func (t *RecordTracker) Count() int {
	if t == nil {
		return 0
	}
	return t.accepted + t.rejected
}

// Finish logs a summary of all counted records.
func (t *RecordTracker) Finish() {
	if t == nil {
		return
	}
	t.log.Printf("loaded %d records, %d duplicates skipped, took %.1fs", t.accepted, t.rejected, time.Since(t.start).Seconds())
}

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DrewBarlow/UTreeDTree/common"
)

// Write encodes all records visited by the given iteration function, for
// instance (*userindex.Index).ForEach, in the format read by Load. Records
// with text fields holding a comma or a line break can not be encoded; the
// first of them aborts the write with an ErrInvalidField error.
func Write(w io.Writer, records func(func(common.Record))) error {
	writer := bufio.NewWriter(w)
	var err error
	records(func(r common.Record) {
		if err != nil {
			return
		}
		if err = checkEncodable(r); err != nil {
			return
		}
		nitro := 0
		if r.Nitro {
			nitro = 1
		}
		_, err = writer.WriteString(strings.Join([]string{
			r.Username,
			strconv.Itoa(int(r.Discriminator)),
			strconv.Itoa(nitro),
			r.Badge,
			r.Status,
		}, separator) + "\n")
	})
	if err != nil {
		return err
	}
	return writer.Flush()
}

func checkEncodable(r common.Record) error {
	texts := [...]struct {
		field int
		value string
	}{{0, r.Username}, {3, r.Badge}, {4, r.Status}}
	for _, text := range texts {
		if strings.ContainsAny(text.value, separator+"\r\n") {
			return fmt.Errorf("%w: %s %q of account %s#%d contains a separator or line break",
				ErrInvalidField, fieldNames[text.field], text.value, r.Username, r.Discriminator)
		}
	}
	return nil
}

// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package wiki

import (
	"bufio"
	"io"
	"strings"

	"go.xrstf.de/release_calendar/pkg/calendar"
)

const (
	tableOpen     = `{| class="wikitable" style="padding:10; font-size:100%; text-align:center;"`
	tableClose    = `|}`
	rowSeparator  = `|-`
	cellSeparator = ` || `
)

// Render writes the table as MediaWiki table markup.
func Render(w io.Writer, table calendar.Table) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(tableOpen + "\n")

	for _, row := range table {
		bw.WriteString(rowSeparator + "\n")
		bw.WriteString("| " + strings.Join(row, cellSeparator) + "\n")
	}

	bw.WriteString(tableClose + "\n")

	return bw.Flush()
}

func Markup(table calendar.Table) string {
	var b strings.Builder
	// strings.Builder never fails to write
	_ = Render(&b, table)

	return b.String()
}

// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package calendar

import (
	"fmt"
	"sort"
	"time"

	"go.xrstf.de/release_calendar/pkg/github"
)

const (
	DateLayout = "Jan 02, 2006"
	TitleLabel = "Title"
)

// Column is a date column derived from a milestone's due date.
type Column struct {
	Label  string
	Offset int
}

// DefaultColumns are the columns of the release schedule: the milestone's
// due date and the release one week later.
var DefaultColumns = []Column{
	{Label: "Due date", Offset: 0},
	{Label: "Release", Offset: 7},
}

type Row []string

// Table is a header row followed by one row per milestone.
type Table []Row

func Bold(text string) string {
	return fmt.Sprintf("'''%s'''", text)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func Header(columns []Column) Row {
	row := Row{Bold(TitleLabel)}
	for _, column := range columns {
		row = append(row, Bold(column.Label))
	}

	return row
}

// BuildTable sorts the milestones by due date (earliest first) and renders
// one row per milestone. Milestones sharing a due date keep their input order.
func BuildTable(milestones []github.Milestone, columns []Column) Table {
	sorted := make([]github.Milestone, len(milestones))
	copy(sorted, milestones)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueOn.Before(sorted[j].DueOn)
	})

	table := Table{Header(columns)}

	for _, milestone := range sorted {
		row := Row{milestone.Title}
		for _, column := range columns {
			row = append(row, FormatDate(milestone.DueOn.AddDate(0, 0, column.Offset)))
		}

		table = append(table, row)
	}

	return table
}

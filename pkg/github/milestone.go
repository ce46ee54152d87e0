// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package github

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dueDateLayout = "2006-01-02"

// RawMilestone is a milestone as returned by the REST API. Both fields are
// pointers so that a missing title can be told apart from an empty one.
type RawMilestone struct {
	Title *string `json:"title"`
	DueOn *string `json:"due_on"`
}

// Milestone is a milestone with a due date. DueOn is a calendar date
// (midnight UTC); the time of day reported by the API is discarded.
type Milestone struct {
	Title string
	DueOn time.Time
}

// ShapeError is returned when the API response does not look like a list of
// milestones.
type ShapeError struct {
	Path    string
	Message string
}

func (e *ShapeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid milestone data: %s", e.Message)
	}

	return fmt.Sprintf("invalid milestone data at %s: %s", e.Path, e.Message)
}

func DecodeMilestones(data []byte) ([]RawMilestone, error) {
	raw := []RawMilestone{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ShapeError{Message: fmt.Sprintf("malformed JSON: %v", err)}
	}

	for i, milestone := range raw {
		if milestone.Title == nil {
			return nil, &ShapeError{
				Path:    fmt.Sprintf("[%d].title", i),
				Message: "missing title",
			}
		}
	}

	return raw, nil
}

// NormalizeMilestones converts raw milestones into dated milestones. Milestones
// without a due date are skipped, they are not scheduled for a release yet.
func NormalizeMilestones(raw []RawMilestone) ([]Milestone, error) {
	milestones := []Milestone{}

	for i, milestone := range raw {
		if milestone.Title == nil {
			return nil, &ShapeError{
				Path:    fmt.Sprintf("[%d].title", i),
				Message: "missing title",
			}
		}

		if milestone.DueOn == nil {
			continue
		}

		dueOn, err := ParseDueDate(*milestone.DueOn)
		if err != nil {
			return nil, &ShapeError{
				Path:    fmt.Sprintf("[%d].due_on", i),
				Message: err.Error(),
			}
		}

		milestones = append(milestones, Milestone{
			Title: *milestone.Title,
			DueOn: dueOn,
		})
	}

	return milestones, nil
}

// ParseDueDate parses the date portion of an ISO-8601 date-time string,
// ignoring everything after the "T" separator.
func ParseDueDate(value string) (time.Time, error) {
	date := strings.SplitN(value, "T", 2)[0]

	dueOn, err := time.Parse(dueDateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q", value)
	}

	return dueOn, nil
}

// FilterYear returns the milestones due in the given year.
func FilterYear(milestones []Milestone, year int) []Milestone {
	result := []Milestone{}

	for _, milestone := range milestones {
		if milestone.DueOn.Year() == year {
			result = append(result, milestone)
		}
	}

	return result
}

// ParseMilestones validates and decodes an API response and returns all
// dated milestones that are due in the given year, in response order.
func ParseMilestones(data []byte, year int) ([]Milestone, error) {
	if err := ValidateMilestones(data); err != nil {
		return nil, err
	}

	raw, err := DecodeMilestones(data)
	if err != nil {
		return nil, err
	}

	milestones, err := NormalizeMilestones(raw)
	if err != nil {
		return nil, err
	}

	return FilterYear(milestones, year), nil
}

// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package github

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// milestonesSchema describes the parts of the milestone listing response
// that are used; all other fields are ignored.
const milestonesSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["title"],
		"properties": {
			"title": {"type": "string"},
			"due_on": {"type": ["string", "null"]}
		}
	}
}`

var milestoneSchema = jsonschema.MustCompileString("milestones.json", milestonesSchema)

// ValidateMilestones checks that data is a JSON array of milestone objects.
func ValidateMilestones(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var doc interface{}
	if err := decoder.Decode(&doc); err != nil {
		return &ShapeError{Message: fmt.Sprintf("malformed JSON: %v", err)}
	}

	if err := milestoneSchema.Validate(doc); err != nil {
		return schemaError(err)
	}

	return nil
}

func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ShapeError{Message: err.Error()}
	}

	leaf := firstLeaf(ve)

	return &ShapeError{
		Path:    jsonPointerToPath(leaf.InstanceLocation),
		Message: leaf.Message,
	}
}

func firstLeaf(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}

	return err
}

// jsonPointerToPath turns "/0/title" into "[0].title".
func jsonPointerToPath(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}

	var b strings.Builder
	for _, segment := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		segment = strings.ReplaceAll(strings.ReplaceAll(segment, "~1", "/"), "~0", "~")

		if isIndex(segment) {
			fmt.Fprintf(&b, "[%s]", segment)
			continue
		}

		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(segment)
	}

	return b.String()
}

func isIndex(segment string) bool {
	if segment == "" {
		return false
	}

	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package github

import (
	"errors"
	"fmt"
	"strings"
)

type Repository struct {
	Owner string
	Name  string
}

func NewRepository(owner string, name string) *Repository {
	return &Repository{
		Owner: owner,
		Name:  name,
	}
}

func (r *Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

func (r *Repository) Validate() error {
	if r.Owner == "" {
		return errors.New("owner cannot be empty")
	}

	if r.Name == "" {
		return errors.New("repository name cannot be empty")
	}

	if strings.Contains(r.Owner, "/") || strings.Contains(r.Name, "/") {
		return fmt.Errorf(`not a valid repository %q, owner and name must be given as separate arguments`, r.FullName())
	}

	return nil
}

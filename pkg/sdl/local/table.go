// Copyright go-opensdl authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
// Package local implements the Local Variable Table (spec.md §4.7): a
// name-to-integer mapping used for parse-time arithmetic (#n variables),
// scoped to the enclosing module.
package local

import "fmt"

// UndefinedSymbolError is UNDEFSYM: a Get named a variable never Set
// (spec.md §4.7).
type UndefinedSymbolError struct {
	Name string
}

func (e *UndefinedSymbolError) Error() string {
	return fmt.Sprintf("UNDEFSYM: undefined local variable %q", e.Name)
}

// Table holds (name, int64) bindings in a plain Go map, matching
// go-corset's pkg/util/maps.go-style small helper maps rather than pulling
// in a dedicated ordered-map dependency for what is a handful of entries
// per translation.
type Table struct {
	values map[string]int64
}

// New constructs an empty Table.
func New() *Table {
	return &Table{values: make(map[string]int64)}
}

// Get returns the value bound to name, or an *UndefinedSymbolError if name
// was never Set.
func (t *Table) Get(name string) (int64, error) {
	v, ok := t.values[name]
	if !ok {
		return 0, &UndefinedSymbolError{Name: name}
	}
	//
	return v, nil
}

// Set updates name's binding if it exists, or creates it otherwise (spec.md
// §4.7 "Set either updates an existing entry or creates a new one").
func (t *Table) Set(name string, value int64) {
	t.values[name] = value
}

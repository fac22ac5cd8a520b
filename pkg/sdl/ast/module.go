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
package ast

// Module is the top-level named container (spec.md §3): exactly one is
// open at a time for the duration of a translation, and tearing it down
// releases every entity registered within it.
type Module struct {
	named
	// Ident is the optional ident-string given on the MODULE declaration.
	Ident string
	//
	Constants  []*Constant
	Declares   []*Declare
	Items      []*Item
	Aggregates []*Aggregate
	Enums      []*Enumerate
	Entries    []*Entry
}

// NewModule constructs an empty, open module.
func NewModule(name, ident string) *Module {
	return &Module{named: named{name}, Ident: ident}
}

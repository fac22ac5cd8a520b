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

import "github.com/jdbelanger/go-opensdl/pkg/sdl/types"

// PassingDiscipline enumerates how a Parameter is passed (spec.md §3).
type PassingDiscipline uint8

// Passing disciplines.
const (
	ByDescriptor PassingDiscipline = iota
	ByShortDescriptor
	ByValue
	ByReference
)

// Parameter is a typed argument of an Entry (spec.md §3).
type Parameter struct {
	Name       string
	DataType   types.ID
	Passing    PassingDiscipline
	In         bool
	Out        bool
	Optional   bool
	List       bool
	Default    string
	Dimension  Dimension
	LengthAttr string
}

// Entry is a callable signature: linkage name, alias, optional return type,
// VARIABLE flag, ordered parameter list (spec.md §3).
type Entry struct {
	named
	CommonAttributes
	Linkage    string
	Alias      string
	ReturnType types.ID
	HasReturn  bool
	Variable   bool
	Parameters []Parameter
}

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

// Constant is a named integer or string value, with an optional
// counter/increment used to generate a series of related constants from
// one declaration (spec.md §3, §4.9 "CONSTANT specifically ... expands
// series").
type Constant struct {
	named
	CommonAttributes
	// TypeNameHint is an optional textual type hint carried for emitters.
	TypeNameHint string
	Radix        Radix
	//
	IsString bool
	IntValue int64
	StrValue string
	// InSeries marks a constant generated as one member of a CONSTANT
	// series; Increment is then the step between consecutive members'
	// values (spec.md §4.9, SPEC_FULL.md §4 item 1 per-member comments).
	InSeries  bool
	Increment int64
}

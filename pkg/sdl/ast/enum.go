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

// EnumMember is one ordered member of an Enumerate, carrying an integer
// value that is either explicit or auto-assigned (spec.md §3).
type EnumMember struct {
	Name    string
	Value   int64
	Comment string
}

// Enumerate is an enumeration with ordered members (spec.md §3).
type Enumerate struct {
	named
	CommonAttributes
	Members []EnumMember
}

// SizeOf implements oracle.Sized: ENUMs report the integer size used to
// store their values (spec.md §4.3 "ENUM: integer size"), fixed at 4 bytes.
func (e *Enumerate) SizeOf() int { return 4 }

// NextAutoValue returns the value the next member would receive if none is
// given explicitly: one more than the previous member's value, or 0 for the
// first member.
func (e *Enumerate) NextAutoValue() int64 {
	if len(e.Members) == 0 {
		return 0
	}
	//
	return e.Members[len(e.Members)-1].Value + 1
}

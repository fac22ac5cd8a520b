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
// Package ast defines the core entity types of the OpenSDL semantic model:
// Module, Local Variable, Constant, Declare, Item, Aggregate, Member,
// Enumerate/EnumMember, Entry and Parameter (spec.md §3). These are plain
// value/pointer types populated by the Completion Dispatcher and the
// Aggregate Layout Engine; they carry no behavior beyond small predicates
// and the types.Named contract needed to register them.
//
// Grounded on pkg/corset/ast/declaration.go and pkg/corset/ast/binding.go:
// the teacher models each declaration kind as its own struct implementing a
// small common interface (ast.Binding), which is the same shape used here
// for Common Attributes and types.Named.
package ast

import "github.com/jdbelanger/go-opensdl/pkg/sdl/types"

// Dimension attaches array-like multiplicity to a declaration: an inclusive
// [Low, High] bound pair (spec.md §3, Glossary "Dimension"). A zero value
// Dimension is not dimensioned; use InUse to test.
type Dimension struct {
	Low, High int64
	InUse     bool
}

// Count returns the number of elements: High-Low+1 when dimensioned, else 1
// (spec.md §8 Boundary behaviors: "dimension(lo=hi) yields element count
// 1").
func (d Dimension) Count() int64 {
	if !d.InUse {
		return 1
	}
	//
	return d.High - d.Low + 1
}

// CommonAttributes are the prefix/tag/comment attributes shared by
// Constant, Declare and Item (spec.md §3).
type CommonAttributes struct {
	Prefix  string
	Tag     string
	Comment string
}

// StorageClass enumerates an Item's storage discipline (spec.md §3).
type StorageClass uint8

// Storage class values. Zero value StorageNone means no explicit class was
// given.
const (
	StorageNone StorageClass = iota
	StorageCommon
	StorageGlobal
	StorageTypedef
)

// Alignment enumerates an Aggregate's alignment policy (spec.md §3).
type Alignment uint8

// Alignment policy values.
const (
	AlignNatural Alignment = iota
	AlignByte
	AlignWord
	AlignLong
	AlignQuad
	AlignOcta
	AlignPage
	AlignExplicit // explicit power-of-two, see Aggregate.BaseAlignExp
)

// Radix enumerates how a Constant's value is rendered (spec.md §3).
type Radix uint8

// Radix values; RadixDefault defers to the target emitter's default.
const (
	RadixDefault Radix = iota
	RadixDecimal
	RadixOctal
	RadixHex
	RadixBinary
)

// SourceLocation records the span of source text an action carried, passed
// through from the (out-of-scope) lexer on every action (spec.md §6.1).
type SourceLocation struct {
	FirstLine, LastLine     int
	FirstColumn, LastColumn int
}

// named is embedded by every record types.Registry.Register accepts, so
// each only needs to store its own name field and delegate TypeName().
type named struct {
	Name string
}

// TypeName implements types.Named.
func (n named) TypeName() string { return n.Name }

var _ types.Named = named{}

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
// Package types implements the OpenSDL identifier space: the four disjoint
// numeric ranges (base types, DECLAREs, ITEMs, AGGREGATEs, plus the ENUM
// range above them) and the registry that resolves names to IDs within them.
//
// Grounded on original_source/src/opensdl_defs.h for the concrete base-type
// IDs and range boundaries, and on go-corset's pkg/corset/compiler/scope.go
// ModuleScope ("map name to slice index, never move once assigned") for the
// registry's name -> ID resolution idiom.
package types

// ID is a stable numeric type identifier. Per spec.md §4.3, signedness of
// the signable base integer kinds is encoded by negating the ID: a positive
// ID always names the unsigned form, the corresponding negative ID names
// the signed form of the same base kind. Every other kind of ID (user
// DECLAREs, ITEMs, AGGREGATEs, ENUMs, and the non-signable base kinds) is
// always non-negative.
type ID int

// NoneID is the sentinel returned for "not a type" / "unresolved".
const NoneID ID = 0

// Base type IDs, 1..63. Grounded on opensdl_defs.h's SDL_K_TYPE_* constants,
// extended with the float/complex/bitfield/address families spec.md §3
// enumerates that the original encodes via separate modifier bits rather
// than separate IDs; here each gets its own ID so the Type Registry and the
// Oracle can each remain a flat switch, matching the teacher's preference
// for explicit enumerations (see pkg/corset/ast/type.go's Type variants)
// over bit-packed modifiers.
const (
	Byte ID = iota + 1
	Word
	Long
	Quad
	Octa
	FFloat // VAX F_floating
	DFloat // VAX D_floating
	GFloat // VAX G_floating
	HFloat // VAX H_floating
	SFloat // IEEE single
	TFloat // IEEE double
	ComplexFFloat
	ComplexDFloat
	ComplexGFloat
	ComplexHFloat
	ComplexSFloat
	ComplexTFloat
	Char
	CharVary
	CharStar
	Decimal
	Bitfield
	BitfieldByte
	BitfieldWord
	BitfieldLong
	BitfieldQuad
	Addr
	AddrLong
	AddrQuad
	AddrHW // hardware-word address; sized from word_size_bits
	Any
	Void
	Struct
	Union
	Bool
	Enum  // generic ENUM-valued base type tag (distinct from the user ENUM ID range)
	Entry // generic procedure-value base type tag

	// BaseTypeMin/BaseTypeMax bound the base type range per spec.md §3.
	BaseTypeMin ID = 1
	BaseTypeMax ID = 63

	// DeclareMin/DeclareMax bound the user DECLARE range.
	DeclareMin ID = 64
	DeclareMax ID = 255

	// ItemMin/ItemMax bound the user ITEM range.
	ItemMin ID = 256
	ItemMax ID = 511

	// AggregateMin/AggregateMax bound the user AGGREGATE range.
	AggregateMin ID = 512
	AggregateMax ID = 1023

	// EnumMin is the first ID of the contiguous ENUM range above
	// AggregateMax; it has no fixed upper bound in the original and none is
	// imposed here either.
	EnumMin ID = 1024
)

// signableBase is the set of base kinds for which is_unsigned's
// sign-by-negation convention applies (spec.md §4.3).
var signableBase = map[ID]bool{
	Byte: true, Word: true, Long: true, Quad: true, Octa: true,
	Bitfield: true, BitfieldByte: true, BitfieldWord: true,
	BitfieldLong: true, BitfieldQuad: true,
}

// IsSignable reports whether id's base kind participates in the
// sign-by-negation convention.
func IsSignable(id ID) bool {
	return signableBase[normalize(id)]
}

// Signed returns the signed-variant ID for a signable base kind.
func Signed(id ID) ID {
	n := normalize(id)
	if !signableBase[n] {
		return id
	}
	//
	return -n
}

// Unsigned returns the unsigned-variant (canonical, positive) ID for a
// signable base kind.
func Unsigned(id ID) ID {
	return normalize(id)
}

// normalize strips the sign-by-negation encoding, returning the canonical
// (always positive) base kind ID.
func normalize(id ID) ID {
	if id < 0 {
		return -id
	}
	//
	return id
}

// IsBase reports whether id (after normalizing away any sign encoding)
// falls within the base type range.
func IsBase(id ID) bool {
	n := normalize(id)
	return n >= BaseTypeMin && n <= BaseTypeMax
}

// IsDeclare reports whether id is within the user DECLARE range.
func IsDeclare(id ID) bool {
	return id >= DeclareMin && id <= DeclareMax
}

// IsItem reports whether id is within the user ITEM range.
func IsItem(id ID) bool {
	return id >= ItemMin && id <= ItemMax
}

// IsAggregate reports whether id is within the user AGGREGATE range.
func IsAggregate(id ID) bool {
	return id >= AggregateMin && id <= AggregateMax
}

// IsEnum reports whether id is within the (open-ended) ENUM range.
func IsEnum(id ID) bool {
	return id >= EnumMin
}

// baseNames backs name resolution for the fixed base type vocabulary; user
// types are resolved separately via the Registry.
var baseNames = map[string]ID{
	"BYTE": Byte, "WORD": Word, "LONG": Long, "QUAD": Quad, "OCTA": Octa,
	"F_FLOATING": FFloat, "D_FLOATING": DFloat, "G_FLOATING": GFloat, "H_FLOATING": HFloat,
	"S_FLOATING": SFloat, "T_FLOATING": TFloat,
	"COMPLEX_F_FLOATING": ComplexFFloat, "COMPLEX_D_FLOATING": ComplexDFloat,
	"COMPLEX_G_FLOATING": ComplexGFloat, "COMPLEX_H_FLOATING": ComplexHFloat,
	"COMPLEX_S_FLOATING": ComplexSFloat, "COMPLEX_T_FLOATING": ComplexTFloat,
	"CHAR": Char, "CHAR_VARY": CharVary, "CHAR_STAR": CharStar, "DECIMAL": Decimal,
	"BITFIELD": Bitfield, "BITFIELD_B": BitfieldByte, "BITFIELD_W": BitfieldWord,
	"BITFIELD_L": BitfieldLong, "BITFIELD_Q": BitfieldQuad,
	"ADDRESS": Addr, "ADDRESS_L": AddrLong, "ADDRESS_Q": AddrQuad, "ADDRESS_HW": AddrHW,
	"ANY": Any, "VOID": Void, "STRUCT": Struct, "UNION": Union, "BOOLEAN": Bool,
	"ENUM": Enum, "ENTRY": Entry,
}

// LookupBaseName resolves a base type keyword to its ID, or NoneID (with
// ok=false) if the name is not a recognized base type keyword.
func LookupBaseName(name string) (ID, bool) {
	id, ok := baseNames[name]
	return id, ok
}

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
// Package oracle implements the Size/Alignment Oracle (spec.md §4.3): given
// a type ID and the configured word size, it returns the byte size and
// natural alignment of that type, and a handful of pure classification
// predicates used throughout the Layout Engine and emitters.
//
// Grounded on original_source/lib/util/opensdl_utility.c's sdl_sizeof
// switch for the concrete per-base-type sizes, and on go-corset's
// pkg/corset/ast/type.go Type predicate methods (IsBool, BitWidth, ...) for
// the shape of a small family of pure predicates over a type identifier.
package oracle

import "github.com/jdbelanger/go-opensdl/pkg/sdl/types"

// Sized is implemented by any registered user-type record (DECLARE, ITEM,
// AGGREGATE, ENUM) that carries a cached size computed at registration or
// completion time (spec.md §4.3).
type Sized interface {
	SizeOf() int
}

// Registry is the subset of *types.Registry the Oracle needs: ID-keyed
// lookup of a registered record's cached size.
type Registry interface {
	LookupByID(id types.ID) (types.Named, bool)
}

// Oracle computes sizes and alignments for a fixed word size.
type Oracle struct {
	// WordSizeBits is the configured target word size (32 or 64), driving
	// ADDR/PTR/ENTRY and hardware-word address sizing (spec.md §4.3).
	WordSizeBits uint
	registry     Registry
}

// New constructs an Oracle bound to registry for resolving user-type sizes,
// with the given word size in bits (32 or 64).
func New(registry Registry, wordSizeBits uint) *Oracle {
	return &Oracle{WordSizeBits: wordSizeBits, registry: registry}
}

// SizeOf returns the per-unit byte size of id. For CHAR_VARY and DECIMAL
// this is the *element* size (spec.md §4.3: "CHAR_VARY reports its element
// size (1) ... DECIMAL reports 1"); the Layout Engine computes the total
// storage cost separately via RealSize.
func (o *Oracle) SizeOf(id types.ID) int {
	switch {
	case types.IsBase(id):
		return baseSize(types.Unsigned(id), o.WordSizeBits)
	default:
		if rec, ok := o.registry.LookupByID(id); ok {
			if sized, ok := rec.(Sized); ok {
				return sized.SizeOf()
			}
		}
		//
		return 0
	}
}

func baseSize(id types.ID, wordSizeBits uint) int {
	switch id {
	case types.Byte, types.BitfieldByte:
		return 1
	case types.Word, types.BitfieldWord:
		return 2
	case types.Long, types.BitfieldLong, types.FFloat, types.SFloat:
		return 4
	case types.Quad, types.BitfieldQuad, types.DFloat, types.GFloat, types.TFloat:
		return 8
	case types.Octa, types.HFloat:
		return 16
	case types.ComplexFFloat, types.ComplexSFloat:
		return 8
	case types.ComplexDFloat, types.ComplexGFloat, types.ComplexTFloat:
		return 16
	case types.ComplexHFloat:
		return 32
	case types.Char, types.CharVary, types.CharStar:
		return 1
	case types.Decimal:
		return 1
	case types.Bitfield:
		return 0
	case types.Addr, types.Entry:
		return int(wordSizeBits / 8)
	case types.AddrLong:
		return 4
	case types.AddrQuad:
		return 8
	case types.AddrHW:
		return int(wordSizeBits / 8)
	case types.Any, types.Void, types.Struct, types.Union:
		return 0
	case types.Bool:
		return 1
	case types.Enum:
		return 4
	default:
		return 0
	}
}

// IsUnsigned returns true for the unsigned base integer types. Per spec.md
// §4.3, signedness is encoded by negating the ID for signed variants, so
// callers (and this function) must normalize the sign before consulting the
// size table; IsUnsigned reports the *un-normalized* sign of id itself.
func IsUnsigned(id types.ID) bool {
	return types.IsSignable(id) && id >= 0
}

// IsAddress reports whether id names one of the ADDR-family base types.
func IsAddress(id types.ID) bool {
	switch types.Unsigned(id) {
	case types.Addr, types.AddrLong, types.AddrQuad, types.AddrHW:
		return true
	default:
		return false
	}
}

// AlignmentOf returns the natural alignment, in bytes, of id: the largest
// power of two not exceeding its size (and never more than the word size),
// matching the "natural" alignment policy an AGGREGATE may select (spec.md
// §3 Aggregate.alignment policy).
func (o *Oracle) AlignmentOf(id types.ID) int {
	size := o.SizeOf(id)
	if size <= 0 {
		return 1
	}
	//
	align := 1
	for align*2 <= size && align*2 <= int(o.WordSizeBits/8) {
		align *= 2
	}
	//
	return align
}

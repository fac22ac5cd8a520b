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
// Package layout implements the Aggregate Layout Engine (spec.md §4.8),
// the hardest single component of the core: computing member byte/bit
// offsets across nested subaggregates, unions, bitfields, fills,
// dimensions, and ORIGIN relocation.
//
// Grounded on pkg/corset/compiler/allocation.go's Register bookkeeping
// ("walk a tree of members accumulating or maximizing size by kind") for
// the struct-sum-vs-union-max shape, and directly on
// original_source/lib/util/opensdl_utility.c's sdl_offset/realSize
// arithmetic quoted verbatim in spec.md §4.8.
package layout

import (
	"github.com/jdbelanger/go-opensdl/pkg/sdl/ast"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/errvec"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/oracle"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/types"
)

// Engine computes offsets and sizes for one translation's aggregates,
// reporting diagnostics (UNALIGNED, ZEROLEN, UNDEFORG, BYTSIZ, ...) to a
// shared Error Vector rather than failing outright -- spec.md §4.8
// Failure semantics: "the engine still produces a best-effort record so
// downstream errors can be reported in one pass".
type Engine struct {
	oracle *oracle.Oracle
	errs   *errvec.Vector
	// CheckAlignment enables the UNALIGNED diagnostic for members not on
	// their natural boundary (the --member / "item-level alignment check
	// option" of spec.md §4.8).
	CheckAlignment bool
}

// New constructs an Engine using o for sizes/alignments and reporting into
// errs.
func New(o *oracle.Oracle, errs *errvec.Vector) *Engine {
	return &Engine{oracle: o, errs: errs}
}

// alignmentPolicyBytes maps an Alignment policy to a concrete byte
// boundary for an aggregate's Fill padding, given the natural alignment of
// its widest member for AlignNatural.
func (e *Engine) alignmentPolicyBytes(agg *ast.Aggregate, widest int) int {
	switch agg.Alignment {
	case ast.AlignByte:
		return 1
	case ast.AlignWord:
		return 2
	case ast.AlignLong:
		return 4
	case ast.AlignQuad:
		return 8
	case ast.AlignOcta:
		return 16
	case ast.AlignPage:
		return 4096
	case ast.AlignExplicit:
		return 1 << uint(agg.BaseAlignExp)
	case ast.AlignNatural:
		fallthrough
	default:
		if widest <= 0 {
			return 1
		}
		//
		return widest
	}
}

func roundUp(value int64, multiple int) int64 {
	if multiple <= 1 {
		return value
	}
	//
	m := int64(multiple)
	r := value % m
	if r == 0 {
		return value
	}
	//
	return value + (m - r)
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	//
	return b
}

// RealSize computes the total storage cost of one item or subaggregate
// member, per spec.md §4.8's formula: CHAR_VARY is size*length+2, DECIMAL
// is size*precision+1, otherwise size*max(length,1).
func (e *Engine) RealSize(m *ast.Member) int64 {
	if m.IsSubaggregate() {
		return int64(m.Subaggregate.SizeOf())
	}
	//
	it := m.Item
	base := types.Unsigned(it.DataType)
	size := int64(e.oracle.SizeOf(it.DataType))
	//
	switch base {
	case types.CharVary:
		return size*maxInt64(it.CharLength, 1) + 2
	case types.Decimal:
		return size*maxInt64(it.Precision, 1) + 1
	case types.Char, types.CharStar:
		return size * maxInt64(it.CharLength, 1)
	default:
		return size * maxInt64(it.CharLength, 1)
	}
}

// dimensionCount returns a member's element count: High-Low+1 when
// dimensioned, else 1.
func dimensionCount(m *ast.Member) int64 {
	if m.IsSubaggregate() {
		return m.Subaggregate.Dimension.Count()
	}
	//
	return m.Item.Dimension.Count()
}

// bitfieldUnitBits returns the storage-unit width, in bits, of a bitfield
// member's declared base (sub)type.
func (e *Engine) bitfieldUnitBits(m *ast.Member) int64 {
	size := int64(e.oracle.SizeOf(m.Item.SubType))
	if size <= 0 {
		size = 1
	}
	//
	return size * 8
}

// nextOffsets computes where the *next* member of agg should start, per
// spec.md §4.8's Offset resolution (byte) and (bit). It does not yet know
// about ORIGIN -- that relocation is applied once, at Close.
func (e *Engine) nextOffsets(agg *ast.Aggregate) (byteOffset, bitOffset int64) {
	last := agg.LastRealMember()
	if last == nil {
		return 0, 0
	}
	//
	if agg.Style == ast.StyleUnion {
		// Implied unions: every member shares the aggregate's starting
		// offset (spec.md §4.8 "Implied unions").
		return 0, 0
	}
	//
	if last.IsBitfield() {
		nextBit := last.BitOffset + last.BitLength
		unitBits := e.bitfieldUnitBits(last)
		//
		if nextBit >= unitBits {
			// Crossing the base type's bit width starts a new storage
			// unit: byte offset advances by the base type size, bit
			// offset resets to 0 (spec.md §4.8 Offset resolution (bit)).
			return last.ByteOffset + unitBits/8, 0
		}
		//
		return last.ByteOffset, nextBit
	}
	//
	return last.ByteOffset + e.RealSize(last)*dimensionCount(last), 0
}

// naturalAlignStart rounds a proposed start offset up to the natural
// alignment of the member about to be placed there, unless the enclosing
// aggregate has NoAlign set.
func (e *Engine) naturalAlignStart(agg *ast.Aggregate, m *ast.Member, proposed int64) int64 {
	if agg.NoAlign || m.IsBitfield() || m.IsComment() {
		return proposed
	}
	//
	var align int
	if m.IsSubaggregate() {
		align = e.alignmentPolicyBytes(m.Subaggregate, 1)
	} else {
		align = e.oracle.AlignmentOf(m.Item.DataType)
	}
	//
	if base := m.BaseAlignOverride(); base.HasValue() {
		align = 1 << uint(base.Unwrap())
	}
	//
	return roundUp(proposed, align)
}

// PlaceMember computes and assigns the byte (and, for bitfields, bit)
// offset of m within agg, then appends it to agg's member list. Comment
// members contribute no offset and are simply appended. Reports ZEROLEN
// for a dimensioned member whose element count is non-positive.
func (e *Engine) PlaceMember(agg *ast.Aggregate, m *ast.Member) error {
	if m.IsComment() {
		agg.Members = append(agg.Members, m)
		return nil
	}
	//
	if !m.IsSubaggregate() && m.Item.Dimension.InUse && m.Item.Dimension.Count() <= 0 {
		e.errs.Append(errvec.New("ZEROLEN", errvec.StringArg(m.Name)))
	}
	//
	byteOff, bitOff := e.nextOffsets(agg)
	byteOff = e.naturalAlignStart(agg, m, byteOff)
	//
	m.ByteOffset = byteOff
	if m.IsBitfield() {
		m.BitOffset = bitOff
	}
	//
	if e.CheckAlignment && !m.IsBitfield() && !m.IsSubaggregate() {
		align := e.oracle.AlignmentOf(m.Item.DataType)
		if align > 1 && m.ByteOffset%int64(align) != 0 {
			e.errs.Append(errvec.New("UNALIGNED", errvec.StringArg(m.Name)))
		}
	}
	//
	agg.Members = append(agg.Members, m)
	//
	return nil
}

// resolveOrigin finds agg's ORIGIN member by name, reporting UNDEFORG
// (non-fatal) if it is missing. Returns the member's absolute byte offset,
// or 0 if there is no ORIGIN or it could not be resolved.
func (e *Engine) resolveOrigin(agg *ast.Aggregate) int64 {
	if agg.Origin == "" {
		return 0
	}
	//
	member, ok := agg.MemberByName(agg.Origin)
	if !ok {
		e.errs.Append(errvec.New("UNDEFORG", errvec.StringArg(agg.Origin)))
		return 0
	}
	//
	agg.SetOriginOffset(member.ByteOffset)
	//
	return member.ByteOffset
}

// Close finalizes agg: resolves ORIGIN, computes the final size
// (struct-sum / union-max, tail-padded per Fill), relocates every direct
// member's reported offset to be ORIGIN-relative, and marks agg closed
// (spec.md §4.8 Completion).
func (e *Engine) Close(agg *ast.Aggregate) error {
	origin := e.resolveOrigin(agg)
	//
	var size int64
	widest := 1
	//
	switch agg.Style {
	case ast.StyleUnion:
		for _, m := range agg.Members {
			if m.IsComment() {
				continue
			}
			//
			candidate := e.memberExtent(m)
			if candidate > size {
				size = candidate
			}
			//
			if a := e.alignmentOf(m); a > widest {
				widest = a
			}
		}
		//
		size -= origin
	default:
		last := agg.LastRealMember()
		if last != nil {
			size = last.ByteOffset + e.memberExtent(last) - origin
		}
		//
		for _, m := range agg.Members {
			if a := e.alignmentOf(m); a > widest {
				widest = a
			}
		}
	}
	//
	if agg.Fill {
		bound := e.alignmentPolicyBytes(agg, widest)
		size = roundUp(size, bound)
	}
	//
	if size < 0 {
		e.errs.Append(errvec.New("NEGORIGIN", errvec.StringArg(agg.Origin)))
	}
	//
	if last := agg.LastRealMember(); last != nil && last.IsBitfield() {
		if unit := e.bitfieldUnitBits(last); (last.BitOffset+last.BitLength)%8 != 0 && last.BitOffset+last.BitLength == unit {
			// A bitfield run that claims to fill its storage unit but
			// whose unit width is not itself byte-aligned yields a
			// non-integral aggregate byte size (spec.md §4.8 Failure
			// semantics: BYTSIZ).
			e.errs.Append(errvec.New("BYTSIZ", errvec.StringArg(agg.TypeName())))
		}
	}
	//
	// Relocate every direct member's offset to be ORIGIN-relative (spec.md
	// §4.8 "ORIGIN": "members before it report negative offsets").
	for _, m := range agg.Members {
		if !m.IsComment() {
			m.ByteOffset -= origin
			if m.ByteOffset < 0 {
				e.errs.Append(errvec.New("NEGORIGIN", errvec.StringArg(m.Name)))
			}
		}
	}
	//
	agg.SetSize(int(size))
	agg.Close()
	//
	return nil
}

// memberExtent returns how many bytes m itself spans, starting from its own
// ByteOffset: RealSize*dimension for a regular item or subaggregate, or the
// partial storage-unit byte a bitfield run has claimed so far when m is the
// last bitfield of its run (spec.md §8 invariant 4: the run's final member
// never leaves the aggregate short of the byte it occupies).
func (e *Engine) memberExtent(m *ast.Member) int64 {
	if m.IsBitfield() {
		return (m.BitOffset + m.BitLength + 7) / 8
	}
	//
	return e.RealSize(m) * dimensionCount(m)
}

func (e *Engine) alignmentOf(m *ast.Member) int {
	if m.IsComment() {
		return 1
	}
	//
	if m.IsSubaggregate() {
		return e.alignmentPolicyBytes(m.Subaggregate, 1)
	}
	//
	return e.oracle.AlignmentOf(m.Item.DataType)
}

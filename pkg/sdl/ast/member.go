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

import "github.com/jdbelanger/go-opensdl/pkg/sdl/util"

// MemberKind tags which variant of the Member sum type a given Member
// holds (spec.md §3: "a sum type with variants {bitfield-item, regular
// item, subaggregate, comment}").
//
// Grounded on pkg/corset/ast/binding.go's pattern of a small tagged union
// dispatched on an explicit Kind field rather than a Go type-switch over an
// interface -- chosen here because the Layout Engine needs to mutate
// offsets in place on a shared slice element, which is awkward with an
// interface-typed slice.
type MemberKind uint8

// Member variants.
const (
	MemberItem MemberKind = iota
	MemberBitfield
	MemberSubaggregate
	MemberComment
)

// Member is one element of an Aggregate's ordered member list. Every
// member records its byte offset within the immediately enclosing
// aggregate; bitfields additionally record a bit offset and bit length
// (spec.md §3).
type Member struct {
	Kind MemberKind
	Name string
	// ByteOffset is this member's offset from the start of its enclosing
	// aggregate (spec.md §4.8), set by the Layout Engine.
	ByteOffset int64
	// BitOffset/BitLength are only meaningful when Kind == MemberBitfield
	// (spec.md invariant 5).
	BitOffset int64
	BitLength int64
	//
	Item        *Item        // valid when Kind is MemberItem or MemberBitfield
	Subaggregate *Aggregate  // valid when Kind is MemberSubaggregate
	CommentText string       // valid when Kind is MemberComment
}

// IsItem reports whether m is a regular (non-bitfield) item member.
func (m *Member) IsItem() bool { return m.Kind == MemberItem }

// IsBitfield reports whether m is a bitfield member.
func (m *Member) IsBitfield() bool { return m.Kind == MemberBitfield }

// IsSubaggregate reports whether m is a nested subaggregate member.
func (m *Member) IsSubaggregate() bool { return m.Kind == MemberSubaggregate }

// IsComment reports whether m is a comment-only member (contributes no
// offset).
func (m *Member) IsComment() bool { return m.Kind == MemberComment }

// BaseAlignOverride returns this member's explicit BaseAlign exponent, if
// its underlying Item carries one (spec.md §4.4 "BaseAlign(p) aligns the
// start of the pending member to 2^p").
func (m *Member) BaseAlignOverride() util.Option[int64] {
	if m.Item == nil {
		return util.None[int64]()
	}
	//
	return m.Item.BaseAlignExp
}

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

// AggregateStyle distinguishes a STRUCT (sequential, sizes sum) from a
// UNION (overlapping, size is the member max) subaggregate (spec.md §3,
// §4.8 "Implied unions").
type AggregateStyle uint8

// Aggregate styles.
const (
	StyleStruct AggregateStyle = iota
	StyleUnion
)

// Aggregate is an ordered collection of members, structurally a tree:
// members that are themselves subaggregates embed their own member list
// recursively (spec.md §3).
type Aggregate struct {
	named
	CommonAttributes
	Style     AggregateStyle
	Alignment Alignment
	// BaseAlignExp is the explicit power-of-two alignment exponent when
	// Alignment == AlignExplicit (0..124, spec.md §4.4 BaseAlign).
	BaseAlignExp int64
	Fill         bool
	// NoAlign suppresses natural intra-aggregate member alignment (spec.md
	// §4.4 "NoAlign overrides any implicit alignment").
	NoAlign   bool
	Dimension Dimension
	// Based names the pointer variable an aggregate's instance is reached
	// through, when non-empty (spec.md Glossary "Based").
	Based string
	// Origin names the member whose byte offset becomes this aggregate's
	// reference zero, when non-empty (spec.md §4.8 "ORIGIN").
	Origin string
	//
	Members []*Member
	// Depth is this aggregate's subaggregate nesting depth: 0 for a
	// top-level AGGREGATE, incrementing by 1 per nested SUBAGGREGATE
	// (spec.md §6.2 "Depth counter").
	Depth int
	//
	size          int
	originOffset  util.Option[int64]
	closed        bool
}

// SizeOf implements oracle.Sized: the aggregate's final size, computed on
// close by the Layout Engine (spec.md §4.8 Completion).
func (a *Aggregate) SizeOf() int { return a.size }

// SetSize stores the size computed at close time.
func (a *Aggregate) SetSize(size int) { a.size = size }

// Closed reports whether this aggregate's closing Definition-End action has
// already run; LastRealMember, which the Layout Engine calls, treats a
// non-empty subaggregate that is not Closed as still open and descends
// into it for the last committed member (spec.md §4.8 Offset resolution).
func (a *Aggregate) Closed() bool { return a.closed }

// Close marks this aggregate as finalized.
func (a *Aggregate) Close() { a.closed = true }

// SetOriginOffset records the resolved byte offset of this aggregate's
// ORIGIN member, once found (spec.md §4.8 "ORIGIN").
func (a *Aggregate) SetOriginOffset(offset int64) { a.originOffset = util.Some(offset) }

// OriginOffset returns the resolved ORIGIN offset, if any.
func (a *Aggregate) OriginOffset() util.Option[int64] { return a.originOffset }

// LastRealMember returns the last non-comment member of this aggregate,
// descending into a still-open trailing subaggregate per spec.md §4.8: "The
// engine walks into embedded subaggregates whose size is not yet closed
// ... and descends to their last committed member; it skips trailing
// comment members when locating the last real member."
func (a *Aggregate) LastRealMember() *Member {
	members := a.Members
	//
	for i := len(members) - 1; i >= 0; i-- {
		m := members[i]
		if m.IsComment() {
			continue
		}
		//
		if m.IsSubaggregate() && !m.Subaggregate.Closed() && len(m.Subaggregate.Members) > 0 {
			if sub := m.Subaggregate.LastRealMember(); sub != nil {
				return sub
			}
			//
			continue
		}
		//
		return m
	}
	//
	return nil
}

// MemberByName looks up a direct member of this aggregate by name; used to
// resolve ORIGIN references (spec.md §4.8).
func (a *Aggregate) MemberByName(name string) (*Member, bool) {
	for _, m := range a.Members {
		if m.Name == name {
			return m, true
		}
	}
	//
	return nil, false
}

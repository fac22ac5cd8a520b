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
// Package option implements the Option Buffer (spec.md §4.4): a
// dynamically-grown flat array of (tag, value) entries accumulated between
// a declaration's opening and closing actions, consumed and cleared by the
// Completion Dispatcher, plus the small fixed dimension-slot table parse
// actions allocate into.
//
// Grounded on original_source/src/opensdl_actions.c's option-handling
// switch for the tag vocabulary, and on go-corset's pkg/util/arrays.go
// amortized-growth slice helpers for the "never shrinks, grows INCR records
// at a time" contract.
package option

// Tag identifies which option was set (spec.md §4.4 table).
type Tag uint8

// Recognized option tags.
const (
	TagAlign Tag = iota
	TagNoAlign
	TagBaseAlign
	TagCommon
	TagGlobal
	TagTypedef
	TagDimension
	TagFill
	TagDefault
	TagIncrement
	TagLength
	TagRadix
	TagReturnsType
	TagReturnsNamed
	TagSubType
	TagAlias
	TagBased
	TagCounter
	TagLinkage
	TagMarker
	TagNamed
	TagOrigin
	TagPrefix
	TagTag
	TagTypeName
	TagSigned
	TagValue
	TagReference
	TagIn
	TagOut
	TagOptional
	TagList
	TagVariable
	TagMask
)

// Value is the (int | string | absent) payload of an option entry. A Value
// with neither HasInt nor HasString set is the "absent" (marker-only) form,
// used for boolean-style tags like Fill or Common.
type Value struct {
	HasInt    bool
	Int       int64
	HasString bool
	Str       string
}

// IntValue constructs an integer-bearing Value.
func IntValue(v int64) Value { return Value{HasInt: true, Int: v} }

// StringValue constructs a string-bearing Value.
func StringValue(v string) Value { return Value{HasString: true, Str: v} }

// Absent constructs a marker-only Value.
func Absent() Value { return Value{} }

// Entry is one accumulated (tag, value) pair.
type Entry struct {
	Tag   Tag
	Value Value
}

// incr is the Option Buffer's growth step: the buffer's backing array grows
// by this many records at a time (spec.md §4.4 "grow step is INCR records
// at a time").
const incr = 16

// Buffer accumulates option entries for the declaration currently being
// parsed. It never shrinks; Clear resets the length but retains capacity.
type Buffer struct {
	entries []Entry
}

// NewBuffer constructs an empty Buffer pre-sized to one growth step.
func NewBuffer() *Buffer {
	return &Buffer{entries: make([]Entry, 0, incr)}
}

// Add appends one option entry, growing the backing array by incr records
// whenever capacity is exhausted.
func (b *Buffer) Add(tag Tag, value Value) {
	if len(b.entries) == cap(b.entries) {
		grown := make([]Entry, len(b.entries), cap(b.entries)+incr)
		copy(grown, b.entries)
		b.entries = grown
	}
	//
	b.entries = append(b.entries, Entry{tag, value})
}

// Entries returns the accumulated entries in insertion order.
func (b *Buffer) Entries() []Entry {
	return b.entries
}

// Find returns the first entry with the given tag, if any.
func (b *Buffer) Find(tag Tag) (Value, bool) {
	for _, e := range b.entries {
		if e.Tag == tag {
			return e.Value, true
		}
	}
	//
	return Value{}, false
}

// Has reports whether any entry with the given tag was accumulated.
func (b *Buffer) Has(tag Tag) bool {
	_, ok := b.Find(tag)
	return ok
}

// Clear empties the buffer for reuse by the next declaration, without
// shrinking its backing array (spec.md §4.4 "the buffer never shrinks").
func (b *Buffer) Clear() {
	b.entries = b.entries[:0]
}

// ---------------------------------------------------------------------------
// Dimension slot table
// ---------------------------------------------------------------------------

// numSlots is the fixed dimension slot table size (spec.md §4.4
// "Dimension handling uses a small fixed slot array (size 16)").
const numSlots = 16

type slot struct {
	low, high int64
	inUse     bool
}

// DimensionTable implements the fixed-size dimension slot allocator: each
// slot is (low, high, in-use); allocating returns the first free slot
// index, and binding a dimension to a declaration frees its slot.
type DimensionTable struct {
	slots [numSlots]slot
}

// Allocate reserves the first free slot for [low, high] and returns its
// index, or (-1, false) if every slot is in use.
func (t *DimensionTable) Allocate(low, high int64) (int, bool) {
	for i := range t.slots {
		if !t.slots[i].inUse {
			t.slots[i] = slot{low, high, true}
			return i, true
		}
	}
	//
	return -1, false
}

// Bind consumes (frees) the slot at index, returning the bounds it held.
func (t *DimensionTable) Bind(index int) (low, high int64, ok bool) {
	if index < 0 || index >= numSlots || !t.slots[index].inUse {
		return 0, 0, false
	}
	//
	s := t.slots[index]
	t.slots[index] = slot{}
	//
	return s.low, s.high, true
}

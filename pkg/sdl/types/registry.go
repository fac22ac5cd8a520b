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
package types

import "fmt"

// Kind identifies which of the four user-defined ranges a record belongs
// to.
type Kind uint8

const (
	// KindDeclare identifies the DECLARE range (64..255).
	KindDeclare Kind = iota
	// KindItem identifies the ITEM range (256..511).
	KindItem
	// KindAggregate identifies the AGGREGATE range (512..1023).
	KindAggregate
	// KindEnum identifies the open-ended ENUM range (1024..).
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindDeclare:
		return "DECLARE"
	case KindItem:
		return "ITEM"
	case KindAggregate:
		return "AGGREGATE"
	case KindEnum:
		return "ENUM"
	default:
		return "UNKNOWN"
	}
}

// Named is the minimal contract a record must satisfy to be registered: a
// stable, case-preserving name used for later lookup_by_name/resolve calls.
type Named interface {
	TypeName() string
}

// entry pairs a registered record with the ID it was assigned.
type entry struct {
	id     ID
	record Named
}

// Registry implements the Type Registry component (spec.md §4.2): four
// disjoint ID ranges, each with its own monotonically-increasing cursor and
// ordered list, supporting register/lookup/resolve but no removal -- a
// module's records all live until the owning translation (and therefore the
// Registry itself) is torn down.
//
// Grounded on pkg/corset/compiler/scope.go's ModuleScope: "map identifier to
// index within a slice of bindings in declaration order" is exactly this
// shape, specialised to four parallel ranges instead of one.
type Registry struct {
	lists    [4][]entry
	cursors  [4]ID
}

// NewRegistry constructs an empty registry with each kind's cursor set to
// the first ID in its range.
func NewRegistry() *Registry {
	return &Registry{
		cursors: [4]ID{DeclareMin, ItemMin, AggregateMin, EnumMin},
	}
}

// Register appends record to kind's list and returns the newly assigned ID.
// IDs are assigned by a strictly-increasing per-kind counter and, once
// assigned, never move (spec.md §3 Identifier space).
func (r *Registry) Register(kind Kind, record Named) ID {
	id := r.cursors[kind]
	r.lists[kind] = append(r.lists[kind], entry{id, record})
	r.cursors[kind]++
	//
	return id
}

// LookupByName performs the linear, case-preserving, exact-match search
// spec.md §4.2 specifies over a single kind's list. Returns (id, true) on
// an exact match, or (NoneID, false) otherwise.
func (r *Registry) LookupByName(kind Kind, name string) (ID, bool) {
	for _, e := range r.lists[kind] {
		if e.record.TypeName() == name {
			return e.id, true
		}
	}
	//
	return NoneID, false
}

// LookupByID dispatches on id's range to find the owning record. Returns
// (nil, false) if id does not correspond to any currently-registered
// record.
func (r *Registry) LookupByID(id ID) (Named, bool) {
	kind, ok := kindOf(id)
	if !ok {
		return nil, false
	}
	//
	for _, e := range r.lists[kind] {
		if e.id == id {
			return e.record, true
		}
	}
	//
	return nil, false
}

// kindOf maps an ID to the range (and thus Kind) it falls within.
func kindOf(id ID) (Kind, bool) {
	switch {
	case IsDeclare(id):
		return KindDeclare, true
	case IsItem(id):
		return KindItem, true
	case IsAggregate(id):
		return KindAggregate, true
	case IsEnum(id):
		return KindEnum, true
	default:
		return 0, false
	}
}

// Resolve tries DECLARE, then ITEM, then AGGREGATE, then ENUM, in that
// order, returning the first exact-name match. Returns NoneID if name names
// no user type; the caller then falls back to base type name resolution
// (spec.md §4.2).
func (r *Registry) Resolve(name string) ID {
	for _, kind := range []Kind{KindDeclare, KindItem, KindAggregate, KindEnum} {
		if id, ok := r.LookupByName(kind, name); ok {
			return id
		}
	}
	//
	return NoneID
}

// RegisterUnique is a convenience wrapper implementing the "registering
// twice under the same name is an error, not a silent replace" property
// (spec.md §8 Round-trip/idempotence).
func (r *Registry) RegisterUnique(kind Kind, record Named) (ID, error) {
	if _, ok := r.LookupByName(kind, record.TypeName()); ok {
		return NoneID, fmt.Errorf("%s %q already registered", kind, record.TypeName())
	}
	//
	return r.Register(kind, record), nil
}

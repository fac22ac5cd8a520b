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
// Package emit implements the Emission Gateway (spec.md §4.10): a fixed,
// language-agnostic event vocabulary presented to one or more registered
// emitters, dispatched in registration order with a short-circuit on the
// first emitter failure, plus the versioned plugin Transfer Vector ABI
// (spec.md §6.2, §6.4) dynamic-library emitters are loaded through.
//
// Grounded on go-corset's multi-backend lowering (pkg/ir/hir, pkg/ir/mir,
// pkg/ir/air each implementing a common schema interface) for the "one
// neutral event stream, N target-specific consumers" shape, and directly on
// original_source/include/library/utility/opensdl_plugin.h for the
// versioned Transfer Vector ABI.
package emit

import (
	"time"

	"github.com/jdbelanger/go-opensdl/pkg/sdl/ast"
)

// CommentPosition classifies where a comment event falls relative to the
// declaration it annotates (spec.md §4.10 event vocabulary).
type CommentPosition uint8

// Comment positions.
const (
	CommentLine CommentPosition = iota
	CommentStart
	CommentMiddle
	CommentEnd
)

// AggregateEventKind distinguishes an opening aggregate/subaggregate call,
// a per-member call, and the closing call (spec.md §6.2 Event ordering
// contract).
type AggregateEventKind uint8

// Aggregate event kinds.
const (
	AggregateOpen AggregateEventKind = iota
	AggregateMemberEvent
	AggregateClose
)

// AggregateEvent carries one `aggregate` call's payload. Based is carried
// explicitly here (SPEC_FULL.md §4 item 4) since spec.md §3 names the field
// on Aggregate but §6.2's event vocabulary summary doesn't spell it out.
type AggregateEvent struct {
	Kind   AggregateEventKind
	Member *ast.Member // valid when Kind == AggregateMemberEvent
	Depth  int
	Based  string
	Agg    *ast.Aggregate
}

// ModuleContext carries the ambient conditional-scope/emission context an
// emitter needs alongside a declaration event: which targets this
// declaration is visible to was already filtered by the Gateway before
// dispatch, so emitters only ever see events meant for them.
type ModuleContext struct {
	Module *ast.Module
}

// Emitter is the event vocabulary every registered target implements.
// Methods return a non-nil error to signal failure; the Gateway stops
// dispatching further emitters for that event and records the error
// (spec.md §4.10).
//
// An emitter need not implement every method meaningfully -- go-corset's
// own multi-backend schemas are similarly partial per target -- but the Go
// interface still requires every method exist; a no-op body is the
// idiomatic way to decline an event, mirroring the Transfer Vector's "null
// slots for every event the emitter may supply" (spec.md §6.2).
type Emitter interface {
	// Name identifies this emitter for --lang matching and diagnostics.
	Name() string
	// FileExtension is used to synthesize an output file name when the
	// user did not specify one (spec.md §6.2 "File-extension
	// negotiation").
	FileExtension() string

	Stars() error
	CreatedBy(t time.Time) error
	FileInfo(t time.Time, path string) error
	Comment(text string, pos CommentPosition) error
	Module(ctx ModuleContext) error
	ModuleEnd(ctx ModuleContext) error
	Constant(rec *ast.Constant, ctx ModuleContext) error
	Item(rec *ast.Item, ctx ModuleContext) error
	Enumerate(rec *ast.Enumerate, ctx ModuleContext) error
	Aggregate(ev AggregateEvent, ctx ModuleContext) error
	Entry(rec *ast.Entry, ctx ModuleContext) error
	Literal(line string) error
	Close() error
}

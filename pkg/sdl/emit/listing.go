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
package emit

import (
	"fmt"
	"io"
	"time"

	"github.com/jdbelanger/go-opensdl/pkg/sdl/ast"
)

// ListingEmitter is the built-in human-readable target: one line per
// declaration, offsets and sizes inline, no target language syntax of its
// own. It exists both as the default `--lang=listing` output and as the
// simplest possible Emitter implementation to validate the Gateway's event
// contract against (spec.md §6.2 names "a neutral listing format" as the
// tool's always-available baseline target).
//
// Grounded on go-corset's pkg/air text dump style: indentation by nesting
// depth, one declaration per line, no attempt at round-tripping.
type ListingEmitter struct {
	w     io.Writer
	err   error
}

// NewListingEmitter constructs a ListingEmitter writing to w.
func NewListingEmitter(w io.Writer) *ListingEmitter {
	return &ListingEmitter{w: w}
}

// Name implements Emitter.
func (l *ListingEmitter) Name() string { return "listing" }

// FileExtension implements Emitter.
func (l *ListingEmitter) FileExtension() string { return "lis" }

func (l *ListingEmitter) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(l.w, format, args...)
	return err
}

// Stars implements Emitter.
func (l *ListingEmitter) Stars() error {
	return l.printf("%s\n", "*******************************************************************")
}

// CreatedBy implements Emitter.
func (l *ListingEmitter) CreatedBy(t time.Time) error {
	return l.printf("*  Created by OpenSDL translator on %s\n", t.Format(time.RFC1123))
}

// FileInfo implements Emitter.
func (l *ListingEmitter) FileInfo(t time.Time, path string) error {
	return l.printf("*  Source: %s (%s)\n", path, t.Format(time.RFC1123))
}

// Comment implements Emitter.
func (l *ListingEmitter) Comment(text string, pos CommentPosition) error {
	return l.printf("    /* %s */\n", text)
}

// Module implements Emitter.
func (l *ListingEmitter) Module(ctx ModuleContext) error {
	return l.printf("MODULE %s;\n", ctx.Module.TypeName())
}

// ModuleEnd implements Emitter.
func (l *ListingEmitter) ModuleEnd(ctx ModuleContext) error {
	return l.printf("END_MODULE;\n")
}

// Constant implements Emitter.
func (l *ListingEmitter) Constant(rec *ast.Constant, ctx ModuleContext) error {
	if rec.IsString {
		return l.printf("CONSTANT %s EQUALS %q;\n", rec.TypeName(), rec.StrValue)
	}
	//
	return l.printf("CONSTANT %s EQUALS %d;\n", rec.TypeName(), rec.IntValue)
}

// Item implements Emitter.
func (l *ListingEmitter) Item(rec *ast.Item, ctx ModuleContext) error {
	return l.printf("ITEM %s : size=%d;\n", rec.TypeName(), rec.SizeOf())
}

// Enumerate implements Emitter.
func (l *ListingEmitter) Enumerate(rec *ast.Enumerate, ctx ModuleContext) error {
	if err := l.printf("ENUM %s (\n", rec.TypeName()); err != nil {
		return err
	}
	//
	for _, m := range rec.Members {
		if err := l.printf("    %s = %d,\n", m.Name, m.Value); err != nil {
			return err
		}
	}
	//
	return l.printf(");\n")
}

// Aggregate implements Emitter.
func (l *ListingEmitter) Aggregate(ev AggregateEvent, ctx ModuleContext) error {
	indent := ""
	for i := 0; i < ev.Depth; i++ {
		indent += "    "
	}
	//
	switch ev.Kind {
	case AggregateOpen:
		kind := "AGGREGATE"
		if ev.Agg.Style == ast.StyleUnion {
			kind = "AGGREGATE ... UNION"
		}
		//
		return l.printf("%s%s %s (\n", indent, kind, ev.Agg.TypeName())
	case AggregateMemberEvent:
		m := ev.Member
		switch {
		case m.IsComment():
			return l.printf("%s    /* %s */\n", indent, m.CommentText)
		case m.IsBitfield():
			return l.printf("%s    %s : offset=%d.%d length=%d;\n", indent, m.Name, m.ByteOffset, m.BitOffset, m.BitLength)
		case m.IsSubaggregate():
			return l.printf("%s    %s : offset=%d (nested);\n", indent, m.Name, m.ByteOffset)
		default:
			return l.printf("%s    %s : offset=%d;\n", indent, m.Name, m.ByteOffset)
		}
	default: // AggregateClose
		return l.printf("%s) : size=%d;\n", indent, ev.Agg.SizeOf())
	}
}

// Entry implements Emitter.
func (l *ListingEmitter) Entry(rec *ast.Entry, ctx ModuleContext) error {
	return l.printf("ENTRY %s (%d parameters);\n", rec.TypeName(), len(rec.Parameters))
}

// Literal implements Emitter.
func (l *ListingEmitter) Literal(line string) error {
	return l.printf("%s\n", line)
}

// Close implements Emitter.
func (l *ListingEmitter) Close() error { return nil }

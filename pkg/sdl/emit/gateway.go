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
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jdbelanger/go-opensdl/pkg/sdl/ast"
)

// registration is one emitter together with the per-target enable state the
// Conditional Scope drives (spec.md §4.10 "each registered emitter carries
// an enabled flag, toggled as the Conditional Scope opens and closes
// IFLANGUAGE blocks naming it").
type registration struct {
	target  Emitter
	enabled bool
}

// Gateway fans a single neutral event stream out to every registered,
// currently-enabled Emitter, in registration order, stopping at the first
// emitter that returns an error for a given event (spec.md §4.10 "Failure
// semantics: the Gateway does not attempt the remaining emitters for that
// event; it does not roll back emitters that already ran").
//
// Grounded on go-corset's schema.Module fan-out pattern (a single IR event
// walked once, lowered independently per backend) and logged the way
// pkg/cmd/check.go logs pipeline stage progress, via logrus.
type Gateway struct {
	regs     []*registration
	log      *logrus.Entry
	Settings Settings
}

// Settings carries the cross-emitter rendering options the Option Buffer
// and CLI flags populate, distinct from the per-declaration attributes
// carried on ast records themselves (SPEC_FULL.md §4 item 3:
// "--suppress=prefix|tag member filtering").
type Settings struct {
	SuppressPrefix bool
	SuppressTag    bool
}

// SetSuppress parses a `--suppress` mode string ("prefix", "tag", or
// "prefix,tag") into Settings, mirroring opensdl_lang_c.c's suppress flag
// (SPEC_FULL.md §4 item 3).
func (g *Gateway) SetSuppress(mode string) {
	for _, part := range strings.Split(mode, ",") {
		switch strings.TrimSpace(part) {
		case "prefix":
			g.Settings.SuppressPrefix = true
		case "tag":
			g.Settings.SuppressTag = true
		}
	}
}

// NewGateway constructs an empty Gateway. Use Register to attach emitters.
func NewGateway(log *logrus.Entry) *Gateway {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	//
	return &Gateway{log: log}
}

// Register attaches target, initially enabled (spec.md §6.3 "--lang is
// additive: every named target is enabled for the whole translation unless
// narrowed by a later IFLANGUAGE").
func (g *Gateway) Register(target Emitter) {
	g.regs = append(g.regs, &registration{target: target, enabled: true})
}

// SetEnabled toggles whether name receives subsequent events, used by the
// Translator each time the Conditional Scope's enabled-target set changes.
func (g *Gateway) SetEnabled(name string, enabled bool) {
	for _, r := range g.regs {
		if r.target.Name() == name {
			r.enabled = enabled
		}
	}
}

// Targets returns the names of every registered emitter, enabled or not --
// used by the translator's Context to validate IFLANGUAGE names against the
// active --lang set (spec.md §4.5 invariant: unknown target names are a
// compile-time error, not silently ignored).
func (g *Gateway) Targets() []string {
	names := make([]string, 0, len(g.regs))
	for _, r := range g.regs {
		names = append(names, r.target.Name())
	}
	//
	return names
}

// dispatch invokes fn against every enabled emitter in order, stopping and
// returning the first error (spec.md §4.10 short-circuit semantics).
func (g *Gateway) dispatch(event string, fn func(Emitter) error) error {
	for _, r := range g.regs {
		if !r.enabled {
			continue
		}
		//
		if err := fn(r.target); err != nil {
			g.log.WithFields(logrus.Fields{"emitter": r.target.Name(), "event": event}).
				WithError(err).Debug("emitter rejected event")
			//
			return fmt.Errorf("emitter %q rejected %s: %w", r.target.Name(), event, err)
		}
	}
	//
	return nil
}

// Stars emits the banner-comment event (spec.md §4.10 event vocabulary).
func (g *Gateway) Stars() error { return g.dispatch("stars", func(e Emitter) error { return e.Stars() }) }

// CreatedBy emits the "created by" timestamp banner.
func (g *Gateway) CreatedBy(t time.Time) error {
	return g.dispatch("created-by", func(e Emitter) error { return e.CreatedBy(t) })
}

// FileInfo emits the source-file banner.
func (g *Gateway) FileInfo(t time.Time, path string) error {
	return g.dispatch("file-info", func(e Emitter) error { return e.FileInfo(t, path) })
}

// Comment emits a free-standing or attached comment.
func (g *Gateway) Comment(text string, pos CommentPosition) error {
	return g.dispatch("comment", func(e Emitter) error { return e.Comment(text, pos) })
}

// Module emits the module-open event.
func (g *Gateway) Module(ctx ModuleContext) error {
	return g.dispatch("module", func(e Emitter) error { return e.Module(ctx) })
}

// ModuleEnd emits the module-close event.
func (g *Gateway) ModuleEnd(ctx ModuleContext) error {
	return g.dispatch("module-end", func(e Emitter) error { return e.ModuleEnd(ctx) })
}

// Constant emits one completed CONSTANT record.
func (g *Gateway) Constant(rec *ast.Constant, ctx ModuleContext) error {
	return g.dispatch("constant", func(e Emitter) error { return e.Constant(rec, ctx) })
}

// Item emits one completed standalone ITEM record.
func (g *Gateway) Item(rec *ast.Item, ctx ModuleContext) error {
	return g.dispatch("item", func(e Emitter) error { return e.Item(rec, ctx) })
}

// Enumerate emits one completed ENUM record.
func (g *Gateway) Enumerate(rec *ast.Enumerate, ctx ModuleContext) error {
	return g.dispatch("enumerate", func(e Emitter) error { return e.Enumerate(rec, ctx) })
}

// Aggregate emits one aggregate-tree event: open, per-member, or close (the
// Completion Dispatcher calls this once at open, once per member, and once
// more at close,
// per spec.md §6.2's event-ordering contract).
func (g *Gateway) Aggregate(ev AggregateEvent, ctx ModuleContext) error {
	return g.dispatch("aggregate", func(e Emitter) error { return e.Aggregate(ev, ctx) })
}

// Entry emits one completed ENTRY record.
func (g *Gateway) Entry(rec *ast.Entry, ctx ModuleContext) error {
	return g.dispatch("entry", func(e Emitter) error { return e.Entry(rec, ctx) })
}

// Literal passes an action-script LITERAL line through verbatim.
func (g *Gateway) Literal(line string) error {
	return g.dispatch("literal", func(e Emitter) error { return e.Literal(line) })
}

// Close shuts down every registered emitter, collecting the first error but
// still calling Close on the rest (spec.md §4.10: "module teardown closes
// every emitter regardless of earlier per-event failures, to flush
// buffered output").
func (g *Gateway) Close() error {
	var first error
	//
	for _, r := range g.regs {
		if err := r.target.Close(); err != nil && first == nil {
			first = err
		}
	}
	//
	return first
}

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
// Package translator implements the Completion Dispatcher (spec.md §4.9):
// the single entry point the action vocabulary (spec.md §6.1) drives. It
// owns one Context per translation, wiring together every other core
// component -- Block Pool, Type Registry, Option Buffer, Oracle,
// Conditional Scope, State Machine, Local Variable Table, Aggregate Layout
// Engine and Error Vector -- into the open/populate/complete lifecycle a
// declaration goes through.
//
// Grounded on pkg/corset/compiler/translator.go's per-declaration-kind
// dispatch methods (translateConstant, translateFunction, ...), each of
// which validates, resolves bindings against the scope, and emits into a
// shared output -- the same shape generalized here to OpenSDL's six
// declaration kinds and a pluggable Emission Gateway instead of one fixed
// IR.
package translator

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jdbelanger/go-opensdl/pkg/sdl/ast"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/block"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/cond"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/emit"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/errvec"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/layout"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/local"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/option"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/oracle"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/state"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/types"
)

// pendingAggregate is one still-open AGGREGATE or SUBAGGREGATE on the
// Context's nesting stack: the record itself plus the member name it will
// be filed under in its parent once closed (empty for a top-level
// AGGREGATE, which files into the Module instead).
type pendingAggregate struct {
	agg        *ast.Aggregate
	memberName string
}

// Context is the Completion Dispatcher's per-translation state: every core
// component instance plus whichever declaration is currently being built.
// Exactly one Context exists per translation unit (spec.md §5 "Concurrency
// & Resource model": translations do not share mutable state).
type Context struct {
	Pool     *block.Pool
	Registry *types.Registry
	Oracle   *oracle.Oracle
	Options  *option.Buffer
	Dims     *option.DimensionTable
	Cond     *cond.Scope
	State    *state.Machine
	Locals   *local.Table
	Layout   *layout.Engine
	Errors   *errvec.Vector
	Gateway  *emit.Gateway

	log *logrus.Entry

	Module *ast.Module

	pendingConstantNames    []string
	pendingConstantComments []string
	pendingDeclare          *ast.Declare
	pendingItem             *ast.Item
	pendingEntry            *ast.Entry
	pendingEnum             *ast.Enumerate

	aggStack []pendingAggregate
}

// New constructs a Context around a fresh instance of every core component,
// word-sized per wordSizeBits (spec.md §4.3 Oracle construction), logging
// dispatch decisions through log.
func New(wordSizeBits uint, gateway *emit.Gateway, log *logrus.Entry) *Context {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	//
	errs := errvec.NewVector()
	reg := types.NewRegistry()
	o := oracle.New(reg, wordSizeBits)
	//
	return &Context{
		Pool:     block.New(),
		Registry: reg,
		Oracle:   o,
		Options:  option.NewBuffer(),
		Dims:     &option.DimensionTable{},
		Cond:     cond.New(),
		State:    state.New(),
		Locals:   local.New(),
		Layout:   layout.New(o, errs),
		Errors:   errs,
		Gateway:  gateway,
		log:      log,
	}
}

// fail records msg into the Error Vector and returns it as a Go error, the
// uniform pattern every dispatch method below uses: non-fatal diagnostics
// never abort the translation outright (spec.md §7 Propagation), but the
// caller (typically the action-script reader) learns about it too.
func (c *Context) fail(msg *errvec.Message) error {
	c.Errors.Append(msg)
	c.log.WithField("mnemonic", msg.Mnemonic).Debug("dispatcher recorded diagnostic")
	//
	return msg
}

// emitContext builds the ModuleContext passed to every Gateway call.
func (c *Context) emitContext() emit.ModuleContext {
	return emit.ModuleContext{Module: c.Module}
}

// currentAggregate returns the innermost open AGGREGATE/SUBAGGREGATE, or
// nil at module scope.
func (c *Context) currentAggregate() *ast.Aggregate {
	if len(c.aggStack) == 0 {
		return nil
	}
	//
	return c.aggStack[len(c.aggStack)-1].agg
}

// SetLocal assigns a local variable, independent of parse state: spec.md
// §4.7 models Get/Set as available wherever dimension or value expressions
// are evaluated, not gated by the State Machine the way declaration actions
// are.
func (c *Context) SetLocal(name string, value int64) {
	c.Locals.Set(name, value)
}

// GetLocal reads a local variable, surfacing UNDEFSYM via the Error Vector
// on a miss.
func (c *Context) GetLocal(name string) (int64, error) {
	v, err := c.Locals.Get(name)
	if err != nil {
		return 0, c.fail(errvec.New("UNDEFSYM", errvec.StringArg(name)))
	}
	//
	return v, nil
}

// AddOption records one accumulated option entry for the declaration
// currently being populated (spec.md §4.4).
func (c *Context) AddOption(tag option.Tag, value option.Value) {
	c.Options.Add(tag, value)
}

// AllocateDimension reserves a dimension slot, reporting ALLOCFAIL on
// exhaustion through the Error Vector -- the slot table is fixed-size
// (spec.md §4.4), so exhaustion is a reachable, reportable condition rather
// than a panic.
func (c *Context) AllocateDimension(low, high int64) (int, error) {
	idx, ok := c.Dims.Allocate(low, high)
	if !ok {
		return 0, c.fail(errvec.New("ALLOCFAIL", errvec.StringArg("dimension slot table exhausted")))
	}
	//
	return idx, nil
}

// BindDimension consumes a previously-allocated dimension slot and returns
// it as an ast.Dimension ready to attach to a declaration.
func (c *Context) BindDimension(index int) (ast.Dimension, error) {
	low, high, ok := c.Dims.Bind(index)
	if !ok {
		return ast.Dimension{}, c.fail(errvec.New("ALLOCFAIL", errvec.StringArg("dimension slot already bound")))
	}
	//
	return ast.Dimension{Low: low, High: high, InUse: true}, nil
}

// OpenModule starts a translation unit: the State Machine must be Initial
// (spec.md §4.6), and exactly one Module exists for the Context's lifetime.
func (c *Context) OpenModule(name, ident string) error {
	if err := c.State.Apply(state.ActionModule); err != nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("MODULE")))
	}
	//
	c.Module = ast.NewModule(name, ident)
	c.Pool.Alloc(block.KindModule, 0, nil)
	c.log.WithField("module", name).Debug("module opened")
	//
	return c.Gateway.Module(c.emitContext())
}

// CloseModule ends the translation unit: checks the State Machine and emits
// module-end. It frees nothing in the Block Pool; every block allocated
// during the translation is still counted as live afterwards.
func (c *Context) CloseModule() error {
	if err := c.State.Apply(state.ActionEnd); err != nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("END_MODULE")))
	}
	//
	if err := c.Gateway.ModuleEnd(c.emitContext()); err != nil {
		return err
	}
	//
	c.log.WithField("module", c.Module.TypeName()).Debug("module closed")
	//
	return nil
}

// Literal passes an action-script LITERAL line through to every enabled
// emitter verbatim, unless the Conditional Scope currently suppresses
// processing (spec.md §4.5, §4.10).
func (c *Context) Literal(line string) error {
	if !c.Cond.ProcessingEnabled() {
		return nil
	}
	//
	return c.Gateway.Literal(line)
}

// Comment emits a free-standing comment line, subject to the same
// processing-enabled gate as Literal.
func (c *Context) Comment(text string) error {
	if !c.Cond.ProcessingEnabled() {
		return nil
	}
	//
	return c.Gateway.Comment(text, emit.CommentLine)
}

// IfLanguage opens an IFLANGUAGE conditional scope naming targets, after
// validating every name against the Gateway's registered emitters (spec.md
// §4.5 invariant: unknown target names are a compile-time error).
func (c *Context) IfLanguage(targets []string) error {
	known := make(map[string]bool, len(c.Gateway.Targets()))
	for _, t := range c.Gateway.Targets() {
		known[t] = true
	}
	//
	for _, t := range targets {
		if !known[t] {
			return c.fail(errvec.New("SYNTAXERR", errvec.StringArg("unknown IFLANGUAGE target "+t)))
		}
	}
	//
	if err := c.Cond.PushIfLanguage(targets); err != nil {
		return c.fail(errvec.New("DUPLANG", errvec.StringArg(err.Error())))
	}
	//
	c.syncGatewayEnablement()
	//
	return nil
}

// IfSymbol opens an IFSYMBOL conditional scope with the already-evaluated
// boolean condition.
func (c *Context) IfSymbol(value bool) {
	c.Cond.PushIfSymbol(value)
}

// IfSymbolNamed opens an IFSYMBOL scope by looking name up in the Local
// Variable Table (populated from the CLI's repeatable --symbol name:value
// flag, spec.md §6.3): non-zero is true, zero is false. An undefined
// symbol reports UNDEFSYM but still opens the scope as false, so the
// Conditional Scope stack stays balanced (spec.md §7 Propagation).
func (c *Context) IfSymbolNamed(name string) {
	v, err := c.Locals.Get(name)
	if err != nil {
		c.fail(errvec.New("UNDEFSYM", errvec.StringArg(name)))
		c.Cond.PushIfSymbol(false)
		return
	}
	//
	c.Cond.PushIfSymbol(v != 0)
}

// ElseBranch flips the innermost conditional into its ELSE arm.
func (c *Context) ElseBranch() error {
	if err := c.Cond.Else(); err != nil {
		return c.fail(errvec.New("SYNTAXERR", errvec.StringArg(err.Error())))
	}
	//
	c.syncGatewayEnablement()
	//
	return nil
}

// EndConditional closes the innermost conditional scope, matching an
// END_IFLANGUAGE's explicit target list when given.
func (c *Context) EndConditional(matchTargets []string) error {
	if err := c.Cond.End(matchTargets); err != nil {
		return c.fail(errvec.New("SYNTAXERR", errvec.StringArg(err.Error())))
	}
	//
	c.syncGatewayEnablement()
	//
	return nil
}

// syncGatewayEnablement pushes the Conditional Scope's current per-target
// enabled set down into the Gateway after any conditional stack change.
func (c *Context) syncGatewayEnablement() {
	for _, t := range c.Gateway.Targets() {
		c.Gateway.SetEnabled(t, c.Cond.EnabledFor(t))
	}
}

// stamp returns the current wall-clock time for banner events -- isolated
// into one method so every timestamped Gateway call goes through it
// (spec.md's embargo on Date.now()-equivalents in other layers does not
// apply at the CLI/dispatcher boundary, which is explicitly allowed to
// observe real time).
func stamp() time.Time { return time.Now() }

// Banner emits the stars/created-by/file-info header sequence for sourcePath
// (spec.md §6.2 event vocabulary).
func (c *Context) Banner(sourcePath string) error {
	if err := c.Gateway.Stars(); err != nil {
		return err
	}
	//
	now := stamp()
	if err := c.Gateway.CreatedBy(now); err != nil {
		return err
	}
	//
	return c.Gateway.FileInfo(now, sourcePath)
}

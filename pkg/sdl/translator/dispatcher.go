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
package translator

import (
	"strings"

	"github.com/jdbelanger/go-opensdl/pkg/sdl/ast"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/block"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/emit"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/errvec"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/option"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/state"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/types"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/util"
)

// ---------------------------------------------------------------------------
// DECLARE
// ---------------------------------------------------------------------------

// OpenDeclare begins a DECLARE, transitioning the State Machine.
func (c *Context) OpenDeclare(name string) error {
	if err := c.State.Apply(state.ActionDeclare); err != nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("DECLARE")))
	}
	//
	c.pendingDeclare = &ast.Declare{}
	c.pendingDeclare.Name = name
	c.Options.Clear()
	//
	return nil
}

// CompleteDeclare drains the Option Buffer, resolves the target type,
// computes the size, registers the record, links it into the Module, and
// emits nothing directly -- DECLAREs are type aliases, not emitted
// declarations of their own (spec.md §4.9, §6.2: DECLARE has no dedicated
// event; its effect is visible only through later ITEMs/members that name
// it as a type). targetName is the raw name the action script resolved
// targetType from; when it names this same DECLARE, CIRCDEF is reported
// (SPEC_FULL.md §4 item 5).
func (c *Context) CompleteDeclare(targetType types.ID, targetName string) error {
	d := c.pendingDeclare
	d.TargetType = targetType
	//
	if targetName == d.TypeName() {
		c.Errors.Append(errvec.New("CIRCDEF", errvec.StringArg(d.TypeName())))
	}
	//
	if v, ok := c.Options.Find(option.TagPrefix); ok {
		d.Prefix = v.Str
	}
	if v, ok := c.Options.Find(option.TagTag); ok {
		d.Tag = v.Str
	}
	if v, ok := c.Options.Find(option.TagLength); ok {
		d.CharLength = v.Int
	}
	//
	switch {
	case types.Unsigned(targetType) == types.Char && d.CharLength > 0:
		d.SetSize(int(d.CharLength))
	default:
		d.SetSize(c.Oracle.SizeOf(targetType))
	}
	//
	if _, err := c.Registry.RegisterUnique(types.KindDeclare, d); err != nil {
		return c.fail(errvec.New("DUPTYPE", errvec.StringArg(d.TypeName())))
	}
	//
	c.Module.Declares = append(c.Module.Declares, d)
	c.Pool.Alloc(block.KindDeclare, int64(d.SizeOf()), nil)
	c.pendingDeclare = nil
	//
	return c.State.Apply(state.ActionEnd)
}

// ---------------------------------------------------------------------------
// ITEM
// ---------------------------------------------------------------------------

// OpenItem begins a standalone ITEM.
func (c *Context) OpenItem(name string) error {
	if err := c.State.Apply(state.ActionItem); err != nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("ITEM")))
	}
	//
	c.pendingItem = &ast.Item{}
	c.pendingItem.Name = name
	c.Options.Clear()
	//
	return nil
}

// applyItemOptions populates it from the currently-accumulated Option
// Buffer; shared between standalone ITEM and aggregate-member item
// completion (spec.md §4.4's option vocabulary applies identically to both).
func (c *Context) applyItemOptions(it *ast.Item) {
	if v, ok := c.Options.Find(option.TagPrefix); ok {
		it.Prefix = v.Str
	}
	if v, ok := c.Options.Find(option.TagTag); ok {
		it.Tag = v.Str
	}
	if v, ok := c.Options.Find(option.TagBaseAlign); ok {
		it.BaseAlignExp = util.Some(v.Int)
	}
	if v, ok := c.Options.Find(option.TagLength); ok {
		it.CharLength = v.Int
	}
	if v, ok := c.Options.Find(option.TagSubType); ok {
		it.SubType = types.ID(v.Int)
	}
	if c.Options.Has(option.TagCommon) {
		it.Storage = ast.StorageCommon
	}
	if c.Options.Has(option.TagGlobal) {
		it.Storage = ast.StorageGlobal
	}
	if c.Options.Has(option.TagTypedef) {
		it.Storage = ast.StorageTypedef
	}
}

// CompleteItem resolves dataType, applies accumulated options, computes the
// size via the Oracle, registers and emits the record.
func (c *Context) CompleteItem(dataType types.ID) error {
	it := c.pendingItem
	it.DataType = dataType
	c.applyItemOptions(it)
	//
	it.SetSize(int(c.Layout.RealSize(&ast.Member{Kind: ast.MemberItem, Item: it})) * int(it.Dimension.Count()))
	//
	if _, err := c.Registry.RegisterUnique(types.KindItem, it); err != nil {
		return c.fail(errvec.New("DUPTYPE", errvec.StringArg(it.TypeName())))
	}
	//
	c.Module.Items = append(c.Module.Items, it)
	c.Pool.Alloc(block.KindItem, int64(it.SizeOf()), nil)
	c.pendingItem = nil
	//
	if err := c.State.Apply(state.ActionEnd); err != nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("END_ITEM")))
	}
	//
	if !c.Cond.ProcessingEnabled() {
		return nil
	}
	//
	return c.Gateway.Item(it, c.emitContext())
}

// ---------------------------------------------------------------------------
// CONSTANT
// ---------------------------------------------------------------------------

// OpenConstant begins a CONSTANT statement naming one or more constants,
// optionally each with its own brace-enclosed comment (parallel slices,
// same length as names; an empty string means no per-member comment).
// The names form one series sharing one VALUE/INCREMENT/RADIX option set
// (SPEC_FULL.md §4 item 1).
func (c *Context) OpenConstant(names []string, comments []string) error {
	if err := c.State.Apply(state.ActionConstant); err != nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("CONSTANT")))
	}
	//
	c.pendingConstantNames = names
	c.pendingConstantComments = comments
	c.Options.Clear()
	//
	return nil
}

// CompleteConstant expands the pending name series into individual
// *ast.Constant records sharing one VALUE/INCREMENT/RADIX option set,
// registering and emitting each in turn.
func (c *Context) CompleteConstant() error {
	names := c.pendingConstantNames
	comments := c.pendingConstantComments
	//
	base := int64(0)
	isString := false
	strValue := ""
	increment := int64(1)
	radix := ast.RadixDefault
	//
	if v, ok := c.Options.Find(option.TagValue); ok {
		if v.HasString {
			isString, strValue = true, v.Str
		} else {
			base = v.Int
		}
	}
	if v, ok := c.Options.Find(option.TagIncrement); ok {
		increment = v.Int
	}
	if v, ok := c.Options.Find(option.TagRadix); ok {
		radix = ast.Radix(v.Int)
	}
	//
	inSeries := len(names) > 1
	//
	for i, name := range names {
		rec := &ast.Constant{Radix: radix, IsString: isString, StrValue: strValue, InSeries: inSeries, Increment: increment}
		rec.Name = name
		//
		if i < len(comments) {
			rec.Comment = comments[i]
		}
		//
		if !isString {
			rec.IntValue = base + int64(i)*increment
		}
		//
		if c.constantDeclared(name) {
			// CONSTANTs carry no type identity (spec.md §3) and so are
			// never filed in the Type Registry; duplicate-name checking is
			// a direct scan of the module's own constant list instead.
			return c.fail(errvec.New("DUPCONATT", errvec.StringArg(name)))
		}
		//
		c.Module.Constants = append(c.Module.Constants, rec)
		c.Pool.Alloc(block.KindConstant, 0, nil)
		//
		if !c.Cond.ProcessingEnabled() {
			continue
		}
		//
		if err := c.Gateway.Constant(rec, c.emitContext()); err != nil {
			return err
		}
	}
	//
	c.pendingConstantNames = nil
	c.pendingConstantComments = nil
	//
	return c.State.Apply(state.ActionEnd)
}

// constantDeclared reports whether name already names a constant in the
// current module.
func (c *Context) constantDeclared(name string) bool {
	for _, rec := range c.Module.Constants {
		if rec.TypeName() == name {
			return true
		}
	}
	//
	return false
}

// ---------------------------------------------------------------------------
// AGGREGATE / SUBAGGREGATE
// ---------------------------------------------------------------------------

// OpenAggregate begins a top-level AGGREGATE.
func (c *Context) OpenAggregate(name string, style ast.AggregateStyle) error {
	if err := c.State.Apply(state.ActionAggregate); err != nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("AGGREGATE")))
	}
	//
	agg := &ast.Aggregate{Style: style}
	agg.Name = name
	c.aggStack = append(c.aggStack, pendingAggregate{agg: agg})
	c.Options.Clear()
	//
	if !c.Cond.ProcessingEnabled() {
		return nil
	}
	//
	return c.Gateway.Aggregate(emit.AggregateEvent{Kind: emit.AggregateOpen, Depth: agg.Depth, Agg: agg}, c.emitContext())
}

// OpenSubaggregate begins a nested SUBAGGREGATE, filed as memberName on the
// currently-open aggregate once it closes. Emits its own opening event
// immediately, bracketing the nested body the same way a top-level
// aggregate does (spec.md §6.2: "an opening call per aggregate and
// subaggregate").
func (c *Context) OpenSubaggregate(memberName string, style ast.AggregateStyle) error {
	parent := c.currentAggregate()
	if parent == nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("SUBAGGREGATE")))
	}
	//
	if err := c.State.Apply(state.ActionSubaggregate); err != nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("SUBAGGREGATE")))
	}
	//
	agg := &ast.Aggregate{Style: style, Depth: parent.Depth + 1}
	agg.Name = memberName
	c.aggStack = append(c.aggStack, pendingAggregate{agg: agg, memberName: memberName})
	c.Options.Clear()
	//
	if !c.Cond.ProcessingEnabled() {
		return nil
	}
	//
	return c.Gateway.Aggregate(emit.AggregateEvent{Kind: emit.AggregateOpen, Depth: agg.Depth, Agg: agg}, c.emitContext())
}

// applyAggregateOptions populates agg's layout-affecting fields from the
// currently-accumulated Option Buffer.
func (c *Context) applyAggregateOptions(agg *ast.Aggregate) {
	if c.Options.Has(option.TagNoAlign) {
		agg.NoAlign = true
	}
	if c.Options.Has(option.TagFill) {
		agg.Fill = true
	}
	if v, ok := c.Options.Find(option.TagOrigin); ok {
		agg.Origin = v.Str
	}
	if v, ok := c.Options.Find(option.TagBaseAlign); ok {
		agg.Alignment = ast.AlignExplicit
		agg.BaseAlignExp = v.Int
	}
	if v, ok := c.Options.Find(option.TagAlign); ok {
		agg.Alignment = ast.Alignment(v.Int)
	}
}

// AddMember places one item or bitfield member onto the currently-open
// aggregate via the Layout Engine, then emits its member event immediately
// -- the only place a member event is emitted, so each member is reported
// exactly once, in the lexical order it was parsed, after its enclosing
// aggregate's own opening event (spec.md §6.2, §8 testable property 5).
func (c *Context) AddMember(name string, dataType, subType types.ID, isBitfield bool, bitLength int64) error {
	agg := c.currentAggregate()
	if agg == nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("member outside aggregate")))
	}
	//
	it := &ast.Item{DataType: dataType, SubType: subType}
	it.Name = name
	c.applyItemOptions(it)
	//
	kind := ast.MemberItem
	if isBitfield {
		kind = ast.MemberBitfield
	}
	//
	m := &ast.Member{Kind: kind, Name: name, Item: it, BitLength: bitLength}
	//
	if err := c.Layout.PlaceMember(agg, m); err != nil {
		return err
	}
	//
	c.Pool.Alloc(block.KindMember, 0, nil)
	//
	if !c.Cond.ProcessingEnabled() {
		return nil
	}
	//
	return c.Gateway.Aggregate(emit.AggregateEvent{Kind: emit.AggregateMemberEvent, Member: m, Depth: agg.Depth, Agg: agg}, c.emitContext())
}

// AddCommentMember places a comment-only member.
func (c *Context) AddCommentMember(text string) error {
	agg := c.currentAggregate()
	if agg == nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("comment outside aggregate")))
	}
	//
	m := &ast.Member{Kind: ast.MemberComment, CommentText: text}
	_ = c.Layout.PlaceMember(agg, m)
	//
	if !c.Cond.ProcessingEnabled() {
		return nil
	}
	//
	return c.Gateway.Aggregate(emit.AggregateEvent{Kind: emit.AggregateMemberEvent, Member: m, Depth: agg.Depth, Agg: agg}, c.emitContext())
}

// CompleteAggregate closes the innermost open aggregate: resolves its
// layout, then emits only its closing event -- the opening event already
// went out from OpenAggregate/OpenSubaggregate and every member event
// already went out live from AddMember/AddCommentMember, so this never
// re-emits them (spec.md §6.2, §8 testable property 5: each event exactly
// once, in lexical order). A nested subaggregate additionally files itself
// as a subaggregate member of its parent once its own Close event is out.
func (c *Context) CompleteAggregate() error {
	if len(c.aggStack) == 0 {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("END_AGGREGATE")))
	}
	//
	top := c.aggStack[len(c.aggStack)-1]
	c.aggStack = c.aggStack[:len(c.aggStack)-1]
	agg := top.agg
	//
	c.applyAggregateOptions(agg)
	//
	if err := c.Layout.Close(agg); err != nil {
		return err
	}
	//
	c.Pool.Alloc(block.KindAggregate, int64(agg.SizeOf()), nil)
	//
	if parent := c.currentAggregate(); parent != nil {
		m := &ast.Member{Kind: ast.MemberSubaggregate, Name: top.memberName, Subaggregate: agg}
		if err := c.Layout.PlaceMember(parent, m); err != nil {
			return err
		}
		//
		if err := c.State.Apply(state.ActionEnd); err != nil {
			return c.fail(errvec.New("INVACTSTA", errvec.StringArg("END_SUBAGGREGATE")))
		}
		//
		if !c.Cond.ProcessingEnabled() {
			return nil
		}
		//
		if err := c.Gateway.Aggregate(emit.AggregateEvent{Kind: emit.AggregateClose, Depth: agg.Depth, Agg: agg}, c.emitContext()); err != nil {
			return err
		}
		//
		return c.Gateway.Aggregate(emit.AggregateEvent{Kind: emit.AggregateMemberEvent, Member: m, Depth: parent.Depth, Agg: parent}, c.emitContext())
	}
	//
	if _, err := c.Registry.RegisterUnique(types.KindAggregate, agg); err != nil {
		return c.fail(errvec.New("DUPTYPE", errvec.StringArg(agg.TypeName())))
	}
	//
	c.Module.Aggregates = append(c.Module.Aggregates, agg)
	//
	if err := c.State.Apply(state.ActionEnd); err != nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("END_AGGREGATE")))
	}
	//
	if !c.Cond.ProcessingEnabled() {
		return nil
	}
	//
	return c.Gateway.Aggregate(emit.AggregateEvent{Kind: emit.AggregateClose, Depth: agg.Depth, Agg: agg}, c.emitContext())
}

// ---------------------------------------------------------------------------
// ENUM
// ---------------------------------------------------------------------------

// OpenEnum begins an ENUM declaration. ENUMs are not gated by the State
// Machine (spec.md §4.6's parse-state table names no ENUM state; treated
// here, like Comment and Literal, as a leaf action valid from Module scope
// regardless of the current re-entrant state).
func (c *Context) OpenEnum(name string) error {
	c.pendingEnum = &ast.Enumerate{}
	c.pendingEnum.Name = name
	//
	return nil
}

// AddEnumMember appends one member, auto-assigning its value when explicit
// is false.
func (c *Context) AddEnumMember(name string, explicit bool, value int64, comment string) {
	e := c.pendingEnum
	v := value
	if !explicit {
		v = e.NextAutoValue()
	}
	//
	e.Members = append(e.Members, ast.EnumMember{Name: name, Value: v, Comment: comment})
}

// CompleteEnum registers and emits the pending enum.
func (c *Context) CompleteEnum() error {
	e := c.pendingEnum
	//
	if _, err := c.Registry.RegisterUnique(types.KindEnum, e); err != nil {
		return c.fail(errvec.New("DUPTYPE", errvec.StringArg(e.TypeName())))
	}
	//
	c.Module.Enums = append(c.Module.Enums, e)
	c.Pool.Alloc(block.KindEnumerate, int64(e.SizeOf()), nil)
	c.pendingEnum = nil
	//
	if !c.Cond.ProcessingEnabled() {
		return nil
	}
	//
	return c.Gateway.Enumerate(e, c.emitContext())
}

// ---------------------------------------------------------------------------
// ENTRY
// ---------------------------------------------------------------------------

// OpenEntry begins an ENTRY declaration.
func (c *Context) OpenEntry(name string) error {
	if err := c.State.Apply(state.ActionEntry); err != nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("ENTRY")))
	}
	//
	c.pendingEntry = &ast.Entry{}
	c.pendingEntry.Name = name
	c.Options.Clear()
	//
	return nil
}

// AddParameter appends one parameter to the pending entry.
func (c *Context) AddParameter(p ast.Parameter) {
	c.pendingEntry.Parameters = append(c.pendingEntry.Parameters, p)
}

// CompleteEntry applies accumulated options, registers, and emits the
// pending entry.
func (c *Context) CompleteEntry() error {
	en := c.pendingEntry
	//
	if v, ok := c.Options.Find(option.TagAlias); ok {
		en.Alias = v.Str
	}
	if v, ok := c.Options.Find(option.TagLinkage); ok {
		en.Linkage = v.Str
	}
	if v, ok := c.Options.Find(option.TagReturnsType); ok {
		en.ReturnType = types.ID(v.Int)
		en.HasReturn = true
	}
	if c.Options.Has(option.TagVariable) {
		en.Variable = true
	}
	//
	// ENTRYs are callable signatures, not sized storage types, and so carry
	// no Type Registry identifier of their own (spec.md §3); duplicate-name
	// checking is a direct scan of the module's own entry list.
	for _, rec := range c.Module.Entries {
		if rec.TypeName() == en.TypeName() {
			return c.fail(errvec.New("DUPTYPE", errvec.StringArg(en.TypeName())))
		}
	}
	//
	c.Module.Entries = append(c.Module.Entries, en)
	c.Pool.Alloc(block.KindEntry, 0, nil)
	c.pendingEntry = nil
	//
	if err := c.State.Apply(state.ActionEnd); err != nil {
		return c.fail(errvec.New("INVACTSTA", errvec.StringArg("END_ENTRY")))
	}
	//
	if !c.Cond.ProcessingEnabled() {
		return nil
	}
	//
	return c.Gateway.Entry(en, c.emitContext())
}

// ParseConstantNames splits a CONSTANT statement's comma-separated name
// list into individual identifiers, trimming surrounding whitespace -- a
// small convenience for the action-script reader (spec.md §6.1's
// constant_open action carries the raw name-list text).
func ParseConstantNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	//
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			names = append(names, t)
		}
	}
	//
	return names
}

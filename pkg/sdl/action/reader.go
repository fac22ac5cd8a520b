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
package action

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jdbelanger/go-opensdl/pkg/sdl/ast"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/errvec"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/option"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/translator"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/types"
)

// tagNames maps an action script's OPTION verb's first argument to the
// Option Buffer tag it accumulates.
var tagNames = map[string]option.Tag{
	"ALIGN": option.TagAlign, "NOALIGN": option.TagNoAlign, "BASEALIGN": option.TagBaseAlign,
	"COMMON": option.TagCommon, "GLOBAL": option.TagGlobal, "TYPEDEF": option.TagTypedef,
	"DIMENSION": option.TagDimension, "FILL": option.TagFill, "DEFAULT": option.TagDefault,
	"INCREMENT": option.TagIncrement, "LENGTH": option.TagLength, "RADIX": option.TagRadix,
	"RETURNS_TYPE": option.TagReturnsType, "RETURNS_NAMED": option.TagReturnsNamed,
	"SUBTYPE": option.TagSubType, "ALIAS": option.TagAlias, "BASED": option.TagBased,
	"COUNTER": option.TagCounter, "LINKAGE": option.TagLinkage, "MARKER": option.TagMarker,
	"NAMED": option.TagNamed, "ORIGIN": option.TagOrigin, "PREFIX": option.TagPrefix,
	"TAG": option.TagTag, "TYPENAME": option.TagTypeName, "SIGNED": option.TagSigned,
	"VALUE": option.TagValue, "REFERENCE": option.TagReference, "IN": option.TagIn,
	"OUT": option.TagOut, "OPTIONAL": option.TagOptional, "LIST": option.TagList,
	"VARIABLE": option.TagVariable, "MASK": option.TagMask,
}

// Reader drives a translator.Context from a sequence of Records, resolving
// type names against both the base type table and the Type Registry
// (spec.md §4.2 "resolve tries the user Registry first, then falls back to
// the fixed base type vocabulary" -- the same order here: a script may
// shadow-test a base name against a DECLARE of the same name, so the
// Registry is consulted first, matching how the Completion
// Dispatcher itself resolves member/DECLARE data types in spec.md §4.9).
type Reader struct {
	Ctx *translator.Context
}

// NewReader constructs a Reader driving ctx.
func NewReader(ctx *translator.Context) *Reader {
	return &Reader{Ctx: ctx}
}

// resolveType resolves a type name to an ID: Registry first, then the base
// type table. Returns an error (UNDEFTYPE, via the Error Vector) if neither
// recognizes it.
func (r *Reader) resolveType(name string) (types.ID, error) {
	if id := r.Ctx.Registry.Resolve(name); id != types.NoneID {
		return id, nil
	}
	//
	if id, ok := types.LookupBaseName(strings.ToUpper(name)); ok {
		return id, nil
	}
	//
	return types.NoneID, fmt.Errorf("UNDEFTYPE: undefined user type %q", name)
}

// Run executes every record in order against the Reader's Context, halting
// on the first error whose severity the Error Vector (via Errors.HasFatal)
// has marked unrecoverable, but otherwise continuing even after a
// non-fatal diagnostic -- matching spec.md §7's "Propagation: continue,
// accumulate" rule.
func (r *Reader) Run(records []Record) error {
	for _, rec := range records {
		if err := r.dispatch(rec); err != nil {
			// Errors raised locally by the reader itself (unresolved type
			// names, malformed records) are not already in the Error
			// Vector -- record them here so nothing a script gets wrong is
			// silently dropped, mirroring how a *Message raised deeper in
			// the dispatcher already is.
			if _, ok := err.(*errvec.Message); !ok {
				r.Ctx.Errors.Append(errvec.New(mnemonicOf(err), errvec.StringArg(err.Error())))
			}
			//
			if r.Ctx.Errors.HasFatal() {
				return fmt.Errorf("action script line %d: %w", rec.Line, err)
			}
		}
	}
	//
	return nil
}

// mnemonicOf extracts a leading "MNEMONIC: " prefix from a reader-raised
// error, defaulting to SYNTAXERR when none is present.
func mnemonicOf(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ":"); i > 0 && i <= 12 && strings.ToUpper(msg[:i]) == msg[:i] {
		return msg[:i]
	}
	//
	return "SYNTAXERR"
}

func (r *Reader) dispatch(rec Record) error {
	switch rec.Verb {
	case "MODULE":
		name, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		ident := ""
		if len(rec.Args) > 1 {
			ident = rec.Args[1]
		}
		//
		return r.Ctx.OpenModule(name, ident)

	case "END_MODULE":
		return r.Ctx.CloseModule()

	case "OPTION":
		return r.applyOption(rec)

	case "DECLARE":
		name, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		return r.Ctx.OpenDeclare(name)

	case "END_DECLARE":
		targetName, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		target, err := r.resolveType(targetName)
		if err != nil {
			return err
		}
		//
		return r.Ctx.CompleteDeclare(target, targetName)

	case "ITEM":
		name, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		return r.Ctx.OpenItem(name)

	case "END_ITEM":
		typeName, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		dt, err := r.resolveType(typeName)
		if err != nil {
			return err
		}
		//
		return r.Ctx.CompleteItem(dt)

	case "CONSTANT":
		nameList, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		names := translator.ParseConstantNames(nameList)
		comments := make([]string, len(names))
		if len(rec.Args) > 1 {
			for i, c := range strings.Split(rec.Args[1], "|") {
				if i < len(comments) {
					comments[i] = c
				}
			}
		}
		//
		return r.Ctx.OpenConstant(names, comments)

	case "END_CONSTANT":
		return r.Ctx.CompleteConstant()

	case "AGGREGATE":
		name, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		return r.Ctx.OpenAggregate(name, styleArg(rec, 1))

	case "SUBAGGREGATE":
		name, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		return r.Ctx.OpenSubaggregate(name, styleArg(rec, 1))

	case "END_AGGREGATE", "END_SUBAGGREGATE":
		return r.Ctx.CompleteAggregate()

	case "MEMBER":
		return r.applyMember(rec)

	case "COMMENT_MEMBER":
		text, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		return r.Ctx.AddCommentMember(text)

	case "ENUM":
		name, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		return r.Ctx.OpenEnum(name)

	case "ENUM_MEMBER":
		return r.applyEnumMember(rec)

	case "END_ENUM":
		return r.Ctx.CompleteEnum()

	case "ENTRY":
		name, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		return r.Ctx.OpenEntry(name)

	case "PARAM":
		return r.applyParam(rec)

	case "END_ENTRY":
		return r.Ctx.CompleteEntry()

	case "IFLANGUAGE":
		names, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		return r.Ctx.IfLanguage(strings.Split(names, ","))

	case "IFSYMBOL":
		name, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		r.Ctx.IfSymbolNamed(name)
		//
		return nil

	case "ELSE":
		return r.Ctx.ElseBranch()

	case "END_IFLANGUAGE", "END_IFSYMBOL":
		var targets []string
		if len(rec.Args) > 0 {
			targets = strings.Split(rec.Args[0], ",")
		}
		//
		return r.Ctx.EndConditional(targets)

	case "LITERAL":
		text, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		return r.Ctx.Literal(text)

	case "COMMENT":
		text, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		return r.Ctx.Comment(text)

	case "SET_LOCAL":
		name, err := rec.Arg(0)
		if err != nil {
			return err
		}
		//
		v, err := rec.IntArg(1)
		if err != nil {
			return err
		}
		//
		r.Ctx.SetLocal(name, v)
		//
		return nil

	default:
		return fmt.Errorf("SYNTAXERR: unrecognized action %q", rec.Verb)
	}
}

func styleArg(rec Record, index int) ast.AggregateStyle {
	if len(rec.Args) <= index {
		return ast.StyleStruct
	}
	//
	if strings.EqualFold(rec.Args[index], "UNION") {
		return ast.StyleUnion
	}
	//
	return ast.StyleStruct
}

// applyOption handles one OPTION record: OPTION <TAG> [INT <n> | STR <s>].
func (r *Reader) applyOption(rec Record) error {
	tagName, err := rec.Arg(0)
	if err != nil {
		return err
	}
	//
	tag, ok := tagNames[strings.ToUpper(tagName)]
	if !ok {
		return fmt.Errorf("SYNTAXERR: unrecognized option tag %q", tagName)
	}
	//
	if len(rec.Args) == 1 {
		r.Ctx.AddOption(tag, option.Absent())
		return nil
	}
	//
	kind, err := rec.Arg(1)
	if err != nil {
		return err
	}
	//
	val, err := rec.Arg(2)
	if err != nil {
		return err
	}
	//
	switch strings.ToUpper(kind) {
	case "INT":
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("SYNTAXERR: option %s expects an integer, got %q", tagName, val)
		}
		//
		r.Ctx.AddOption(tag, option.IntValue(n))
	case "STR":
		r.Ctx.AddOption(tag, option.StringValue(val))
	default:
		return fmt.Errorf("SYNTAXERR: unrecognized option value kind %q", kind)
	}
	//
	return nil
}

// applyMember handles MEMBER <name> <type> [BITFIELD <subtype> <bitlen>].
func (r *Reader) applyMember(rec Record) error {
	name, err := rec.Arg(0)
	if err != nil {
		return err
	}
	//
	typeName, err := rec.Arg(1)
	if err != nil {
		return err
	}
	//
	dt, err := r.resolveType(typeName)
	if err != nil {
		return err
	}
	//
	if len(rec.Args) >= 5 && strings.EqualFold(rec.Args[2], "BITFIELD") {
		subTypeName := rec.Args[3]
		sub, err := r.resolveType(subTypeName)
		if err != nil {
			return err
		}
		//
		bitLen, err := strconv.ParseInt(rec.Args[4], 10, 64)
		if err != nil {
			return fmt.Errorf("SYNTAXERR: bitfield length %q is not an integer", rec.Args[4])
		}
		//
		return r.Ctx.AddMember(name, dt, sub, true, bitLen)
	}
	//
	return r.Ctx.AddMember(name, dt, types.NoneID, false, 0)
}

// applyEnumMember handles ENUM_MEMBER <name> [VALUE <n>] [COMMENT <text>].
func (r *Reader) applyEnumMember(rec Record) error {
	name, err := rec.Arg(0)
	if err != nil {
		return err
	}
	//
	explicit := false
	var value int64
	comment := ""
	//
	for i := 1; i+1 < len(rec.Args); i += 2 {
		switch strings.ToUpper(rec.Args[i]) {
		case "VALUE":
			v, err := strconv.ParseInt(rec.Args[i+1], 10, 64)
			if err != nil {
				return fmt.Errorf("SYNTAXERR: enum value %q is not an integer", rec.Args[i+1])
			}
			//
			explicit, value = true, v
		case "COMMENT":
			comment = rec.Args[i+1]
		}
	}
	//
	r.Ctx.AddEnumMember(name, explicit, value, comment)
	//
	return nil
}

// applyParam handles PARAM <name> <type> [IN|OUT|OPTIONAL|LIST...].
func (r *Reader) applyParam(rec Record) error {
	name, err := rec.Arg(0)
	if err != nil {
		return err
	}
	//
	typeName, err := rec.Arg(1)
	if err != nil {
		return err
	}
	//
	dt, err := r.resolveType(typeName)
	if err != nil {
		return err
	}
	//
	p := ast.Parameter{Name: name, DataType: dt}
	//
	for _, flag := range rec.Args[2:] {
		switch strings.ToUpper(flag) {
		case "IN":
			p.In = true
		case "OUT":
			p.Out = true
		case "OPTIONAL":
			p.Optional = true
		case "LIST":
			p.List = true
		case "VALUE":
			p.Passing = ast.ByValue
		case "REFERENCE":
			p.Passing = ast.ByReference
		}
	}
	//
	r.Ctx.AddParameter(p)
	//
	return nil
}

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
package errvec

import (
	"fmt"
	"strings"
)

// Arg is one FAO (formatted-argument) value: either a length-carrying
// string or a 32-bit integer (spec.md §4.11).
type Arg struct {
	isString bool
	str      string
	i32      int32
}

// StringArg constructs a string-valued FAO argument.
func StringArg(s string) Arg { return Arg{isString: true, str: s} }

// IntArg constructs an integer-valued FAO argument.
func IntArg(v int32) Arg { return Arg{i32: v} }

// Message is one diagnostic: a mnemonic (resolved against the catalogue for
// its severity and format), its FAO arguments, and optionally a chain of
// nested diagnostics (spec.md §4.11 "additional linked messages are nested
// diagnostics").
type Message struct {
	Mnemonic string
	Args     []Arg
	Nested   []*Message
}

// New constructs a Message, variadically, as spec.md §4.11 describes
// ("Construction is variadic").
func New(mnemonic string, args ...Arg) *Message {
	return &Message{Mnemonic: mnemonic, Args: args}
}

// WithNested attaches additional linked diagnostics and returns m for
// chaining (spec.md §4.11 "exactly one chained message is the primary;
// additional linked messages are nested diagnostics").
func (m *Message) WithNested(nested ...*Message) *Message {
	m.Nested = append(m.Nested, nested...)
	return m
}

// Severity resolves m's severity via the catalogue, defaulting to
// SeverityError for an unknown mnemonic.
func (m *Message) Severity() Severity {
	if e, ok := Lookup(m.Mnemonic); ok {
		return e.Severity
	}
	//
	return SeverityError
}

// Render produces the one-per-line "%FACILITY-sev-MNEMONIC, text" form
// spec.md §7 specifies as the user-visible failure format, including any
// nested messages on subsequent indented lines (spec.md §4.11's
// "syntax error at line 42 -- <parser message>" example).
func (m *Message) Render() string {
	var b strings.Builder
	m.render(&b, "")
	return b.String()
}

func (m *Message) render(b *strings.Builder, indent string) {
	entry, ok := Lookup(m.Mnemonic)
	format := m.Mnemonic
	sev := SeverityError
	//
	if ok {
		format = interpolate(entry.Format, m.Args)
		sev = entry.Severity
	}
	//
	fmt.Fprintf(b, "%s%%%s-%s-%s, %s", indent, Facility, sev, m.Mnemonic, format)
	//
	for _, n := range m.Nested {
		b.WriteString("\n")
		n.render(b, indent+"  ")
	}
}

// Error implements the standard error interface so a *Message can be
// returned anywhere plain Go code expects an error, mirroring the
// teacher's *SyntaxError double-surface (structured type + error
// interface).
func (m *Message) Error() string {
	return m.Render()
}

// interpolate substitutes %s/%d verbs in format with args, in order,
// consuming string args for %s and integer args for %d.
func interpolate(format string, args []Arg) string {
	var b strings.Builder
	argIdx := 0
	//
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			continue
		}
		//
		verb := format[i+1]
		if (verb == 's' || verb == 'd') && argIdx < len(args) {
			a := args[argIdx]
			argIdx++
			//
			if verb == 's' && a.isString {
				b.WriteString(a.str)
			} else if verb == 'd' && !a.isString {
				fmt.Fprintf(&b, "%d", a.i32)
			} else {
				b.WriteByte('%')
				b.WriteByte(verb)
			}
			//
			i++
			continue
		}
		//
		b.WriteByte(c)
	}
	//
	return b.String()
}

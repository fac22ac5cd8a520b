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
// Package cond implements the Conditional Scope (spec.md §4.5): a stack of
// nested IFLANGUAGE / IFSYMBOL / ELSE scopes, the derived per-target
// emission mask, and the overall parse-enabled flag.
//
// Grounded on pkg/corset/compiler/scope.go's ModuleScope, whose
// Selector() util.Option[string] models exactly this "each scope carries an
// optional inherited enable predicate" shape, generalized here into an
// explicit stack since conditional scopes (unlike module scopes) nest and
// pop within a single module.
package cond

import "fmt"

// ScopeKind identifies the lexical kind of one pushed scope.
type ScopeKind uint8

// Scope kinds.
const (
	KindIfLanguage ScopeKind = iota
	KindIfLanguageElse
	KindIfSymbol
	KindIfSymbolElse
)

// scope is one stack frame.
type scope struct {
	kind ScopeKind
	// targets is the set of target identifiers named by an IFLANGUAGE (or
	// its ELSE, which inherits the same set but inverted enable sense).
	targets []string
	// symbolValue is the evaluated IFSYMBOL condition (or its ELSE
	// negation).
	symbolValue bool
}

// Scope tracks the nested conditional stack for one translation.
//
// Grounded on spec.md §4.5: "the global per-target enabled bitmap is the
// bitwise-AND down the stack" and "the global processing-enabled flag is
// false when any IFSYMBOL in the stack is false".
type Scope struct {
	stack []scope
	// known records every target identifier an IFLANGUAGE has named;
	// EnabledFor does not consult it and walks the stack instead.
	known map[string]bool
}

// New constructs an empty Scope (no conditionals open).
func New() *Scope {
	return &Scope{known: make(map[string]bool)}
}

// Depth returns the current nesting depth.
func (s *Scope) Depth() int { return len(s.stack) }

// PushIfLanguage opens an IFLANGUAGE scope naming the given target
// identifiers. Returns an error (distinct from a missing-target END error)
// if names contains a duplicate (spec.md §4.5).
func (s *Scope) PushIfLanguage(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return fmt.Errorf("duplicate language %q in IFLANGUAGE list", n)
		}
		//
		seen[n] = true
		s.known[n] = true
	}
	//
	s.stack = append(s.stack, scope{kind: KindIfLanguage, targets: append([]string(nil), names...)})
	//
	return nil
}

// PushIfSymbol opens an IFSYMBOL scope with the given evaluated boolean
// condition.
func (s *Scope) PushIfSymbol(value bool) {
	s.stack = append(s.stack, scope{kind: KindIfSymbol, symbolValue: value})
}

// Else flips the top scope into its ELSE arm: an IFLANGUAGE's enabled
// target set becomes "every target not in the original list"; an
// IFSYMBOL's condition negates.
func (s *Scope) Else() error {
	if len(s.stack) == 0 {
		return fmt.Errorf("ELSE with no open conditional")
	}
	//
	top := &s.stack[len(s.stack)-1]
	//
	switch top.kind {
	case KindIfLanguage:
		top.kind = KindIfLanguageElse
	case KindIfSymbol:
		top.kind = KindIfSymbolElse
		top.symbolValue = !top.symbolValue
	default:
		return fmt.Errorf("ELSE already used for this conditional")
	}
	//
	return nil
}

// End closes the innermost conditional scope. matchTargets, when non-empty,
// is the target list named on an END_IFLANGUAGE form; any name present at
// open but absent from matchTargets is reported as a distinct error from
// PushIfLanguage's duplicate-name error (spec.md §4.5).
func (s *Scope) End(matchTargets []string) error {
	if len(s.stack) == 0 {
		return fmt.Errorf("END with no open conditional")
	}
	//
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	//
	if (top.kind == KindIfLanguage || top.kind == KindIfLanguageElse) && len(matchTargets) > 0 {
		matched := make(map[string]bool, len(matchTargets))
		for _, n := range matchTargets {
			matched[n] = true
		}
		//
		for _, n := range top.targets {
			if !matched[n] {
				return fmt.Errorf("missing target %q at matching END", n)
			}
		}
	}
	//
	return nil
}

// EnabledFor reports whether the given emitter target identifier is
// currently enabled: the bitwise-AND, down the stack, of every IFLANGUAGE
// scope's membership test (an IFLANGUAGE-ELSE enables exactly the targets
// *not* in its original list).
func (s *Scope) EnabledFor(target string) bool {
	for _, sc := range s.stack {
		switch sc.kind {
		case KindIfLanguage:
			if !contains(sc.targets, target) {
				return false
			}
		case KindIfLanguageElse:
			if contains(sc.targets, target) {
				return false
			}
		}
	}
	//
	return true
}

// ProcessingEnabled reports the global processing-enabled flag: false when
// any IFSYMBOL scope in the stack currently evaluates false (spec.md §4.5).
// When false, all data-producing actions are suppressed, but
// bracket-tracking actions must still run so the stack stays balanced.
func (s *Scope) ProcessingEnabled() bool {
	for _, sc := range s.stack {
		if (sc.kind == KindIfSymbol || sc.kind == KindIfSymbolElse) && !sc.symbolValue {
			return false
		}
	}
	//
	return true
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	//
	return false
}

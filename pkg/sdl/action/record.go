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
// Package action implements a line-oriented stand-in for OpenSDL's
// (explicitly out-of-scope) lexer/parser: pre-tokenized action records, one
// per line, each already split into an action verb and its typed arguments
// (SPEC_FULL.md §0, §4: "never SDL source text"). It exists purely so the
// CLI and tests can drive the Completion Dispatcher end-to-end without
// reimplementing SDL surface syntax.
//
// Grounded on go-corset's pkg/sexp scanner/parser pair (a line/rune-based
// tokenizer feeding a small typed-token stream) trimmed to one line equals
// one action instead of a full s-expression grammar.
package action

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one tokenized action-script line: a verb plus its ordered,
// already-split arguments. A '#' as the first non-blank rune marks a
// comment line, which Scan skips entirely.
type Record struct {
	Verb string
	Args []string
	Line int
}

// Arg returns the i'th argument, or an error if the record has too few.
func (r Record) Arg(i int) (string, error) {
	if i < 0 || i >= len(r.Args) {
		return "", fmt.Errorf("action %s at line %d: expected at least %d argument(s), got %d",
			r.Verb, r.Line, i+1, len(r.Args))
	}
	//
	return r.Args[i], nil
}

// IntArg parses the i'th argument as a base-10 int64.
func (r Record) IntArg(i int) (int64, error) {
	s, err := r.Arg(i)
	if err != nil {
		return 0, err
	}
	//
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("action %s at line %d: argument %d %q is not an integer: %w", r.Verb, r.Line, i, s, err)
	}
	//
	return v, nil
}

// tokenize splits one line into whitespace-separated fields, honoring
// double-quoted segments (which may contain spaces) the way a shell would.
func tokenize(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	//
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	//
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' || r == '\t':
			if inQuotes {
				cur.WriteRune(r)
			} else {
				flush()
			}
		default:
			cur.WriteRune(r)
		}
	}
	//
	flush()
	//
	return fields
}

// Scan tokenizes script text into Records, one per non-blank, non-comment
// line.
func Scan(script string) []Record {
	var records []Record
	//
	for i, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		//
		fields := tokenize(trimmed)
		if len(fields) == 0 {
			continue
		}
		//
		records = append(records, Record{Verb: strings.ToUpper(fields[0]), Args: fields[1:], Line: i + 1})
	}
	//
	return records
}

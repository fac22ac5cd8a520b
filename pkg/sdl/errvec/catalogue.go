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
// Package errvec implements the Error Vector (spec.md §4.11): a ring of
// structured diagnostics -- facility, severity, message number, and
// formatted-argument (FAO) interpolation -- plus the message catalogue used
// to render them.
//
// Grounded on pkg/sexp/error.go + pkg/util/source/source_file.go's
// SyntaxError (span + message + Error() string implementing the standard
// error interface) for the "structured diagnostic that also satisfies plain
// error" shape; the catalogue and ring buffer are extensions spec.md §4.11
// and SPEC_FULL.md §4.2 ask for beyond what a single SyntaxError carries.
package errvec

// Severity is the abstract severity of one diagnostic (spec.md §7).
type Severity uint8

// Severities, matching spec.md §7's taxonomy.
const (
	SeverityWarning Severity = iota
	SeveritySuccess
	SeverityError
	SeverityInfo
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "W"
	case SeveritySuccess:
		return "S"
	case SeverityError:
		return "E"
	case SeverityInfo:
		return "I"
	case SeverityFatal:
		return "F"
	default:
		return "?"
	}
}

// Facility is the subsystem a mnemonic belongs to; OpenSDL's core is the
// sole facility this module defines.
const Facility = "SDL"

// CatalogueEntry pairs a mnemonic's default severity with its
// interpolation format string. %s and %d verbs consume, in order, the
// string and integer FAO arguments attached to a Message.
type CatalogueEntry struct {
	Severity Severity
	Format   string
}

// catalogue is the compiled-in message table, grounded on the mnemonics
// spec.md §7 names and the (mnemonic, severity, format) table shape
// original_source/src/opensdl_message.c uses -- the original loads its
// table from compiled-in static data too, so no file-based catalogue is
// introduced here.
var catalogue = map[string]CatalogueEntry{
	"UNDEFSYM":   {SeverityError, "undefined symbol %s"},
	"UNDEFTYPE":  {SeverityError, "undefined user type %s"},
	"INVACTSTA":  {SeverityError, "invalid action in current state"},
	"SYNTAXERR":  {SeverityError, "syntax error"},
	"INVALIGN":   {SeverityError, "invalid alignment value %d"},
	"BYTSIZ":     {SeverityError, "aggregate %s has a non-integral byte size"},
	"DUPLANG":    {SeverityError, "duplicate language %s on command line"},
	"DUPCONATT":  {SeverityError, "conflicting attribute %s on %s"},
	"INVBITFLD":  {SeverityError, "illegal member type in bitfield context"},
	"UNDEFORG":   {SeverityError, "unresolved ORIGIN member %s"},
	"ZEROLEN":    {SeverityError, "zero-length dimension on %s"},
	"DUPTYPE":    {SeverityError, "type %s already registered"},
	"ALLOCFAIL":  {SeverityFatal, "block pool allocation failure"},
	"ABIMISMATCH": {SeverityFatal, "plugin ABI version mismatch for %s"},
	"NOREAD":     {SeverityFatal, "unable to read input file %s"},
	"NOWRITE":    {SeverityFatal, "unable to open output file %s"},
	"UNALIGNED":  {SeverityWarning, "member %s is not on its natural boundary"},
	"ZEROFILL":   {SeverityWarning, "zero- or negative-length fill on %s"},
	"NEGORIGIN":  {SeverityWarning, "member %s has a negative ORIGIN-relative offset"},
	"TRUNCID":    {SeverityWarning, "identifier %s truncated"},
	"CIRCDEF":    {SeverityInfo, "possible circular definition of %s"},
	"DIMFIXUP":   {SeverityInfo, "fixup applied for dimension discriminant %s"},
}

// Lookup returns the catalogue entry for mnemonic.
func Lookup(mnemonic string) (CatalogueEntry, bool) {
	e, ok := catalogue[mnemonic]
	return e, ok
}

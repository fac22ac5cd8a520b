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

import "go.uber.org/multierr"

// defaultCapacity bounds the ring; once full, the oldest message is
// dropped to make room for the newest (spec.md §4.11 "A ring of records").
const defaultCapacity = 512

// Vector is the Error Vector: every core operation that can fail appends a
// *Message here rather than aborting outright (Fatal-severity messages are
// appended too; the action-script Reader stops at the first record whose
// error leaves a Fatal message here; spec.md §7 Propagation).
type Vector struct {
	capacity int
	messages []*Message
}

// NewVector constructs an empty Vector with the default ring capacity.
func NewVector() *Vector {
	return &Vector{capacity: defaultCapacity}
}

// Append records msg as the next diagnostic, evicting the oldest message if
// the ring is at capacity.
func (v *Vector) Append(msg *Message) {
	v.messages = append(v.messages, msg)
	if len(v.messages) > v.capacity {
		v.messages = v.messages[len(v.messages)-v.capacity:]
	}
}

// Messages returns every recorded diagnostic, oldest first.
func (v *Vector) Messages() []*Message {
	return v.messages
}

// HasFatal reports whether any recorded message is Fatal severity.
func (v *Vector) HasFatal() bool {
	for _, m := range v.messages {
		if m.Severity() == SeverityFatal {
			return true
		}
	}
	//
	return false
}

// HasError reports whether any recorded message is Error or Fatal
// severity (spec.md §7 "the run will exit non-zero").
func (v *Vector) HasError() bool {
	for _, m := range v.messages {
		if s := m.Severity(); s == SeverityError || s == SeverityFatal {
			return true
		}
	}
	//
	return false
}

// Combined folds every recorded message into a single Go error via
// multierr, for callers that only want a pass/fail summary rather than the
// full structured Vector (SPEC_FULL.md §1 ambient error-handling stack).
func (v *Vector) Combined() error {
	var errs error
	for _, m := range v.messages {
		errs = multierr.Append(errs, m)
	}
	//
	return errs
}

// Render produces the full user-visible diagnostic listing: one rendered
// Message per original message, newline-joined (spec.md §7).
func (v *Vector) Render() string {
	out := ""
	for i, m := range v.messages {
		if i > 0 {
			out += "\n"
		}
		//
		out += m.Render()
	}
	//
	return out
}

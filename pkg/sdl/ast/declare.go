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
package ast

import "github.com/jdbelanger/go-opensdl/pkg/sdl/types"

// Declare is a user-defined type alias (spec.md §3): a target type ID, a
// computed size, and the Common Attributes.
type Declare struct {
	named
	CommonAttributes
	// TargetType is the type this DECLARE aliases.
	TargetType types.ID
	// CharLength is the declared length for a `CHAR n` DECLARE form; zero
	// otherwise (spec.md invariant 6).
	CharLength int64
	// size is computed at registration per spec.md §4.3 and cached.
	size int
}

// SizeOf implements oracle.Sized. Per spec.md invariant 6, a DECLARE's size
// is either the size of its target base type, or -- for a `CHAR n` form --
// exactly n.
func (d *Declare) SizeOf() int { return d.size }

// SetSize stores the size computed at registration time; called once by the
// Completion Dispatcher.
func (d *Declare) SetSize(size int) { d.size = size }

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

import (
	"github.com/jdbelanger/go-opensdl/pkg/sdl/types"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/util"
)

// Item is a standalone named typed datum (spec.md §3): storage class,
// optional base alignment, optional dimension, and the Common Attributes.
type Item struct {
	named
	CommonAttributes
	DataType types.ID
	SubType  types.ID // e.g. bitfield/decimal base type, when applicable
	Storage  StorageClass
	// BaseAlignExp is the explicit power-of-two alignment exponent
	// (0..124) applied to the start of this member, when set (spec.md
	// §4.4 BaseAlign).
	BaseAlignExp util.Option[int64]
	Dimension    Dimension
	// Precision/Scale apply to DECIMAL items.
	Precision int64
	Scale     int64
	// CharLength applies to CHAR/CHAR_VARY items.
	CharLength int64
	//
	size int
}

// SizeOf implements oracle.Sized: the cached total storage size, including
// any dimension multiplication, computed at completion time (spec.md §4.3).
func (i *Item) SizeOf() int { return i.size }

// SetSize stores the size computed at completion; called once by the
// Completion Dispatcher / Layout Engine.
func (i *Item) SetSize(size int) { i.size = size }

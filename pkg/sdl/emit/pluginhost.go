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
package emit

import (
	"fmt"
	"path/filepath"
	"plugin"

	"go.uber.org/zap"
)

// TransferVectorVersion is the ABI version this host requires of a loaded
// plugin. Load looks up the plugin's exported Transfer Vector once, refuses
// it when its Version differs, and otherwise calls its New function once;
// the host makes no further call into the plugin after that.
const TransferVectorVersion = 1

// TransferVector is the symbol every OpenSDL emitter plugin must export,
// grounded directly on original_source/include/library/utility/opensdl_plugin.h's
// emitter vtable of function pointers, one per event the plugin supplies;
// translated here into a Go interface value rather than C function
// pointers, since a Go plugin exports symbols, not a struct layout.
type TransferVector struct {
	// Version is the ABI version this plugin was built against; the host
	// refuses to load it on mismatch (spec.md §6.4 "ABIMISMATCH").
	Version int
	// New constructs the plugin's Emitter for one translation.
	New func() Emitter
}

// pluginSymbolName is the fixed exported symbol name every emitter plugin
// must define: `var OpenSDLTransferVector = emit.TransferVector{...}`.
const pluginSymbolName = "OpenSDLTransferVector"

// PluginHost loads emitter plugins from shared objects by path, verifying
// the Transfer Vector ABI version before wiring one into a Gateway.
//
// Logged with go.uber.org/zap (rather than the logrus used elsewhere)
// because plugin load/unload is a distinct operational concern from
// per-declaration compile tracing -- go-corset's own cmd/ wiring keeps a
// separate zap.Logger for exactly this kind of "infrequent, structured,
// operationally significant" event class.
type PluginHost struct {
	log     *zap.Logger
	loaded  map[string]*TransferVector
}

// NewPluginHost constructs a host using log for load/unload diagnostics. A
// nil log falls back to zap's no-op logger.
func NewPluginHost(log *zap.Logger) *PluginHost {
	if log == nil {
		log = zap.NewNop()
	}
	//
	return &PluginHost{log: log, loaded: make(map[string]*TransferVector)}
}

// Load opens the shared object at path, verifies its Transfer Vector ABI
// version, and returns a freshly constructed Emitter from it (spec.md §6.4).
func (h *PluginHost) Load(path string) (Emitter, error) {
	h.log.Info("loading emitter plugin", zap.String("path", path))
	//
	p, err := plugin.Open(path)
	if err != nil {
		h.log.Error("plugin open failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("opensdl: open plugin %s: %w", path, err)
	}
	//
	sym, err := p.Lookup(pluginSymbolName)
	if err != nil {
		h.log.Error("plugin missing transfer vector", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("opensdl: plugin %s has no %s: %w", path, pluginSymbolName, err)
	}
	//
	tv, ok := sym.(*TransferVector)
	if !ok {
		return nil, fmt.Errorf("opensdl: plugin %s's %s has the wrong type", path, pluginSymbolName)
	}
	//
	if tv.Version != TransferVectorVersion {
		h.log.Error("plugin ABI mismatch",
			zap.String("path", path), zap.Int("host", TransferVectorVersion), zap.Int("plugin", tv.Version))
		return nil, fmt.Errorf("opensdl: ABIMISMATCH: plugin %s wants version %d, host is %d",
			path, tv.Version, TransferVectorVersion)
	}
	//
	h.loaded[path] = tv
	h.log.Debug("plugin transfer vector accepted", zap.String("path", path), zap.Int("version", tv.Version))
	//
	return tv.New(), nil
}

// Unload drops the host's record of a loaded plugin. Go's plugin package
// cannot truly unload a shared object from the process; this only stops
// PluginHost from tracking it further, matching spec.md §6.4's note that
// "unload is best-effort bookkeeping, not a hard guarantee of memory
// reclamation".
func (h *PluginHost) Unload(path string) {
	if _, ok := h.loaded[path]; ok {
		h.log.Info("unloading emitter plugin", zap.String("path", path))
		delete(h.loaded, path)
	}
}

// NegotiateFileName synthesizes an output path for target when the user did
// not give one explicitly: base name plus the emitter's FileExtension
// (spec.md §6.2 "File-extension negotiation").
func NegotiateFileName(sourcePath string, target Emitter) string {
	ext := target.FileExtension()
	if ext == "" {
		ext = target.Name()
	}
	//
	base := sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))]
	if filepath.Ext(sourcePath) == "" {
		base = sourcePath
	}
	//
	return base + "." + ext
}

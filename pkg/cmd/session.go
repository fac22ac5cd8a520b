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
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/jdbelanger/go-opensdl/pkg/sdl/action"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/emit"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/translator"
	"github.com/spf13/cobra"
)

// wordSizeBits resolves the mutually-exclusive --b32/--b64 flag pair to a
// concrete Oracle word size; --b32 wins if both are set, mirroring
// go-corset's field/register width overrides taking the more specific flag.
func wordSizeBits(cmd *cobra.Command) uint {
	if GetFlag(cmd, "b32") {
		return 32
	}
	//
	return 64
}

// buildContext wires a fresh translator.Context the way a translation run
// needs: emitters registered per repeatable --lang, suppress mode and
// alignment-check flag applied to the Gateway/Layout Engine, and every
// --symbol name:value pair pre-loaded into the Local Variable Table so the
// action script's IFSYMBOL can resolve it.
func buildContext(cmd *cobra.Command, registerEmitters bool) (*translator.Context, error) {
	entry := log.WithField("component", "translator")
	gw := emit.NewGateway(entry)
	//
	if suppress := GetString(cmd, "suppress"); suppress != "" {
		gw.SetSuppress(suppress)
	}
	//
	if registerEmitters {
		listDest, err := listingDestination(cmd)
		if err != nil {
			return nil, err
		}
		//
		targets := GetStringArray(cmd, "lang")
		if len(targets) == 0 {
			targets = []string{"listing"}
		}
		//
		for _, name := range targets {
			target, err := resolveEmitter(name, listDest)
			if err != nil {
				return nil, err
			}
			//
			gw.Register(target)
		}
	}
	//
	ctx := translator.New(wordSizeBits(cmd), gw, entry)
	ctx.Layout.CheckAlignment = GetFlag(cmd, "member")
	//
	for _, binding := range GetStringArray(cmd, "symbol") {
		name, value, err := parseSymbolBinding(binding)
		if err != nil {
			return nil, err
		}
		//
		ctx.SetLocal(name, value)
	}
	//
	return ctx, nil
}

// listingDestination opens --list's target file, or returns os.Stdout when
// --list was left at its default empty string (spec.md §6.3).
func listingDestination(cmd *cobra.Command) (*os.File, error) {
	path := GetString(cmd, "list")
	if path == "" {
		return os.Stdout, nil
	}
	//
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("NOWRITE: %w", err)
	}
	//
	return f, nil
}

// resolveEmitter maps a --lang name to a registered built-in Emitter.
// "listing" is the only built-in target; anything else is resolved as a
// plugin shared-object path through emit.PluginHost (spec.md §6.4).
func resolveEmitter(name string, listDest *os.File) (emit.Emitter, error) {
	switch name {
	case "listing", "":
		return emit.NewListingEmitter(listDest), nil
	default:
		host := emit.NewPluginHost(nil)
		return host.Load(name)
	}
}

// parseSymbolBinding parses one --symbol name:value argument.
func parseSymbolBinding(binding string) (string, int64, error) {
	parts := strings.SplitN(binding, ":", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("--symbol expects name:value, got %q", binding)
	}
	//
	v, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("--symbol %q: value is not an integer: %w", binding, err)
	}
	//
	return parts[0], v, nil
}

// runScript reads path, optionally emits the header banner, scans the file
// into action.Records, and drives ctx through every one.
func runScript(cmd *cobra.Command, ctx *translator.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("NOREAD: %w", err)
	}
	//
	if GetFlag(cmd, "header") {
		if err := ctx.Banner(path); err != nil {
			return err
		}
	}
	//
	records := action.Scan(string(data))
	reader := action.NewReader(ctx)
	//
	return reader.Run(records)
}

// renderDiagnostics writes every Error Vector message to stderr, coloring
// the severity token when stderr is a terminal (spec.md §7 "user-visible
// failure"; golang.org/x/term gates ANSI the way go-corset's termio does).
func renderDiagnostics(ctx *translator.Context) {
	if len(ctx.Errors.Messages()) == 0 {
		return
	}
	//
	colored := term.IsTerminal(int(os.Stderr.Fd()))
	//
	for _, m := range ctx.Errors.Messages() {
		line := m.Render()
		if colored {
			line = colorize(m.Severity().String(), line)
		}
		//
		fmt.Fprintln(os.Stderr, line)
	}
}

func colorize(sev, line string) string {
	const (
		red    = "\033[31m"
		yellow = "\033[33m"
		reset  = "\033[0m"
	)
	//
	switch sev {
	case "E", "F":
		return red + line + reset
	case "W":
		return yellow + line + reset
	default:
		return line
	}
}

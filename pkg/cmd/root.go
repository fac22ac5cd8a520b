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
// Package cmd implements the OpenSDL translator's Cobra command tree:
// translate, check, version, and the persistent flags spec.md §6.3 names.
//
// Grounded directly on go-corset's pkg/cmd/root.go (rootCmd var, an init()
// registering PersistentFlags, a package-level Version string filled by
// -ldflags) and pkg/cmd/util.go (GetFlag/GetString/GetUint/GetStringArray
// wrappers that os.Exit on a cobra flag-lookup error, since that only
// happens if a flag was declared wrong -- a programming bug, not bad user
// input).
package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building via `-ldflags "-X ... .Version=..."`; see
// internal/buildinfo.
var Version string

// rootCmd is the base command when opensdl is run with no subcommand.
var rootCmd = &cobra.Command{
	Use:   "opensdl",
	Short: "A semantic middle-end compiler for the OpenSDL structure-definition language.",
	Long: "opensdl translates a pre-tokenized action script (standing in for the\n" +
		"out-of-scope SDL lexer/parser) into one or more emitted target languages,\n" +
		"or validates it with no emitters registered (\"check\" mode).",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to rootCmd and runs it; called once from
// cmd/opensdl/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Word size (mutually exclusive, like go-corset's --field-width /
	// --register-width pair).
	rootCmd.PersistentFlags().Bool("b32", false, "target a 32-bit word size")
	rootCmd.PersistentFlags().Bool("b64", true, "target a 64-bit word size")
	// Layout/emission options (spec.md §6.3).
	rootCmd.PersistentFlags().String("align", "natural", "default aggregate alignment policy (accepted; not read by translation)")
	rootCmd.PersistentFlags().Bool("check", true, "member alignment checking (accepted; not read; --member controls it)")
	rootCmd.PersistentFlags().Bool("comments", true, "pass comments through to emitters (accepted; not read; comments always pass)")
	rootCmd.PersistentFlags().Bool("copy", true, "copy the source action script into the listing (accepted; not read by translation)")
	rootCmd.PersistentFlags().Bool("header", true, "emit the stars/created-by/file-info banner")
	rootCmd.PersistentFlags().String("list", "", "write a listing to the given file (default: stdout)")
	rootCmd.PersistentFlags().Bool("member", true, "report members not on their natural boundary")
	rootCmd.PersistentFlags().String("suppress", "", "suppress prefix|tag attributes in emitted output")
	rootCmd.PersistentFlags().StringArrayP("lang", "l", []string{}, "register an emitter target (repeatable)")
	rootCmd.PersistentFlags().StringArrayP("symbol", "s", []string{}, "bind an IFSYMBOL name:value pair (repeatable)")
	rootCmd.PersistentFlags().Bool("trace", false, "Block Pool allocation tracing (accepted; not read by translation)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}

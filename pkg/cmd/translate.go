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

	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [action-script]",
	Short: "Run an action script through the core and drive registered emitters",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, err := buildContext(cmd, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		//
		if err := runScript(cmd, ctx, args[0]); err != nil {
			// A fatal diagnostic is already in ctx.Errors and gets
			// rendered below; a plain error that never reached the Error
			// Vector (NOREAD reading the script file, or an emitter
			// rejecting a banner event) leaves nothing to render.
			if len(ctx.Errors.Messages()) == 0 {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
		//
		renderDiagnostics(ctx)
		//
		if ctx.Errors.HasError() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
}

// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	"github.com/bartekus/mrlint/cmd/mrlint/commands"
	"github.com/bartekus/mrlint/cmd/mrlint/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		if !clierr.IsSilent(err) {
			fmt.Fprintln(os.Stderr, "mrlint:", err)
			if hint := clierr.HintOf(err); hint != "" {
				fmt.Fprintln(os.Stderr, hint)
			}
		}
		os.Exit(clierr.ExitCodeOf(err))
	}
}

// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command panelcfg inspects, validates and previews workstation screen configs.
package main

import (
	"fmt"
	"os"

	"github.com/z5labs/panelcfg/internal/cli"
)

func main() {
	err := cli.New(cli.Name("panelcfg")).Run(os.Args[1:]...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "panelcfg:", err)
		os.Exit(1)
	}
}

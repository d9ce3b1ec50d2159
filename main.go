// SPDX-License-Identifier: MPL-2.0

package main

import cmd "fsinv-cli/cmd/fsinv"

func main() {
	cmd.Execute()
}

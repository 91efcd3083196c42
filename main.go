// SPDX-License-Identifier: MPL-2.0

package main

import cmd "chain-cli/cmd/chain"

func main() {
	cmd.Execute()
}

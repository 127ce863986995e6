// ABOUTME: Entry point for the gatekey CLI
// ABOUTME: Terminal client for the Gatekey account service

package main

import (
	"fmt"
	"os"

	"github.com/gatekeyhq/gatekey-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ABOUTME: Entry point for gymbot CLI.
// ABOUTME: Invokes the root Cobra command and exits non-zero on failure.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

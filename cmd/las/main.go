// Package main provides the las CLI: a just-in-time utility CSS generator
// that emits rules only for the classes a project actually uses.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

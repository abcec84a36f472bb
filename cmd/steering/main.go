// Package main provides the steering binary entry point.
// Steering loads a directory of standards documents and resolves which
// of them apply to a given development task, within a content budget.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

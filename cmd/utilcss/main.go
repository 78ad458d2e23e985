// Package main provides the utilcss CLI for generating utility-class CSS.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Issues were already reported; only the exit code is left.
		if !errors.Is(err, errIssuesFound) {
			fmt.Fprintf(os.Stderr, "utilcss: %v\n", err)
		}
		os.Exit(1)
	}
}

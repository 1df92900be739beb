// Package main provides the entry point for the portfolio CLI.
package main

import (
	"fmt"
	"os"

	"github.com/adarsh8081/adarsh-portfolio/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

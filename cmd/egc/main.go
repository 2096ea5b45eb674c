// Package main is the entry point for the egc CLI tool.
package main

import (
	"github.com/egeria-tools/egc/internal/cmd"
)

func main() {
	cmd.Execute()
}

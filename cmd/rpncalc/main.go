// Package main provides the rpncalc command.
package main

import "github.com/mesh-intelligence/rpncalc/internal/cli"

func main() {
	cli.Execute()
}

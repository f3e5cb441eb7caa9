// Package main is the entry point for the greet CLI.
package main

import "github.com/xvierd/greet-cli/cmd"

func main() {
	cmd.Execute()
}

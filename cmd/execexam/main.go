// Package main is the entry point for the execexam CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/execexam/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}

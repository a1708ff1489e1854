// Package main provides the fieldlint CLI.
package main

import (
	"os"

	"github.com/fieldlint/fieldlint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

// main.go
//
// Entry point for the quantumbox binary. All behaviour lives in internal/cli.

package main

import (
	"os"

	"github.com/robalobadob/quantumbox/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

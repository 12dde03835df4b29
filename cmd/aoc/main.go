// aoc CLI - runs registered puzzle solutions and inspects Chronospatial programs
package main

import (
	"fmt"
	"os"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command ndtool intersects and adds N-dimensional arrays.
package main

import (
	"os"

	"github.com/roach88/ndtool/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}

// Package main is the entry point for the olapq CLI binary.
package main

import (
	"os"

	"github.com/datawheel/olap-client-go/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}

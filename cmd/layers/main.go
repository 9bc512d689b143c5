// Package main provides the layers CLI: build a layer from flags, run a
// forward pass on random input and print a report.
package main

import (
	"context"

	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(NewCLI().ExecuteContext(context.Background()))
}

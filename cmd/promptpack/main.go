// Package main is the entry point for the promptpack CLI.
package main

import (
	gocontext "context"
	"os"

	pkgcontext "github.com/promptpack/promptpack/pkg/context"
)

func main() {
	ctx, cancel := pkgcontext.WithSignal(gocontext.Background(), os.Interrupt)
	defer cancel()

	if err := ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

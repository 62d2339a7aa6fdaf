// Package main is the single-binary entrypoint for Ascend.
// One binary, local data, no accounts.
package main

import "github.com/ascend-app/ascend/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}

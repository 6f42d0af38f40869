// Idiomatic entrypoint for the Cobra CLI; delegates to the root command in cmd/root.go.

package main

import (
	"github.com/gcnsim/gcnsim/cmd"
)

func main() {
	cmd.Execute()
}

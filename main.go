package main

import (
	"fmt"
	"os"

	"github.com/temirov/starship-svn/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main prints the branch name or working copy root and exits non-zero on failure.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}

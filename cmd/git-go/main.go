// Command git-go is a from-scratch, on-disk-format-compatible
// reimplementation of a subset of git's plumbing and porcelain commands.
package main

import (
	"fmt"
	"os"

	"github.com/brodalo/gogit/env"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := newRootCmd(cwd, env.NewFromOs())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

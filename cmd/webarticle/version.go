package main

import (
	"fmt"

	"github.com/fwojciec/webarticle"
)

// Run executes the version command.
func (c *VersionCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "webarticle %s\n", webarticle.Version)
	return nil
}

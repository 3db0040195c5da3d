package main

import "fmt"

// Run executes the filters command.
func (c *FiltersCmd) Run(deps *Dependencies) error {
	for _, name := range deps.Filters.Names() {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}

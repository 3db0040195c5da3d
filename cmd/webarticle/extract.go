package main

import "fmt"

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	p, closePipeline, err := deps.BuildPipeline(c.FetchFlags)
	if err != nil {
		return err
	}
	defer closePipeline()

	article, err := p.Extract(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	if c.Title && !c.Raw {
		fmt.Fprintln(deps.Stdout, article.Title)
	}
	fmt.Fprintln(deps.Stdout, article.Text)
	return nil
}

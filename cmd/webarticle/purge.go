package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/webarticle"
)

// Run executes the purge command.
func (c *PurgeCmd) Run(deps *Dependencies) error {
	cache, closeCache, err := deps.OpenCache(c.CacheFlags)
	if err != nil {
		return err
	}
	defer closeCache()

	purger, ok := cache.(webarticle.CachePurger)
	if !ok {
		return webarticle.Errorf(webarticle.EUNSUPPORTED, "cache does not support purging")
	}

	kind := c.Kind
	if kind == "all" {
		kind = ""
	}
	n, err := purger.Purge(deps.Ctx, kind, time.Now().Add(-c.OlderThan))
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Purged %d cache entries.\n", n)
	return nil
}

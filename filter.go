package webarticle

import (
	"regexp"
	"sort"
	"strings"
)

// Filter rewrites raw HTML before it is tidied and extracted.
// Filters never fail; on unusable input they return it unchanged.
type Filter func(html string) string

// FilterRegistry maps filter names to filters.
type FilterRegistry struct {
	filters map[string]Filter
}

// NewFilterRegistry returns a registry holding the built-in filters.
func NewFilterRegistry() *FilterRegistry {
	r := &FilterRegistry{filters: make(map[string]Filter)}
	r.Register("remove_entities", RemoveEntities)
	return r
}

// Register adds or replaces the filter stored under name.
func (r *FilterRegistry) Register(name string, f Filter) {
	r.filters[name] = f
}

var filterNameRe = regexp.MustCompile(`[^a-zA-Z_]`)

// Lookup returns the filter registered under name. Characters outside
// [a-zA-Z_] are ignored. Returns ENOTFOUND for unknown names.
func (r *FilterRegistry) Lookup(name string) (Filter, error) {
	clean := filterNameRe.ReplaceAllString(name, "")
	f, ok := r.filters[clean]
	if !ok {
		return nil, Errorf(ENOTFOUND, "unknown filter %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return f, nil
}

// Names returns the registered filter names in sorted order.
func (r *FilterRegistry) Names() []string {
	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain resolves a comma-separated list of filter names into a single
// filter that applies them in order. Empty names are skipped.
func (r *FilterRegistry) Chain(list string) (Filter, error) {
	var chain []Filter
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}
	return func(html string) string {
		for _, f := range chain {
			html = f(html)
		}
		return html
	}, nil
}

var danglingEntityRe = regexp.MustCompile(`&#[a-zA-Z]+`)

// RemoveEntities strips malformed numeric references such as "&#nbsp"
// that would otherwise leak into the text as literal characters.
func RemoveEntities(html string) string {
	return danglingEntityRe.ReplaceAllString(html, "")
}

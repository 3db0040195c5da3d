// Package goquery provides HTML pre-filters built on
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webarticle"
)

// Filter names registered by Register.
const (
	RemoveNoiseName  = "remove_noise"
	RemoveHiddenName = "remove_hidden"
)

// noiseSelectors match embedded widgets and chrome that are never part of
// an article body.
var noiseSelectors = []string{
	"iframe",
	"form",
	"button",
	"svg",
	"canvas",
	"template",
	".ads",
	".ad",
	".advert",
	".advertisement",
	".sponsored",
	".cookie-banner",
	".cookie-consent",
	"#cookie-banner",
	".newsletter",
	".share",
	".social-share",
	".sharing",
	".related-posts",
	"[role='dialog']",
	"[role='alert']",
}

var (
	noiseSelector  = strings.Join(noiseSelectors, ", ")
	hiddenSelector = "[hidden], [aria-hidden='true'], [style]"
	displayNoneRe  = regexp.MustCompile(`(?i)(display\s*:\s*none|visibility\s*:\s*hidden)`)
)

// Register adds the goquery filters to reg.
func Register(reg *webarticle.FilterRegistry) {
	reg.Register(RemoveNoiseName, RemoveNoise)
	reg.Register(RemoveHiddenName, RemoveHidden)
}

// RemoveNoise drops iframes, forms, ads, cookie banners and share widgets.
func RemoveNoise(html string) string {
	return rewrite(html, func(doc *goquery.Document) {
		doc.Find(noiseSelector).Remove()
	})
}

// RemoveHidden drops elements hidden with the hidden attribute,
// aria-hidden="true" or an inline display:none style.
func RemoveHidden(html string) string {
	return rewrite(html, func(doc *goquery.Document) {
		doc.Find(hiddenSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
			if _, ok := s.Attr("hidden"); ok {
				return true
			}
			if v, _ := s.Attr("aria-hidden"); strings.EqualFold(v, "true") {
				return true
			}
			style, _ := s.Attr("style")
			return displayNoneRe.MatchString(style)
		}).Remove()
	})
}

// rewrite parses html, applies fn and renders the document back. The
// input is returned unchanged when it cannot be parsed or rendered.
func rewrite(html string, fn func(*goquery.Document)) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	fn(doc)
	out, err := doc.Html()
	if err != nil {
		return html
	}
	return out
}

// Package webarticle extracts the main article text from arbitrary web pages.
// It walks the HTML token stream, groups text runs by their approximate
// structural position, and returns the densest group as the article.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, sqlite/, chardet/). The
// clustering algorithm itself lives in cluster/.
package webarticle

// Version is the release version, overridden at build time with -ldflags.
var Version = "0.1.0"

// DefaultUserAgent is the User-Agent sent when none is configured.
func DefaultUserAgent() string {
	return "webarticle/" + Version
}

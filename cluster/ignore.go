package cluster

import (
	"strings"

	"golang.org/x/net/html"
)

// IgnoreRule names the reason an element's text is discarded.
type IgnoreRule int

const (
	RuleNone IgnoreRule = iota
	RuleTag
	RuleID
	RuleClass
	RuleFooterClass
)

// Ignore reports whether the rule discards the element's text.
func (r IgnoreRule) Ignore() bool {
	return r != RuleNone
}

func (r IgnoreRule) String() string {
	switch r {
	case RuleTag:
		return "tag"
	case RuleID:
		return "id"
	case RuleClass:
		return "class"
	case RuleFooterClass:
		return "footer-class"
	}
	return "none"
}

var ignoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"option":   true,
	"ul":       true,
	"li":       true,
	"legend":   true,
	"object":   true,
	"noscript": true,
	"label":    true,
	"footer":   true,
	"nav":      true,
	"aside":    true,
}

// Rule decides whether the text inside tag should be discarded. Footer and
// copyright markers in id or class win over the tag name, so a footer class
// is reported even on tags that are ignored anyway.
func Rule(tag string, attrs []html.Attribute) IgnoreRule {
	id, hasID := lastAttr(attrs, "id")
	class, hasClass := lastAttr(attrs, "class")
	id, class = strings.ToLower(id), strings.ToLower(class)

	switch {
	case hasID && (strings.Contains(id, "footer") || strings.Contains(id, "copyright")):
		return RuleID
	case hasClass && strings.Contains(class, "footer"):
		return RuleFooterClass
	case hasClass && strings.Contains(class, "copyright"):
		return RuleClass
	case ignoredTags[strings.ToLower(tag)]:
		return RuleTag
	}
	return RuleNone
}

// lastAttr returns the value of the last attribute named key.
func lastAttr(attrs []html.Attribute, key string) (string, bool) {
	for i := len(attrs) - 1; i >= 0; i-- {
		if strings.EqualFold(attrs[i].Key, key) {
			return attrs[i].Val, true
		}
	}
	return "", false
}

package cluster_test

import (
	"testing"

	"github.com/fwojciec/webarticle/cluster"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func TestRule(t *testing.T) {
	t.Parallel()

	attrs := func(kv ...string) []html.Attribute {
		var out []html.Attribute
		for i := 0; i+1 < len(kv); i += 2 {
			out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
		}
		return out
	}

	tests := []struct {
		name string
		tag  string
		with []html.Attribute
		want cluster.IgnoreRule
	}{
		{"plain paragraph", "p", nil, cluster.RuleNone},
		{"article", "article", nil, cluster.RuleNone},
		{"script", "script", nil, cluster.RuleTag},
		{"uppercase script", "SCRIPT", nil, cluster.RuleTag},
		{"aside", "aside", nil, cluster.RuleTag},
		{"uppercase tag", "NAV", nil, cluster.RuleTag},
		{"list item", "li", nil, cluster.RuleTag},
		{"footer id", "div", attrs("id", "page-Footer"), cluster.RuleID},
		{"copyright id", "div", attrs("id", "copyright-notice"), cluster.RuleID},
		{"footer tag with footer class", "footer", attrs("class", "Footer"), cluster.RuleFooterClass},
		{"footer class", "div", attrs("class", "site-footer"), cluster.RuleFooterClass},
		{"copyright class", "span", attrs("class", "Copyright"), cluster.RuleClass},
		{"footer class on ignored tag", "aside", attrs("class", "footer"), cluster.RuleFooterClass},
		{"unrelated class", "div", attrs("class", "content"), cluster.RuleNone},
		{"last duplicate wins", "div", attrs("class", "footer", "class", "main"), cluster.RuleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := cluster.Rule(tt.tag, tt.with)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != cluster.RuleNone, got.Ignore())
		})
	}
}

func TestIgnoreRule_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", cluster.RuleNone.String())
	assert.Equal(t, "tag", cluster.RuleTag.String())
	assert.Equal(t, "footer-class", cluster.RuleFooterClass.String())
}

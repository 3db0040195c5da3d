package cluster_test

import (
	"testing"

	"github.com/fwojciec/webarticle/cluster"
	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"named", "&amp;", "&"},
		{"named non-ascii", "&nbsp;", "\u00a0"},
		{"named semicolon", "&semi;", ";"},
		{"decimal", "&#65;", "A"},
		{"hex", "&#x42;", "B"},
		{"upper hex", "&#X263A;", "\u263a"},
		{"unknown name", "&bogus;", "&bogus;"},
		{"legacy prefix only", "&ampx;", "&ampx;"},
		{"bad hex digits", "&#xZZ;", "&#xZZ;"},
		{"empty number", "&#;", "&#;"},
		{"above unicode range", "&#1114112;", "&#1114112;"},
		{"surrogate", "&#xD800;", "&#xD800;"},
		{"overflow", "&#99999999999999999999;", "&#99999999999999999999;"},
		{"not a reference", "amp", "amp"},
		{"missing semicolon", "&amp", "&amp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cluster.Decode(tt.ref))
		})
	}
}

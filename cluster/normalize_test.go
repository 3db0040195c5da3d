package cluster_test

import (
	"testing"

	"github.com/fwojciec/webarticle/cluster"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii equivalents", "Hello\u00a0world\u2019s", "Hello world's"},
		{"collapses whitespace", "  a \n\t b  ", "a b"},
		{"drops stray punctuation", "word , next ; end ( x ) y ! z ? w", "word next end x y z w"},
		{"keeps edge punctuation", ". middle .", ". middle ."},
		{"keeps attached punctuation", "Hello, world.", "Hello, world."},
		{"removes dash runs", "before -- after---end", "before afterend"},
		{"removes period runs", "wait... what", "wait what"},
		{"keeps single dash", "well-known", "well-known"},
		{"cleans up after removals", "x --. y", "x y"},
		{"empty", "", ""},
		{"only whitespace", " \n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cluster.Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"a . -- . b",
		"x --. y",
		"one .. . two",
		"( ( ( a",
		"tail ! ! !",
		"   lead , , trail",
		"The quick---brown fox... jumps ; over",
	}

	for _, in := range inputs {
		once := cluster.Normalize(in)
		assert.Equal(t, once, cluster.Normalize(once), "input %q", in)
	}
}

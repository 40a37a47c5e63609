package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/topics/pkg/types"
)

var sample = []types.Topic{
	{ID: "1", Name: "HTML", Links: []string{"a", "b", "c"}, Image: types.AssetImage("html.png")},
	{ID: "3", Name: "JavaScript", Links: []string{"Docs: https://developer.mozilla.org"}, Image: "https://img.example/js.png"},
	{ID: "5", Name: "React Native", Links: []string{"x", "y"}, Image: types.AssetImage("react-logo.png")},
}

func ids(ts []types.Topic) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		expression string
		want       []string
	}{
		{`len(links) > 1`, []string{"1", "5"}},
		{`asset`, []string{"1", "5"}},
		{`!asset`, []string{"3"}},
		{`name contains "Script"`, []string{"3"}},
		{`any(links, {# startsWith "Docs: "})`, []string{"3"}},
		{`id == "5" || len(links) == 3`, []string{"1", "5"}},
		{`false`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			p, err := Compile(tt.expression)
			require.NoError(t, err)
			got, err := p.Filter(sample)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("")
	assert.ErrorIs(t, err, ErrEmptyExpression)

	_, err = Compile(`len(links)`)
	assert.Error(t, err, "non-boolean expressions are rejected")

	_, err = Compile(`colour == "red"`)
	assert.Error(t, err, "unknown variables are rejected")

	_, err = Compile(`name ==`)
	assert.Error(t, err)
}

func TestProgramString(t *testing.T) {
	p, err := Compile(`asset`)
	require.NoError(t, err)
	assert.Equal(t, "asset", p.String())
}

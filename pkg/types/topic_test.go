package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicClone(t *testing.T) {
	orig := Topic{ID: "1", Name: "HTML", Links: []string{"a", "b"}, Image: AssetImage("html.png")}
	cp := orig.Clone()
	cp.Links[0] = "changed"
	cp.Links = append(cp.Links, "c")

	assert.Equal(t, []string{"a", "b"}, orig.Links, "clone must not share the links array")
	assert.Equal(t, orig.ID, cp.ID)
	assert.Equal(t, orig.Image, cp.Image)
}

func TestTopicCloneNilLinks(t *testing.T) {
	cp := Topic{ID: "1", Name: "x"}.Clone()
	assert.NotNil(t, cp.Links)
	assert.Empty(t, cp.Links)
}

func TestAssetImage(t *testing.T) {
	img := AssetImage("react-logo.png")
	assert.Equal(t, "asset:react-logo.png", img)
	assert.True(t, IsAssetImage(img))
	assert.Equal(t, "react-logo.png", AssetName(img))

	uri := "https://upload.wikimedia.org/wikipedia/commons/6/6a/JavaScript-logo.png"
	assert.False(t, IsAssetImage(uri))
	assert.Equal(t, "", AssetName(uri))
	assert.False(t, IsAssetImage(PlaceholderImage))
}

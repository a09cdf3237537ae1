package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessHTMLContentAddsClasses(t *testing.T) {
	got := ProcessHTMLContent("<h1>Terms</h1><p>Welcome.</p>")

	assert.Contains(t, got, `<h1 class="text-4xl font-bold mb-4 mt-6">Terms</h1>`)
	assert.Contains(t, got, `<p class="mb-4 text-base-content leading-relaxed">Welcome.</p>`)
}

func TestProcessHTMLContentKeepsAttributes(t *testing.T) {
	got := ProcessHTMLContent(`<a href="/pricing">See pricing</a>`)

	assert.Equal(t, `<a href="/pricing" class="link link-primary">See pricing</a>`, got)
}

func TestProcessHTMLContentSkipsStyledElements(t *testing.T) {
	in := `<p class="hero">Already styled</p>`

	assert.Equal(t, in, ProcessHTMLContent(in))
}

func TestProcessHTMLContentLeavesUnknownTagsAlone(t *testing.T) {
	in := `<section><pre>raw</pre></section>`

	assert.Equal(t, in, ProcessHTMLContent(in))
}

func TestGetGravatarURL(t *testing.T) {
	got := GetGravatarURL("Owner@Hangarline.example ", 64)

	assert.Contains(t, got, "https://www.gravatar.com/avatar/")
	assert.Contains(t, got, "s=64")
	assert.Equal(t, got, GetGravatarURL("owner@hangarline.example", 64))
}

package linkverify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinksFromReader(t *testing.T) {
	doc := `<html><head>
<link rel="stylesheet" href="/assets/styleguide.css">
<script src="https://cdn.example.com/x.js"></script>
</head><body>
<a href="/forms/inputs/text-field.html"> Text <b>Field</b> </a>
<img src="logo.png" alt="Logo">
<a name="anchor-only"></a>
</body></html>`

	links, err := ExtractLinksFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, links, 4)

	require.Equal(t, "link", links[0].Tag)
	require.Equal(t, "stylesheet", links[0].Text)
	require.True(t, links[0].IsInternal)

	require.Equal(t, "script", links[1].Tag)
	require.False(t, links[1].IsInternal)

	require.Equal(t, "a", links[2].Tag)
	require.Equal(t, "TextField", links[2].Text)
	require.Equal(t, "href", links[2].Attribute)

	require.Equal(t, "Logo", links[3].Text)
	require.Equal(t, "src", links[3].Attribute)
}

func TestShouldVerifyLink(t *testing.T) {
	cases := map[string]bool{
		"/forms/select.html":     true,
		"../buttons/x.html":      true,
		"#top":                   false,
		"mailto:a@example.com":   false,
		"javascript:void(0)":     false,
		"data:image/png;base64,": false,
		"https://example.com/":   false,
	}
	for u, want := range cases {
		link := &Link{URL: u, IsInternal: isInternalLink(u)}
		require.Equal(t, want, ShouldVerifyLink(link), u)
	}
}

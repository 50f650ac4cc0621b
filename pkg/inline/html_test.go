package inline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/pkg/inline"
)

func TestToHTMLNode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		span inline.Span
		want string
	}{
		{inline.Plain("This is a text node"), "This is a text node"},
		{inline.Bold("bold"), "<b>bold</b>"},
		{inline.Italic("italic"), "<i>italic</i>"},
		{inline.Code("x := 1"), "<code>x := 1</code>"},
		{inline.Link("boot.dev", "https://boot.dev"), `<a href="https://boot.dev">boot.dev</a>`},
		{inline.Image("a cat", "/img/cat.png"), `<img src="/img/cat.png" alt="a cat"></img>`},
	}

	for _, tt := range tests {
		t.Run(tt.span.Kind.String(), func(t *testing.T) {
			t.Parallel()

			node, err := inline.ToHTMLNode(tt.span)
			require.NoError(t, err)

			got, err := node.HTML()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToHTMLNode_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := inline.ToHTMLNode(inline.Span{Text: "x", Kind: inline.Kind(99)})
	assert.ErrorIs(t, err, inline.ErrUnknownSpanKind)

	_, err = inline.ToHTMLNodes([]inline.Span{inline.Plain("ok"), {Kind: inline.Kind(7)}})
	assert.ErrorIs(t, err, inline.ErrUnknownSpanKind)
}

func TestTextToHTMLNodes(t *testing.T) {
	t.Parallel()

	nodes, err := inline.TextToHTMLNodes("**bold** and `code`")
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	var out string
	for _, node := range nodes {
		html, err := node.HTML()
		require.NoError(t, err)
		out += html
	}
	assert.Equal(t, "<b>bold</b> and <code>code</code>", out)

	_, err = inline.TextToHTMLNodes("a **b")
	assert.ErrorIs(t, err, inline.ErrUnterminatedDelimiter)
}

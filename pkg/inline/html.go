package inline

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gomdsite/pkg/htmlnode"
)

// ErrUnknownSpanKind is returned when a span carries a kind outside the
// declared set.
var ErrUnknownSpanKind = errors.New("unknown span kind")

// ToHTMLNode maps a span to its HTML leaf.
func ToHTMLNode(span Span) (htmlnode.Node, error) {
	switch span.Kind {
	case KindPlain:
		return htmlnode.NewText(span.Text), nil
	case KindBold:
		return htmlnode.NewLeaf("b", span.Text), nil
	case KindItalic:
		return htmlnode.NewLeaf("i", span.Text), nil
	case KindCode:
		return htmlnode.NewLeaf("code", span.Text), nil
	case KindLink:
		return htmlnode.NewLeaf("a", span.Text,
			htmlnode.Attr{Key: "href", Value: span.Target},
		), nil
	case KindImage:
		return htmlnode.NewLeaf("img", "",
			htmlnode.Attr{Key: "src", Value: span.Target},
			htmlnode.Attr{Key: "alt", Value: span.Text},
		), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpanKind, span.Kind)
	}
}

// ToHTMLNodes maps each span to its HTML leaf, preserving order.
func ToHTMLNodes(spans []Span) ([]htmlnode.Node, error) {
	nodes := make([]htmlnode.Node, 0, len(spans))
	for _, span := range spans {
		node, err := ToHTMLNode(span)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// TextToHTMLNodes tokenizes text and maps the spans to HTML leaves.
func TextToHTMLNodes(text string) ([]htmlnode.Node, error) {
	spans, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return ToHTMLNodes(spans)
}

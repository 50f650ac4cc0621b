// Package htmlnode provides the in-memory HTML tree produced by the Markdown
// compiler and its serialization to an HTML string.
//
// A tree is made of two node variants: a Leaf holds a value and never owns
// children, a Parent owns an ordered list of children and never carries a
// value. Trees are built acyclic and every child belongs to exactly one parent.
package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for serialization failures.
var (
	// ErrMissingValue is returned when a leaf has no value.
	ErrMissingValue = errors.New("leaf node has no value")

	// ErrMissingTag is returned when a parent has no tag.
	ErrMissingTag = errors.New("parent node has no tag")

	// ErrMissingChildren is returned when a parent has a nil child list.
	ErrMissingChildren = errors.New("parent node has no children")
)

// Node is an element of an HTML tree. It is implemented only by *Leaf and
// *Parent.
type Node interface {
	// HTML serializes the node and its descendants.
	HTML() (string, error)

	writeHTML(sb *strings.Builder) error
}

// Leaf is a node that holds content directly.
type Leaf struct {
	// Tag is the element name. An empty tag emits Value verbatim.
	Tag string

	// Value is the element content. Nil means the value is absent.
	Value *string

	// Attrs are rendered in order on the opening tag.
	Attrs Attributes
}

// Parent is a node that holds only children.
type Parent struct {
	// Tag is the element name. It is required.
	Tag string

	// Children are serialized in order. A nil slice means the children are
	// absent; a non-nil empty slice renders an empty element.
	Children []Node

	// Attrs are rendered in order on the opening tag.
	Attrs Attributes
}

// NewLeaf creates a leaf element with the given tag and value.
func NewLeaf(tag, value string, attrs ...Attr) *Leaf {
	return &Leaf{Tag: tag, Value: &value, Attrs: attrs}
}

// NewText creates an untagged leaf that serializes to value unchanged.
func NewText(value string) *Leaf {
	return &Leaf{Value: &value}
}

// NewParent creates a parent element. A nil children slice is replaced with
// an empty one; build a Parent literal to model absent children.
func NewParent(tag string, children []Node, attrs ...Attr) *Parent {
	if children == nil {
		children = []Node{}
	}
	return &Parent{Tag: tag, Children: children, Attrs: attrs}
}

// HTML implements Node.
func (l *Leaf) HTML() (string, error) {
	var sb strings.Builder
	if err := l.writeHTML(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (l *Leaf) writeHTML(sb *strings.Builder) error {
	if l.Value == nil {
		if l.Tag == "" {
			return ErrMissingValue
		}
		return fmt.Errorf("<%s>: %w", l.Tag, ErrMissingValue)
	}

	if l.Tag == "" {
		sb.WriteString(*l.Value)
		return nil
	}

	writeOpenTag(sb, l.Tag, l.Attrs)
	sb.WriteString(*l.Value)
	writeCloseTag(sb, l.Tag)
	return nil
}

// HTML implements Node.
func (p *Parent) HTML() (string, error) {
	var sb strings.Builder
	if err := p.writeHTML(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (p *Parent) writeHTML(sb *strings.Builder) error {
	if p.Tag == "" {
		return ErrMissingTag
	}
	if p.Children == nil {
		return fmt.Errorf("<%s>: %w", p.Tag, ErrMissingChildren)
	}

	writeOpenTag(sb, p.Tag, p.Attrs)
	for i, child := range p.Children {
		if child == nil {
			return fmt.Errorf("<%s> child %d: nil node", p.Tag, i)
		}
		if err := child.writeHTML(sb); err != nil {
			return fmt.Errorf("<%s> child %d: %w", p.Tag, i, err)
		}
	}
	writeCloseTag(sb, p.Tag)
	return nil
}

func writeOpenTag(sb *strings.Builder, tag string, attrs Attributes) {
	sb.WriteByte('<')
	sb.WriteString(tag)
	attrs.writeHTML(sb)
	sb.WriteByte('>')
}

func writeCloseTag(sb *strings.Builder, tag string) {
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
}

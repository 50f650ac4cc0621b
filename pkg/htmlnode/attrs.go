package htmlnode

import "strings"

// Attr is a single HTML attribute.
type Attr struct {
	Key   string
	Value string
}

// Attributes is an ordered attribute list. Order of insertion is the order
// of serialization.
type Attributes []Attr

// HTML renders the attributes as ` key="value"` pairs.
// Values are emitted as-is: quotes inside a value are not escaped.
func (a Attributes) HTML() string {
	if len(a) == 0 {
		return ""
	}
	var sb strings.Builder
	a.writeHTML(&sb)
	return sb.String()
}

func (a Attributes) writeHTML(sb *strings.Builder) {
	for _, attr := range a {
		sb.WriteByte(' ')
		sb.WriteString(attr.Key)
		sb.WriteString(`="`)
		sb.WriteString(attr.Value)
		sb.WriteByte('"')
	}
}

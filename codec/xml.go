// Package codec renders and parses typed resource bodies for the dispatcher.
package codec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"reflect"
	"strings"
)

// RootNamer overrides the root element name used when a value is encoded.
// Without it the Go type name is used.
type RootNamer interface {
	XMLRootName() string
}

// XML encodes values as namespaced XML documents. Decoding ignores element
// namespaces so documents from any API version parse into the same types.
type XML struct {
	Namespace string
	Indent    bool
}

func NewXML(namespace string) XML {
	return XML{Namespace: strings.TrimSpace(namespace)}
}

func (c XML) Encode(value any, mediaType string) ([]byte, error) {
	if err := requireFamily(mediaType, "xml"); err != nil {
		return nil, err
	}
	if isNil(value) {
		return nil, fmt.Errorf("codec: cannot encode nil value as %s", mediaType)
	}
	root, err := rootName(value)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	if c.Indent {
		encoder.Indent("", "  ")
	}
	start := xml.StartElement{Name: xml.Name{Space: c.Namespace, Local: root}}
	if err := encoder.EncodeElement(value, start); err != nil {
		return nil, fmt.Errorf("codec: encode %s: %w", root, err)
	}
	if err := encoder.Flush(); err != nil {
		return nil, fmt.Errorf("codec: flush %s: %w", root, err)
	}
	return buf.Bytes(), nil
}

func (c XML) Decode(body []byte, mediaType string, out any) error {
	if err := requireFamily(mediaType, "xml"); err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("codec: empty %s body", mediaType)
	}
	if err := xml.Unmarshal(body, out); err != nil {
		return fmt.Errorf("codec: decode %s: %w", mediaType, err)
	}
	return nil
}

func rootName(value any) (string, error) {
	if namer, ok := value.(RootNamer); ok {
		if name := strings.TrimSpace(namer.XMLRootName()); name != "" {
			return name, nil
		}
	}
	typ := reflect.TypeOf(value)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Name() == "" {
		return "", fmt.Errorf("codec: cannot derive root element for %T", value)
	}
	return typ.Name(), nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// requireFamily accepts an empty media type, the bare family type, or any
// structured suffix of the family such as +xml.
func requireFamily(mediaType string, family string) error {
	base := strings.ToLower(strings.TrimSpace(mediaType))
	if idx := strings.Index(base, ";"); idx >= 0 {
		base = strings.TrimSpace(base[:idx])
	}
	switch {
	case base == "":
		return nil
	case base == "application/"+family, base == "text/"+family:
		return nil
	case strings.HasSuffix(base, "+"+family):
		return nil
	}
	return fmt.Errorf("codec: media type %q is not %s", mediaType, family)
}

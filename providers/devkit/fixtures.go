package devkit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"sort"
	"strings"

	"github.com/goliatone/go-clouds/core"
)

// BodyMatcher validates a request body.
type BodyMatcher func(body []byte) error

func ExactBody(expected []byte) BodyMatcher {
	return func(body []byte) error {
		if !bytes.Equal(bytes.TrimSpace(body), bytes.TrimSpace(expected)) {
			return fmt.Errorf("expected %q, got %q", expected, body)
		}
		return nil
	}
}

func BodyContains(fragments ...string) BodyMatcher {
	return func(body []byte) error {
		for _, fragment := range fragments {
			if !bytes.Contains(body, []byte(fragment)) {
				return fmt.Errorf("missing %q in %q", fragment, body)
			}
		}
		return nil
	}
}

func EmptyBody() BodyMatcher {
	return func(body []byte) error {
		if len(bytes.TrimSpace(body)) > 0 {
			return fmt.Errorf("expected empty body, got %q", body)
		}
		return nil
	}
}

// XMLEquivalent accepts a body carrying the same elements, attributes and
// text as expected. Namespace prefixes, declarations, comments, attribute
// order and indentation are ignored.
func XMLEquivalent(expected []byte) BodyMatcher {
	want, err := canonicalXML(expected)
	return func(body []byte) error {
		if err != nil {
			return fmt.Errorf("expected document: %w", err)
		}
		got, parseErr := canonicalXML(body)
		if parseErr != nil {
			return parseErr
		}
		if len(got) != len(want) {
			return fmt.Errorf("expected %d xml tokens, got %d", len(want), len(got))
		}
		for idx := range want {
			if want[idx] != got[idx] {
				return fmt.Errorf("xml token %d: expected %s, got %s", idx, want[idx], got[idx])
			}
		}
		return nil
	}
}

func canonicalXML(document []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(document))
	tokens := []string{}
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		switch typed := token.(type) {
		case xml.StartElement:
			attrs := make([]string, 0, len(typed.Attr))
			for _, attr := range typed.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				attrs = append(attrs, attr.Name.Local+"="+attr.Value)
			}
			sort.Strings(attrs)
			tokens = append(tokens, "<"+typed.Name.Local+" "+strings.Join(attrs, " ")+">")
		case xml.EndElement:
			tokens = append(tokens, "</"+typed.Name.Local+">")
		case xml.CharData:
			if text := strings.TrimSpace(string(typed)); text != "" {
				tokens = append(tokens, text)
			}
		}
	}
	return tokens, nil
}

// Fixtures loads response and request bodies from a file system such as
// os.DirFS("testdata").
type Fixtures struct {
	fsys fs.FS
}

func NewFixtures(fsys fs.FS) Fixtures {
	return Fixtures{fsys: fsys}
}

func (f Fixtures) Load(name string) ([]byte, error) {
	if f.fsys == nil {
		return nil, fmt.Errorf("devkit: fixtures file system is nil")
	}
	body, err := fs.ReadFile(f.fsys, strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, fmt.Errorf("devkit: load fixture %s: %w", name, err)
	}
	return body, nil
}

func (f Fixtures) MustLoad(name string) []byte {
	body, err := f.Load(name)
	if err != nil {
		panic(err)
	}
	return body
}

// Response serves fixture name with the given status and content type.
func (f Fixtures) Response(status int, mediaType string, name string) core.TransportResponse {
	return core.TransportResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": mediaType},
		Body:       f.MustLoad(name),
	}
}

func OK(mediaType string, body []byte) core.TransportResponse {
	return core.TransportResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": mediaType},
		Body:       append([]byte(nil), body...),
	}
}

func NoContent() core.TransportResponse {
	return core.TransportResponse{StatusCode: http.StatusNoContent, Headers: map[string]string{}}
}

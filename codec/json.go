package codec

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

type JSON struct{}

func NewJSON() JSON {
	return JSON{}
}

func (JSON) Encode(value any, mediaType string) ([]byte, error) {
	if err := requireFamily(mediaType, "json"); err != nil {
		return nil, err
	}
	if isNil(value) {
		return nil, fmt.Errorf("codec: cannot encode nil value as %s", mediaType)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("codec: encode json: %w", err)
	}
	return payload, nil
}

func (JSON) Decode(body []byte, mediaType string, out any) error {
	if err := requireFamily(mediaType, "json"); err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("codec: empty %s body", mediaType)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("codec: decode json: %w", err)
	}
	return nil
}

package director

import (
	"github.com/goliatone/go-clouds/codec"
	"github.com/goliatone/go-clouds/core"
)

var errorCodec = codec.NewXML(Namespace)

// DecodeError parses a vCloud error body. It is registered as the dispatcher
// error decoder so every APIError carries an *Error detail when one parses.
func DecodeError(body []byte, mediaType string) (any, error) {
	var out Error
	if err := errorCodec.Decode(body, mediaType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AsError returns the vCloud error detail attached to err, if any.
func AsError(err error) (*Error, bool) {
	apiErr, ok := core.AsAPIError(err)
	if !ok {
		return nil, false
	}
	detail, ok := apiErr.Detail.(*Error)
	return detail, ok && detail != nil
}

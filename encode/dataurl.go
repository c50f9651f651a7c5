package encode

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// encodeDataURL serializes value through enc and wraps the bytes in a
// "data:<media>;base64,<payload>" URL.
func encodeDataURL(enc BinaryEncoder, value any) (string, error) {
	mediaType, err := enc.MediaType(value)
	if err != nil {
		return "", err
	}
	raw, err := enc.Encode(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(raw)), nil
}

// decodeDataURL parses a data URL, decodes the payload through enc, and
// validates the declared media type against the decoded value.
func decodeDataURL(enc BinaryEncoder, encoded any) (any, error) {
	s, ok := encoded.(string)
	if !ok {
		return nil, errNotDataURL
	}

	dataType, b64, ok := strings.Cut(s, ",")
	if !ok {
		return nil, errNotDataURL
	}
	_, mediaDescription, ok := strings.Cut(dataType, ":")
	if !ok {
		return nil, errNotDataURL
	}
	mediaType, _, ok := strings.Cut(mediaDescription, ";")
	if !ok {
		return nil, errNotDataURL
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, errNotDataURL
	}

	value, err := enc.Decode(raw)
	if err != nil {
		return nil, err
	}

	expected, err := enc.MediaType(value)
	if err != nil {
		return nil, err
	}
	if mediaType != expected {
		return nil, fmt.Errorf("not a valid media type, expected %s but got %s", expected, mediaType)
	}
	return value, nil
}

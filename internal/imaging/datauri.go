package imaging

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeDataURI wraps raw bytes in a base64 data URI.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI reverses EncodeDataURI, returning the raw bytes and the
// declared MIME type. A missing MIME type defaults to image/jpeg.
func DecodeDataURI(uri string) ([]byte, string, error) {
	head, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return nil, "", fmt.Errorf("not a data URI")
	}
	if !strings.HasPrefix(head, "data:") {
		return nil, "", fmt.Errorf("not a data URI")
	}

	mime := "image/jpeg"
	meta := strings.TrimPrefix(head, "data:")
	meta = strings.TrimSuffix(meta, ";base64")
	if meta != "" {
		mime = meta
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding data URI payload: %w", err)
	}
	return data, mime, nil
}

// IsDataURI reports whether s is a data URI rather than a remote URL or
// bare base64.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

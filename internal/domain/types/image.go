package types

import (
	"encoding/base64"
	"strings"
)

// PNGDataURIPrefix marks a base64 PNG payload for the rendering layer.
const PNGDataURIPrefix = "data:image/png;base64,"

// DataURI is an image ready to be used as an <img> src.
type DataURI string

// PNGDataURI wraps a base64 payload as returned by the diagram service.
// The payload is kept byte-for-byte.
func PNGDataURI(payload string) DataURI { return DataURI(PNGDataURIPrefix + payload) }

// String returns the string form of the data URI.
func (d DataURI) String() string { return string(d) }

// Payload returns the base64 part of the URI.
func (d DataURI) Payload() string { return strings.TrimPrefix(string(d), PNGDataURIPrefix) }

// PNG decodes the payload into raw image bytes.
func (d DataURI) PNG() ([]byte, error) {
	return base64.StdEncoding.DecodeString(d.Payload())
}

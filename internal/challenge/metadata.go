package challenge

import (
	"errors"
	"fmt"
	"regexp"
)

// The identity backend stores challenge metadata verbatim and hands it
// back on the next round, so the format only needs to be unambiguous to
// us: a literal tag followed by the fixed-width code.
const metadataPrefix = "AUTHCODE-"

var metadataPattern = regexp.MustCompile(fmt.Sprintf(`^%s(\d{%d})$`, metadataPrefix, CodeLength))

// ErrCorruptMetadata means a round's stored metadata does not match the
// expected format. In a correctly functioning session this never happens;
// it indicates a corrupted or foreign round and the session must fail
// rather than guess.
var ErrCorruptMetadata = errors.New("challenge metadata does not match expected format")

// EncodeMetadata wraps a one-time code in the opaque per-round metadata
// string carried by the identity backend.
func EncodeMetadata(code string) string {
	return metadataPrefix + code
}

// DecodeMetadata recovers the code embedded by EncodeMetadata.
func DecodeMetadata(metadata string) (string, error) {
	m := metadataPattern.FindStringSubmatch(metadata)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrCorruptMetadata, metadata)
	}
	return m[1], nil
}

// ABOUTME: Base64 envelope around the binary CRDT update as stored by Docs.
// ABOUTME: Pure string<->bytes conversion with a typed decode error.

package yjs

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrFormat reports that a stored envelope is not valid base64. The data
// is malformed, not transient; callers must not retry.
var ErrFormat = errors.New("document envelope is not valid base64")

// ErrCorruptDocument reports that decoded bytes do not parse as a Yjs
// update. Distinct from an empty document, which decodes fine.
var ErrCorruptDocument = errors.New("corrupt document update")

// DecodeEnvelope unwraps the base64 envelope into raw update bytes. The
// backend writes standard base64; URL-safe input is accepted too since
// the web editor emits it in some code paths.
func DecodeEnvelope(envelope string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err == nil {
		return raw, nil
	}
	raw, uerr := base64.URLEncoding.DecodeString(envelope)
	if uerr == nil {
		return raw, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrFormat, err)
}

// EncodeEnvelope wraps raw update bytes in the base64 envelope.
func EncodeEnvelope(update []byte) string {
	return base64.StdEncoding.EncodeToString(update)
}

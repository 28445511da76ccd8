// ABOUTME: Tests for the base64 content envelope.
// ABOUTME: Covers both base64 variants and malformed input.

package yjs

import (
	"bytes"
	"errors"
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	update := []byte{0, 0, 1, 2, 3, 250}

	decoded, err := DecodeEnvelope(EncodeEnvelope(update))
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if !bytes.Equal(decoded, update) {
		t.Errorf("got %v, want %v", decoded, update)
	}
}

func TestDecodeEnvelopeURLSafe(t *testing.T) {
	// The web editor sometimes produces URL-safe base64.
	if _, err := DecodeEnvelope("AAE-_w=="); err != nil {
		t.Errorf("url-safe base64 rejected: %v", err)
	}
}

func TestDecodeEnvelopeInvalid(t *testing.T) {
	for _, in := range []string{"not-base64!!", "???", "a"} {
		if _, err := DecodeEnvelope(in); !errors.Is(err, ErrFormat) {
			t.Errorf("DecodeEnvelope(%q): got %v, want ErrFormat", in, err)
		}
	}
}

func TestDecodeEnvelopeEmpty(t *testing.T) {
	decoded, err := DecodeEnvelope("")
	if err != nil {
		t.Fatalf("DecodeEnvelope(\"\"): %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("expected empty update, got %v", decoded)
	}
}

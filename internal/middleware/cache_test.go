package middleware

import (
	"bytes"
	"net/http"
	"testing"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{
		"Content-Type": []string{"application/json"},
		"X-Custom":     []string{"a", "b"},
	}
	body := []byte(`{"items":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}

	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decodePayload reported failure")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if vals := gotHdr["X-Custom"]; len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Errorf("X-Custom = %v", vals)
	}
	if !bytes.Equal(gotBody, body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestEncodeDecodePayload_EmptyBody(t *testing.T) {
	payload, err := encodePayload(http.StatusOK, http.Header{}, nil)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, _, body, ok := decodePayload(payload)
	if !ok || status != http.StatusOK || len(body) != 0 {
		t.Errorf("got status=%d body=%q ok=%v", status, body, ok)
	}
}

func TestDecodePayload_Truncated(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 8)} {
		if _, _, _, ok := decodePayload(bs); ok && len(bs) < 8 {
			t.Errorf("decodePayload(%v) unexpectedly ok", bs)
		}
	}
	// Header length pointing past the buffer must be rejected.
	bad := make([]byte, 8)
	bad[7] = 200
	if _, _, _, ok := decodePayload(bad); ok {
		t.Error("expected oversized header length to be rejected")
	}
}

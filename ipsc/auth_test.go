package ipsc

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"testing"
)

func TestParseAuthKey(t *testing.T) {
	key, err := ParseAuthKey("1A2B")
	if err != nil {
		t.Fatal(err)
	}
	if len(key) != 20 {
		t.Fatalf("expected 20 byte key, got %d", len(key))
	}
	if !bytes.Equal(key[18:], []byte{0x1a, 0x2b}) || !bytes.Equal(key[:18], make([]byte, 18)) {
		t.Fatalf("expected left padded key, got %x", key)
	}

	if key, err = ParseAuthKey("0x1a2b"); err != nil || key[19] != 0x2b {
		t.Fatalf("0x prefix not accepted: %x, %v", key, err)
	}
	if key, err = ParseAuthKey(""); err != nil || key != nil {
		t.Fatalf("expected no key, got %x, %v", key, err)
	}
	if _, err = ParseAuthKey("xyz"); err == nil {
		t.Fatal("expected error for invalid hex")
	}
	if _, err = ParseAuthKey("1234567890123456789012345678901234567890ab"); err == nil {
		t.Fatal("expected error for oversized key")
	}
}

func TestHMACAuthenticator(t *testing.T) {
	key, _ := ParseAuthKey("1a2b3c")
	auth := NewAuthenticator(key)
	if _, ok := auth.(HMACAuthenticator); !ok {
		t.Fatalf("expected HMACAuthenticator, got %T", auth)
	}

	payload := []byte{MasterAliveRequest, 0x00, 0x00, 0x00, 0x64}
	signed := auth.Sign(payload)
	if len(signed) != len(payload)+HashSize {
		t.Fatalf("expected %d bytes, got %d", len(payload)+HashSize, len(signed))
	}

	mac := hmac.New(sha1.New, key)
	mac.Write(payload)
	if want := mac.Sum(nil)[:HashSize]; !bytes.Equal(signed[len(payload):], want) {
		t.Fatalf("expected raw truncated digest %x, got %x", want, signed[len(payload):])
	}

	if !auth.Verify(signed) {
		t.Fatal("signed packet does not verify")
	}
	if !bytes.Equal(auth.Strip(signed), payload) {
		t.Fatal("strip did not return the payload")
	}

	signed[2] ^= 0xff
	if auth.Verify(signed) {
		t.Fatal("tampered packet verifies")
	}
	if auth.Verify(payload[:4]) {
		t.Fatal("packet shorter than the hash verifies")
	}

	other := NewAuthenticator([]byte("another key"))
	if other.Verify(auth.Sign(payload)) {
		t.Fatal("packet signed with another key verifies")
	}
}

func TestNullAuthenticator(t *testing.T) {
	auth := NewAuthenticator(nil)
	payload := []byte{DeregistrationRequest, 0, 0, 0, 1}
	if !bytes.Equal(auth.Sign(payload), payload) {
		t.Fatal("null authenticator modified the packet")
	}
	if !auth.Verify(payload) || !bytes.Equal(auth.Strip(payload), payload) {
		t.Fatal("null authenticator rejected the packet")
	}
}

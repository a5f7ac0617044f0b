package ipsc

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// HashSize is the size of the truncated HMAC-SHA1 appended to authenticated
// packets.
const HashSize = 10

// Authenticator signs outgoing and verifies incoming packets.
type Authenticator interface {
	// Sign returns data with a signature appended.
	Sign(data []byte) []byte

	// Verify reports whether the signature of a received packet is valid.
	Verify(data []byte) bool

	// Strip returns the payload of a received packet without signature.
	Strip(data []byte) []byte
}

// NewAuthenticator returns an HMAC authenticator if a key is given, or a
// NullAuthenticator otherwise.
func NewAuthenticator(key []byte) Authenticator {
	if len(key) == 0 {
		return NullAuthenticator{}
	}
	return HMACAuthenticator{Key: key}
}

// ParseAuthKey decodes a hexadecimal authentication key, left padded with
// zeroes to 20 bytes.
func ParseAuthKey(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, nil
	}
	if len(s) > 40 {
		return nil, errors.Errorf("authentication key is %d hex digits, at most 40 allowed", len(s))
	}
	key, err := hex.DecodeString(strings.Repeat("0", 40-len(s)) + s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid authentication key")
	}
	return key, nil
}

// HMACAuthenticator uses the first 10 bytes of an HMAC-SHA1 over the payload.
type HMACAuthenticator struct {
	Key []byte
}

func (a HMACAuthenticator) hash(payload []byte) []byte {
	mac := hmac.New(sha1.New, a.Key)
	mac.Write(payload)
	return mac.Sum(nil)[:HashSize]
}

func (a HMACAuthenticator) Sign(data []byte) []byte {
	signed := make([]byte, 0, len(data)+HashSize)
	signed = append(signed, data...)
	return append(signed, a.hash(data)...)
}

func (a HMACAuthenticator) Verify(data []byte) bool {
	if len(data) < HashSize {
		return false
	}
	return hmac.Equal(data[len(data)-HashSize:], a.hash(data[:len(data)-HashSize]))
}

func (a HMACAuthenticator) Strip(data []byte) []byte {
	if len(data) < HashSize {
		return nil
	}
	return data[:len(data)-HashSize]
}

// NullAuthenticator is used on networks without authentication.
type NullAuthenticator struct{}

func (NullAuthenticator) Sign(data []byte) []byte  { return data }
func (NullAuthenticator) Verify(data []byte) bool  { return true }
func (NullAuthenticator) Strip(data []byte) []byte { return data }

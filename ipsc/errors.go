package ipsc

import "github.com/pkg/errors"

// Per-packet error conditions. They are logged and the packet is dropped,
// they never stop a running network.
var (
	ErrMalformedPacket = errors.New("ipsc: malformed packet")
	ErrAuthentication  = errors.New("ipsc: authentication failed")
	ErrUnknownSender   = errors.New("ipsc: unknown sender")
)

func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedPacket, format, args...)
}

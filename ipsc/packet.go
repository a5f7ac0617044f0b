package ipsc

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of the common packet header: type and peer ID.
const HeaderSize = 5

// Header is the common header of all IPSC packets.
type Header struct {
	Type   byte
	PeerID PeerID
}

// DecodeHeader decodes the packet type and sender radio ID.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, malformed("packet of %d bytes is too short for a header", len(data))
	}
	var h = Header{Type: data[0]}
	copy(h.PeerID[:], data[1:5])
	return h, nil
}

// Registration carries the mode and flags sent with registration and
// keep-alive packets.
type Registration struct {
	Mode        byte
	Flags       []byte
	ModeDecode  Mode
	FlagsDecode Flags
}

// DecodeRegistration decodes the mode byte and flags field at offsets 5 and
// 6-9.
func DecodeRegistration(data []byte) (*Registration, error) {
	if len(data) < 10 {
		return nil, malformed("registration packet of %d bytes, expected at least 10", len(data))
	}
	flags, err := DecodeFlags(data[6:10])
	if err != nil {
		return nil, err
	}
	r := &Registration{
		Mode:        data[5],
		Flags:       append([]byte(nil), data[6:10]...),
		ModeDecode:  DecodeMode(data[5]),
		FlagsDecode: flags,
	}
	return r, nil
}

// DecodeNumPeers returns the peer count carried by a master registration
// reply.
func DecodeNumPeers(data []byte) (int, error) {
	if len(data) < 12 {
		return 0, malformed("registration reply of %d bytes has no peer count", len(data))
	}
	return int(binary.BigEndian.Uint16(data[10:12])), nil
}

// UserHeader holds the routing fields of group/private voice and data
// packets.
type UserHeader struct {
	Type     byte
	PeerID   PeerID
	SrcID    uint32 // Source subscriber
	DstID    uint32 // Destination subscriber or talkgroup
	Timeslot uint8  // 0=ts1, 1=ts2
	End      bool   // Last packet of the call
}

// DecodeUserHeader decodes a user traffic header.
func DecodeUserHeader(data []byte) (*UserHeader, error) {
	if len(data) < 18 {
		return nil, malformed("user packet of %d bytes, expected at least 18", len(data))
	}
	var h = &UserHeader{
		Type:  data[0],
		SrcID: uint32(data[6])<<16 | uint32(data[7])<<8 | uint32(data[8]),
		DstID: uint32(data[9])<<16 | uint32(data[10])<<8 | uint32(data[11]),
		End:   data[17]&FlagCallEnd != 0,
	}
	copy(h.PeerID[:], data[1:5])
	if data[17]&FlagTimeslotCall != 0 {
		h.Timeslot = 1
	}
	return h, nil
}

func (h *UserHeader) String() string {
	return fmt.Sprintf("%s from peer %s: %d -> %d on TS%d (end=%t)",
		TypeName(h.Type), h.PeerID, h.SrcID, h.DstID, h.Timeslot+1, h.End)
}

// newPacket concatenates a packet type, sender ID and the remaining fields.
func newPacket(packetType byte, id PeerID, fields ...[]byte) []byte {
	size := HeaderSize
	for _, field := range fields {
		size += len(field)
	}
	p := make([]byte, 0, size)
	p = append(p, packetType)
	p = append(p, id[:]...)
	for _, field := range fields {
		p = append(p, field...)
	}
	return p
}

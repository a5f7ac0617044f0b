package ipsc

import (
	"encoding/binary"
	"net"
)

// PeerListEntrySize is the size of one peer list record: radio ID, IPv4
// address, port and mode byte.
const PeerListEntrySize = 11

// PeerListEntry is one record of a peer list.
type PeerListEntry struct {
	ID   PeerID
	IP   net.IP
	Port uint16
	Mode byte
}

// BuildPeerList encodes entries, prefixed with the byte length of the
// concatenated records. Entries without an IPv4 address are skipped.
func BuildPeerList(entries []PeerListEntry) []byte {
	var body = make([]byte, 0, len(entries)*PeerListEntrySize)
	for _, entry := range entries {
		ip := entry.IP.To4()
		if ip == nil {
			log.Warningf("peer %s has no IPv4 address, not included in peer list", entry.ID)
			continue
		}
		body = append(body, entry.ID[:]...)
		body = append(body, ip...)
		body = append(body, byte(entry.Port>>8), byte(entry.Port))
		body = append(body, entry.Mode)
	}

	var b = make([]byte, 2, 2+len(body))
	binary.BigEndian.PutUint16(b, uint16(len(body)))
	return append(b, body...)
}

// ParsePeerList decodes a length prefixed peer list.
func ParsePeerList(data []byte) ([]PeerListEntry, error) {
	if len(data) < 2 {
		return nil, malformed("peer list of %d bytes has no length", len(data))
	}
	size := int(binary.BigEndian.Uint16(data))
	if size%PeerListEntrySize != 0 {
		return nil, malformed("peer list length %d is not a multiple of %d", size, PeerListEntrySize)
	}
	if size > len(data)-2 {
		return nil, malformed("peer list length %d exceeds %d available bytes", size, len(data)-2)
	}

	entries := make([]PeerListEntry, 0, size/PeerListEntrySize)
	for i := 2; i < size+2; i += PeerListEntrySize {
		var entry PeerListEntry
		copy(entry.ID[:], data[i:i+4])
		entry.IP = net.IPv4(data[i+4], data[i+5], data[i+6], data[i+7]).To4()
		entry.Port = binary.BigEndian.Uint16(data[i+8 : i+10])
		entry.Mode = data[i+10]
		entries = append(entries, entry)
	}
	return entries, nil
}

package ipsc

import (
	"encoding/hex"
	"fmt"
	"io"
	"net"
)

// Dump writes a human readable rendition of a raw IPSC packet to w. The
// packet may still carry its signature.
func Dump(w io.Writer, prefix string, addr net.Addr, data []byte) {
	if len(data) < HeaderSize {
		fmt.Fprintf(w, "%d bytes of unreadable data %s %s:\n", len(data), prefix, addr)
		fmt.Fprint(w, hex.Dump(data))
		return
	}

	h, _ := DecodeHeader(data)
	fmt.Fprintf(w, "%d bytes of %s %s %s, peer %s:\n", len(data), TypeName(h.Type), prefix, addr, h.PeerID)
	fmt.Fprint(w, hex.Dump(data))

	switch h.Type {
	case MasterRegistrationRequest, MasterRegistrationReply, MasterAliveRequest, MasterAliveReply,
		PeerAliveRequest, PeerAliveReply:
		if reg, err := DecodeRegistration(data); err == nil {
			fmt.Fprintf(w, "\tmode:  %s\n", reg.ModeDecode)
			fmt.Fprintf(w, "\tflags: %s\n", reg.FlagsDecode)
		}
	case PeerListReply:
		entries, err := ParsePeerList(data[HeaderSize:])
		if err != nil {
			fmt.Fprintf(w, "\tinvalid peer list: %v\n", err)
			return
		}
		for _, entry := range entries {
			fmt.Fprintf(w, "\tpeer %s at %s:%d, mode %s\n", entry.ID, entry.IP, entry.Port, DecodeMode(entry.Mode))
		}
	case CallMonStatus:
		if info, err := DecodeCallMonStatus(data); err == nil {
			fmt.Fprintf(w, "\t%s call from %d to %d on TS%d: %s\n",
				info.CallTypeName(), info.RFSource, info.RFTarget, info.Timeslot+1, info.StatusName())
		}
	default:
		if !UserGenerated[h.Type] {
			return
		}
		if uh, err := DecodeUserHeader(data); err == nil {
			fmt.Fprintf(w, "\t%s\n", uh)
		}
	}
}

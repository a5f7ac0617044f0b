package ipsc

import "fmt"

const (
	// IPSC Version Information
	Version14  byte = 0x00
	Version15  byte = 0x00
	Version15A byte = 0x00
	Version16  byte = 0x01
	Version17  byte = 0x02
	Version18  byte = 0x02
	Version19  byte = 0x03
	Version22  byte = 0x04

	// Known IPSC Message Types
	CallConfirmation          byte = 0x05 // Confirmation FROM the recipient of a confirmed call.
	TextMessageAck            byte = 0x54 // Doesn't seem to mean success, though. This code is sent success or failure
	CallMonStatus             byte = 0x61 //  |
	CallMonRepeat             byte = 0x62 //  | Exact meaning unknown
	CallMonNACK               byte = 0x63 //  |
	XCMPXNLControl            byte = 0x70 // XCMP/XNL control message
	GroupVoice                byte = 0x80
	PVTVoice                  byte = 0x81
	GroupData                 byte = 0x83
	PVTData                   byte = 0x84
	RPTWakeUp                 byte = 0x85 // Similar to OTA DMR "wake up"
	UnknownCollision          byte = 0x86 // Seen when two dmrlinks try to transmit at once
	MasterRegistrationRequest byte = 0x90 // FROM peer TO master
	MasterRegistrationReply   byte = 0x91 // FROM master TO peer
	PeerListRequest           byte = 0x92 // From peer TO master
	PeerListReply             byte = 0x93 // From master TO peer
	PeerRegistrationRequest   byte = 0x94 // Peer registration request
	PeerRegistrationReply     byte = 0x95 // Peer registration reply
	MasterAliveRequest        byte = 0x96 // FROM peer TO master
	MasterAliveReply          byte = 0x97 // FROM master TO peer
	PeerAliveRequest          byte = 0x98 // Peer keep alive request
	PeerAliveReply            byte = 0x99 // Peer keep alive reply
	DeregistrationRequest     byte = 0x9a // Request de-registration from system
	DeregistrationReply       byte = 0x9b // De-registration reply

	// Link Type Values
	LinkTypeIPSC byte = 0x04
)

// VersionInfo is appended to registration and master keep-alive packets.
var VersionInfo = []byte{LinkTypeIPSC, Version17, LinkTypeIPSC, Version16}

// PacketTypeName maps the known message types to a human readable name.
var PacketTypeName = map[byte]string{
	CallConfirmation:          "call confirmation",
	TextMessageAck:            "text message acknowledgement",
	CallMonStatus:             "call monitor status",
	CallMonRepeat:             "call monitor repeat",
	CallMonNACK:               "call monitor nack",
	XCMPXNLControl:            "XCMP/XNL control",
	GroupVoice:                "group voice",
	PVTVoice:                  "private voice",
	GroupData:                 "group data",
	PVTData:                   "private data",
	RPTWakeUp:                 "repeater wake up",
	UnknownCollision:          "unknown collision",
	MasterRegistrationRequest: "master registration request",
	MasterRegistrationReply:   "master registration reply",
	PeerListRequest:           "peer list request",
	PeerListReply:             "peer list reply",
	PeerRegistrationRequest:   "peer registration request",
	PeerRegistrationReply:     "peer registration reply",
	MasterAliveRequest:        "master alive request",
	MasterAliveReply:          "master alive reply",
	PeerAliveRequest:          "peer alive request",
	PeerAliveReply:            "peer alive reply",
	DeregistrationRequest:     "de-registration request",
	DeregistrationReply:       "de-registration reply",
}

// TypeName returns the name of a packet type, or a hex representation if it
// is not known.
func TypeName(packetType byte) string {
	if name, ok := PacketTypeName[packetType]; ok {
		return name
	}
	return fmt.Sprintf("unknown 0x%02x", packetType)
}

// UserGenerated are the packet types originated by subscriber units.
var UserGenerated = map[byte]bool{
	GroupVoice: true,
	PVTVoice:   true,
	GroupData:  true,
	PVTData:    true,
}

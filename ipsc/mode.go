package ipsc

import (
	"fmt"

	"github.com/pkg/errors"
)

// PeerMode is the operational radio mode carried in the mode byte.
type PeerMode uint8

const (
	PeerModeNoRadio PeerMode = iota
	PeerModeAnalog
	PeerModeDigital
	PeerModeUnknown
)

var peerModeName = map[PeerMode]string{
	PeerModeNoRadio: "NO_RADIO",
	PeerModeAnalog:  "ANALOG",
	PeerModeDigital: "DIGITAL",
	PeerModeUnknown: "UNKNOWN",
}

func (m PeerMode) String() string {
	if name, ok := peerModeName[m]; ok {
		return name
	}
	return fmt.Sprintf("PeerMode(%d)", m)
}

// ParsePeerMode parses the configuration names none, analog and digital.
func ParsePeerMode(s string) (PeerMode, error) {
	switch s {
	case "none":
		return PeerModeNoRadio, nil
	case "analog":
		return PeerModeAnalog, nil
	case "", "digital":
		return PeerModeDigital, nil
	default:
		return PeerModeUnknown, errors.Errorf("unknown IPSC mode %q", s)
	}
}

// Mode is the decoded linking status byte.
type Mode struct {
	PeerOperational bool
	PeerMode        PeerMode
	TS1Linked       bool
	TS2Linked       bool
}

// Byte encodes the mode. Exactly one bit of each timeslot pair is set.
func (m Mode) Byte() byte {
	var b byte
	if m.PeerOperational {
		b |= FlagPeerOperational
	}
	switch m.PeerMode {
	case PeerModeAnalog:
		b |= FlagPeerModeAnalog
	case PeerModeDigital:
		b |= FlagPeerModeDigital
	case PeerModeUnknown:
		b |= MaskPeerMode
	}
	if m.TS1Linked {
		b |= FlagIPSCTS1On
	} else {
		b |= FlagIPSCTS1Off
	}
	if m.TS2Linked {
		b |= FlagIPSCTS2On
	} else {
		b |= FlagIPSCTS2Off
	}
	return b
}

func (m Mode) String() string {
	return fmt.Sprintf("operational=%t mode=%s ts1=%t ts2=%t",
		m.PeerOperational, m.PeerMode, m.TS1Linked, m.TS2Linked)
}

// DecodeMode decodes a linking status byte. A timeslot is linked only if its
// on bit is set and its off bit is clear.
func DecodeMode(b byte) Mode {
	m := Mode{
		PeerOperational: b&FlagPeerOperational != 0,
		TS1Linked:       b&MaskIPSCTS1 == FlagIPSCTS1On,
		TS2Linked:       b&MaskIPSCTS2 == FlagIPSCTS2On,
	}
	switch b & MaskPeerMode {
	case MaskPeerMode:
		m.PeerMode = PeerModeUnknown
	case FlagPeerModeAnalog:
		m.PeerMode = PeerModeAnalog
	case FlagPeerModeDigital:
		m.PeerMode = PeerModeDigital
	default:
		m.PeerMode = PeerModeNoRadio
	}
	return m
}

// Flags are the decoded service flags.
type Flags struct {
	CSBK                bool
	RepeaterCallMonitor bool
	ConsoleApplication  bool
	XNLConnected        bool
	XNLMaster           bool
	XNLSlave            bool
	PacketAuthenticated bool
	DataCall            bool
	VoiceCall           bool
	MasterPeer          bool
}

// Bytes encodes the flags into the 4 byte wire representation. The first two
// bytes are reserved and always zero.
func (f Flags) Bytes() []byte {
	var b = make([]byte, 4)
	if f.CSBK {
		b[2] |= FlagCSBKMessage
	}
	if f.RepeaterCallMonitor {
		b[2] |= FlagRepeaterCallMonitoring
	}
	if f.ConsoleApplication {
		b[2] |= FlagConsoleApplication
	}
	if f.XNLConnected {
		b[3] |= FlagXNLStatus
		if f.XNLMaster {
			b[3] |= FlagXNLMaster
		} else if f.XNLSlave {
			b[3] |= FlagXNLSlave
		}
	}
	if f.PacketAuthenticated {
		b[3] |= FlagPacketAuthenticated
	}
	if f.DataCall {
		b[3] |= FlagDataCall
	}
	if f.VoiceCall {
		b[3] |= FlagVoiceCall
	}
	if f.MasterPeer {
		b[3] |= FlagMasterPeer
	}
	return b
}

func (f Flags) String() string {
	return fmt.Sprintf("csbk=%t rcm=%t con_app=%t xnl=%t xnl_master=%t xnl_slave=%t auth=%t data=%t voice=%t master=%t",
		f.CSBK, f.RepeaterCallMonitor, f.ConsoleApplication, f.XNLConnected, f.XNLMaster,
		f.XNLSlave, f.PacketAuthenticated, f.DataCall, f.VoiceCall, f.MasterPeer)
}

// DecodeFlags decodes the 4 byte service flags field.
func DecodeFlags(b []byte) (Flags, error) {
	if len(b) < 4 {
		return Flags{}, malformed("flags field is %d bytes, expected 4", len(b))
	}
	return Flags{
		CSBK:                b[2]&FlagCSBKMessage != 0,
		RepeaterCallMonitor: b[2]&FlagRepeaterCallMonitoring != 0,
		ConsoleApplication:  b[2]&FlagConsoleApplication != 0,
		XNLConnected:        b[3]&FlagXNLStatus != 0,
		XNLMaster:           b[3]&FlagXNLMaster != 0,
		XNLSlave:            b[3]&FlagXNLSlave != 0,
		PacketAuthenticated: b[3]&FlagPacketAuthenticated != 0,
		DataCall:            b[3]&FlagDataCall != 0,
		VoiceCall:           b[3]&FlagVoiceCall != 0,
		MasterPeer:          b[3]&FlagMasterPeer != 0,
	}, nil
}

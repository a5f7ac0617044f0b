package ipsc

import (
	"encoding/binary"
	"fmt"
)

// Call monitor call types
const (
	CallMonPrivateDataSetup byte = 0x30
	CallMonGroupDataSetup   byte = 0x31
	CallMonPrivateCSBKSetup byte = 0x32
	CallMonCallAlert        byte = 0x45
	CallMonRadioCheck       byte = 0x47
	CallMonRadioCheckOK     byte = 0x48
	CallMonGroupVoice       byte = 0x4f
	CallMonPrivateVoice     byte = 0x50
	CallMonGroupData        byte = 0x51
	CallMonPrivateData      byte = 0x52
	CallMonAllCall          byte = 0x53
)

var (
	CallMonTypeName = map[byte]string{
		CallMonPrivateDataSetup: "private data set-up",
		CallMonGroupDataSetup:   "group data set-up",
		CallMonPrivateCSBKSetup: "private CSBK set-up",
		CallMonCallAlert:        "call alert",
		CallMonRadioCheck:       "radio check request",
		CallMonRadioCheckOK:     "radio check success",
		0x49:                    "radio disable request",
		0x4a:                    "radio disable received",
		0x4b:                    "radio enable request",
		0x4c:                    "radio enable received",
		0x4d:                    "remote monitor request",
		0x4e:                    "remote monitor request received",
		CallMonGroupVoice:       "group voice",
		CallMonPrivateVoice:     "private voice",
		CallMonGroupData:        "group data",
		CallMonPrivateData:      "private data",
		CallMonAllCall:          "all call",
	}
	CallMonStatusName = map[byte]string{
		0x01: "active",
		0x02: "end",
		0x05: "TS in use",
		0x0a: "BSID on",
		0x0b: "timeout",
		0x0c: "TX interrupt",
	}
	CallMonRepeatName = map[byte]string{
		0x01: "repeating",
		0x02: "idle",
		0x03: "TS disabled",
		0x04: "TS enabled",
	}
	CallMonNACKName = map[byte]string{
		0x05: "BSID start",
		0x06: "BSID end",
	}
)

func lookupName(names map[byte]string, b byte) string {
	if name, ok := names[b]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%02x)", b)
}

// CallMonStatusInfo is a decoded repeater call monitor status packet.
type CallMonStatusInfo struct {
	Source     PeerID // Repeater reporting the call
	IPSCSource PeerID // Repeater the call originated on
	Sequence   uint32
	Timeslot   uint8 // 0=ts1, 1=ts2
	Status     byte
	RFSource   uint32
	RFTarget   uint32
	CallType   byte
	Priority   byte
	Security   byte
}

// DecodeCallMonStatus decodes a call monitor status packet.
func DecodeCallMonStatus(data []byte) (*CallMonStatusInfo, error) {
	if len(data) < 25 {
		return nil, malformed("call monitor status of %d bytes, expected at least 25", len(data))
	}
	c := &CallMonStatusInfo{
		Sequence: binary.BigEndian.Uint32(data[9:13]),
		Timeslot: data[13],
		Status:   data[15],
		RFSource: uint32(data[16])<<16 | uint32(data[17])<<8 | uint32(data[18]),
		RFTarget: uint32(data[19])<<16 | uint32(data[20])<<8 | uint32(data[21]),
		CallType: data[22],
		Priority: data[23],
		Security: data[24],
	}
	copy(c.Source[:], data[1:5])
	copy(c.IPSCSource[:], data[5:9])
	return c, nil
}

// TargetIsGroup reports whether RFTarget is a talkgroup rather than a
// subscriber.
func (c *CallMonStatusInfo) TargetIsGroup() bool {
	switch c.CallType {
	case CallMonGroupVoice, CallMonGroupData, CallMonAllCall:
		return true
	default:
		return false
	}
}

func (c *CallMonStatusInfo) StatusName() string   { return lookupName(CallMonStatusName, c.Status) }
func (c *CallMonStatusInfo) CallTypeName() string { return lookupName(CallMonTypeName, c.CallType) }

// CallMonRepeatInfo is a decoded repeater state packet.
type CallMonRepeatInfo struct {
	Source   PeerID
	TS1State byte
	TS2State byte
}

// DecodeCallMonRepeat decodes a call monitor repeat packet.
func DecodeCallMonRepeat(data []byte) (*CallMonRepeatInfo, error) {
	if len(data) < 7 {
		return nil, malformed("call monitor repeat of %d bytes, expected at least 7", len(data))
	}
	c := &CallMonRepeatInfo{TS1State: data[5], TS2State: data[6]}
	copy(c.Source[:], data[1:5])
	return c, nil
}

func (c *CallMonRepeatInfo) TS1StateName() string { return lookupName(CallMonRepeatName, c.TS1State) }
func (c *CallMonRepeatInfo) TS2StateName() string { return lookupName(CallMonRepeatName, c.TS2State) }

// CallMonNACKInfo is a decoded transmission NACK.
type CallMonNACKInfo struct {
	Source PeerID
	Cause  byte
}

// DecodeCallMonNACK decodes a call monitor NACK packet.
func DecodeCallMonNACK(data []byte) (*CallMonNACKInfo, error) {
	if len(data) < 6 {
		return nil, malformed("call monitor nack of %d bytes, expected at least 6", len(data))
	}
	c := &CallMonNACKInfo{Cause: data[5]}
	copy(c.Source[:], data[1:5])
	return c, nil
}

func (c *CallMonNACKInfo) CauseName() string { return lookupName(CallMonNACKName, c.Cause) }

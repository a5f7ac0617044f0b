package main

import (
	"testing"

	"github.com/pd0mz/dmrlink/alias"
	"github.com/pd0mz/dmrlink/ipsc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBook() *alias.Book {
	return &alias.Book{
		Subscribers: alias.Table{2042214: "PD0MZ", 2043044: "PI1BOL"},
		Peers:       alias.Table{312000: "Hillegom"},
		Talkgroups:  alias.Table{91: "Worldwide"},
	}
}

func callMonStatus(callType byte, target uint32) []byte {
	return []byte{
		ipsc.CallMonStatus,
		0x00, 0x04, 0xc2, 0xc0, // 312000
		0x00, 0x04, 0xc2, 0xc1, // 312001
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00,
		0x01,             // active
		0x1f, 0x29, 0x66, // 2042214
		byte(target >> 16), byte(target >> 8), byte(target),
		callType, 0x00, 0x00,
	}
}

func TestMonitorDescribeStatus(t *testing.T) {
	m := &monitor{book: testBook()}

	info, err := ipsc.DecodeCallMonStatus(callMonStatus(ipsc.CallMonGroupVoice, 91))
	require.NoError(t, err)
	assert.Equal(t, "group voice active on Hillegom (from 312001), TS1: PD0MZ -> TG Worldwide", m.describeStatus(info))

	info, err = ipsc.DecodeCallMonStatus(callMonStatus(ipsc.CallMonPrivateVoice, 2043044))
	require.NoError(t, err)
	assert.Equal(t, "private voice active on Hillegom (from 312001), TS1: PD0MZ -> PI1BOL", m.describeStatus(info))
}

func TestMonitorDescribeCall(t *testing.T) {
	m := &monitor{book: testBook()}
	h := &ipsc.UserHeader{
		Type:     ipsc.GroupVoice,
		PeerID:   ipsc.NewPeerID(312000),
		SrcID:    2042214,
		DstID:    8,
		Timeslot: 1,
		End:      true,
	}
	assert.Equal(t, "group voice via Hillegom, TS2: PD0MZ -> TG 8", m.describeCall(h, true))
}

func TestMonitorHandlesMalformed(t *testing.T) {
	m := &monitor{book: testBook()}
	assert.NotPanics(t, func() {
		m.CallMonStatus("test", ipsc.NewPeerID(1), []byte{ipsc.CallMonStatus})
		m.CallMonRepeat("test", ipsc.NewPeerID(1), []byte{ipsc.CallMonRepeat})
		m.CallMonNACK("test", ipsc.NewPeerID(1), []byte{ipsc.CallMonNACK})
	})
}

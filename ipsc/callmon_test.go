package ipsc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCallMonStatus(callType byte) []byte {
	return []byte{
		CallMonStatus,
		0x00, 0x04, 0xc2, 0xc0, // source repeater 312000
		0x00, 0x04, 0xc2, 0xc1, // originating repeater 312001
		0x00, 0x00, 0x00, 0x2a, // sequence
		0x01,             // TS2
		0x00,             // reserved
		0x02,             // end
		0x30, 0x28, 0x3c, // RF source 3156028
		0x00, 0x00, 0x5b, // RF target 91
		callType,
		0x00, // priority
		0x00, // security
	}
}

func TestDecodeCallMonStatus(t *testing.T) {
	info, err := DecodeCallMonStatus(testCallMonStatus(CallMonGroupVoice))
	require.NoError(t, err)

	assert.Equal(t, NewPeerID(312000), info.Source)
	assert.Equal(t, NewPeerID(312001), info.IPSCSource)
	assert.Equal(t, uint32(42), info.Sequence)
	assert.Equal(t, uint8(1), info.Timeslot)
	assert.Equal(t, "end", info.StatusName())
	assert.Equal(t, uint32(3156028), info.RFSource)
	assert.Equal(t, uint32(91), info.RFTarget)
	assert.Equal(t, "group voice", info.CallTypeName())
	assert.True(t, info.TargetIsGroup())
}

func TestCallMonTargetIsGroup(t *testing.T) {
	var tests = map[byte]bool{
		CallMonGroupVoice:   true,
		CallMonGroupData:    true,
		CallMonAllCall:      true,
		CallMonPrivateVoice: false,
		CallMonPrivateData:  false,
		CallMonCallAlert:    false,
	}
	for callType, want := range tests {
		info, err := DecodeCallMonStatus(testCallMonStatus(callType))
		require.NoError(t, err)
		assert.Equal(t, want, info.TargetIsGroup(), info.CallTypeName())
	}
}

func TestCallMonUnknownNames(t *testing.T) {
	data := testCallMonStatus(0xee)
	data[15] = 0x7f
	info, err := DecodeCallMonStatus(data)
	require.NoError(t, err)
	assert.Equal(t, "unknown (0xee)", info.CallTypeName())
	assert.Equal(t, "unknown (0x7f)", info.StatusName())
}

func TestDecodeCallMonRepeatAndNACK(t *testing.T) {
	repeat, err := DecodeCallMonRepeat([]byte{CallMonRepeat, 0x00, 0x00, 0x00, 0x64, 0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, NewPeerID(100), repeat.Source)
	assert.Equal(t, "repeating", repeat.TS1StateName())
	assert.Equal(t, "idle", repeat.TS2StateName())

	nack, err := DecodeCallMonNACK([]byte{CallMonNACK, 0x00, 0x00, 0x00, 0x64, 0x05})
	require.NoError(t, err)
	assert.Equal(t, "BSID start", nack.CauseName())
}

func TestCallMonMalformed(t *testing.T) {
	_, err := DecodeCallMonStatus(testCallMonStatus(CallMonGroupVoice)[:24])
	assert.ErrorIs(t, err, ErrMalformedPacket)
	_, err = DecodeCallMonRepeat([]byte{CallMonRepeat, 0, 0, 0, 1, 1})
	assert.ErrorIs(t, err, ErrMalformedPacket)
	_, err = DecodeCallMonNACK([]byte{CallMonNACK, 0, 0, 0, 1})
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

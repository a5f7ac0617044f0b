package ipsc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, "received from", peerAddrA, peerListReply(entry(200, 50001)))
	out := buf.String()
	assert.Contains(t, out, "peer list reply received from 127.0.0.1:50001, peer 1:")
	assert.Contains(t, out, "peer 200 at 127.0.0.1:50001, mode operational=true mode=DIGITAL")

	buf.Reset()
	Dump(&buf, "sent to", masterAddr, newPacket(MasterAliveRequest, NewPeerID(100), remoteTSFlags, VersionInfo))
	assert.Contains(t, buf.String(), "master alive request sent to")
	assert.Contains(t, buf.String(), "master=true")

	buf.Reset()
	Dump(&buf, "received from", masterAddr, userPacket(GroupVoice, 1, 2042214, 91, true, false))
	assert.Contains(t, buf.String(), "2042214 -> 91 on TS2")

	buf.Reset()
	Dump(&buf, "received from", masterAddr, []byte{0x90, 0x00})
	assert.Contains(t, buf.String(), "2 bytes of unreadable data")
}

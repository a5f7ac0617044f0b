package ipsc

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id uint32, port uint16) PeerListEntry {
	return PeerListEntry{ID: NewPeerID(id), IP: net.IPv4(127, 0, 0, 1).To4(), Port: port, Mode: 0x6a}
}

func TestPeerID(t *testing.T) {
	id := NewPeerID(312000)
	assert.Equal(t, PeerID{0x00, 0x04, 0xc2, 0xc0}, id)
	assert.Equal(t, uint32(312000), id.Uint32())
	assert.Equal(t, "312000", id.String())
	assert.False(t, id.IsZero())
	assert.True(t, PeerID{}.IsZero())
}

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []uint32{300, 100, 200} {
		r.Add(&Peer{ID: NewPeerID(id)})
	}
	assert.Equal(t, []PeerID{NewPeerID(100), NewPeerID(200), NewPeerID(300)}, r.IDs())
	assert.True(t, r.Remove(NewPeerID(200)))
	assert.False(t, r.Remove(NewPeerID(200)))
	assert.Equal(t, 2, r.Len())
	assert.Nil(t, r.Get(NewPeerID(200)))
}

func TestRegistryReconcile(t *testing.T) {
	r := NewRegistry()
	added, removed := r.Reconcile([]PeerListEntry{entry(100, 50000), entry(200, 50001)})
	assert.Equal(t, []PeerID{NewPeerID(100), NewPeerID(200)}, added)
	assert.Empty(t, removed)

	peer := r.Get(NewPeerID(200))
	require.NotNil(t, peer)
	assert.False(t, peer.Status.Connected)
	assert.Equal(t, 50001, peer.Addr.Port)
	assert.Equal(t, PeerModeDigital, peer.ModeDecode.PeerMode)

	// Known peers keep their state.
	peer.Status.Connected = true
	peer.Status.KeepAliveSent = 3

	added, removed = r.Reconcile([]PeerListEntry{entry(200, 50001), entry(300, 50002)})
	assert.Equal(t, []PeerID{NewPeerID(300)}, added)
	assert.Equal(t, []PeerID{NewPeerID(100)}, removed)
	assert.Same(t, peer, r.Get(NewPeerID(200)))
	assert.True(t, peer.Status.Connected)
	assert.Equal(t, 3, peer.Status.KeepAliveSent)

	added, removed = r.Reconcile(nil)
	assert.Empty(t, added)
	assert.Equal(t, []PeerID{NewPeerID(200), NewPeerID(300)}, removed)
	assert.Zero(t, r.Len())
}

func TestRegistryEntries(t *testing.T) {
	r := NewRegistry()
	r.Add(&Peer{ID: NewPeerID(2), Addr: &net.UDPAddr{IP: net.IPv4(10, 0, 0, 2), Port: 2}, Mode: 0x65})
	r.Add(&Peer{ID: NewPeerID(1), Addr: &net.UDPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 1}, Mode: 0x6a})

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, NewPeerID(1), entries[0].ID)
	assert.Equal(t, uint16(2), entries[1].Port)
	assert.Equal(t, byte(0x65), entries[1].Mode)
}

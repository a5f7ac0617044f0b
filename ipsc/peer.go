package ipsc

import (
	"encoding/binary"
	"fmt"
	"net"
	"sort"
	"time"
)

// PeerID is a radio identifier as it appears on the wire. It is used as an
// opaque key, Uint32 exists for display purposes.
type PeerID [4]byte

// NewPeerID packs a numeric radio ID.
func NewPeerID(id uint32) PeerID {
	var p PeerID
	binary.BigEndian.PutUint32(p[:], id)
	return p
}

// Uint32 returns the numeric radio ID.
func (p PeerID) Uint32() uint32 {
	return binary.BigEndian.Uint32(p[:])
}

// IsZero reports whether the ID is unset.
func (p PeerID) IsZero() bool {
	return p == PeerID{}
}

func (p PeerID) String() string {
	return fmt.Sprintf("%d", p.Uint32())
}

// Status tracks the connection and keep-alive state of a master or peer.
type Status struct {
	Connected bool

	// PeerList is only used on the master record: set once the master sent
	// us a peer list (or told us there are no other peers).
	PeerList bool

	KeepAliveSent        int
	KeepAliveMissed      int
	KeepAliveOutstanding int
	KeepAliveReceived    int
	KeepAliveRXTime      time.Time
}

// Peer is a remote IPSC node other than the master.
type Peer struct {
	ID    PeerID
	Addr  *net.UDPAddr
	Mode  byte
	Flags []byte

	// Decoded versions of Mode and Flags. Flags are only known after a
	// registration or keep-alive from the peer itself.
	ModeDecode  Mode
	FlagsDecode *Flags

	Status Status
}

// Master is the IPSC master as seen from a peer.
type Master struct {
	ID          PeerID
	Addr        *net.UDPAddr
	Mode        byte
	Flags       []byte
	ModeDecode  Mode
	FlagsDecode *Flags

	// NumPeers is the peer count announced in the last registration reply.
	NumPeers int

	Status Status
}

// Registry holds the known peers of one network. It is not safe for
// concurrent use; the owning IPSC only touches it from its event loop.
type Registry struct {
	peers map[PeerID]*Peer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{peers: make(map[PeerID]*Peer)}
}

// Len returns the number of peers.
func (r *Registry) Len() int {
	return len(r.peers)
}

// Get returns the peer for id, or nil.
func (r *Registry) Get(id PeerID) *Peer {
	return r.peers[id]
}

// Has reports whether id is registered.
func (r *Registry) Has(id PeerID) bool {
	_, ok := r.peers[id]
	return ok
}

// Add registers a peer, replacing any previous entry with the same ID.
func (r *Registry) Add(p *Peer) {
	r.peers[p.ID] = p
}

// Remove deletes a peer and reports whether it was present.
func (r *Registry) Remove(id PeerID) bool {
	if _, ok := r.peers[id]; !ok {
		return false
	}
	delete(r.peers, id)
	return true
}

// IDs returns the registered peer IDs in ascending order.
func (r *Registry) IDs() []PeerID {
	ids := make([]PeerID, 0, len(r.peers))
	for id := range r.peers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Uint32() < ids[j].Uint32()
	})
	return ids
}

// Peers returns the registered peers ordered by ID.
func (r *Registry) Peers() []*Peer {
	peers := make([]*Peer, 0, len(r.peers))
	for _, id := range r.IDs() {
		peers = append(peers, r.peers[id])
	}
	return peers
}

// Entries returns the peer list representation of the registry.
func (r *Registry) Entries() []PeerListEntry {
	entries := make([]PeerListEntry, 0, len(r.peers))
	for _, p := range r.Peers() {
		entry := PeerListEntry{ID: p.ID, Mode: p.Mode}
		if p.Addr != nil {
			entry.IP = p.Addr.IP
			entry.Port = uint16(p.Addr.Port)
		}
		entries = append(entries, entry)
	}
	return entries
}

// Reconcile applies a peer list received from the master: unknown peers are
// added disconnected, known peers missing from the list are removed. Known
// peers keep their state.
func (r *Registry) Reconcile(entries []PeerListEntry) (added, removed []PeerID) {
	seen := make(map[PeerID]bool, len(entries))
	for _, entry := range entries {
		seen[entry.ID] = true
		if r.Has(entry.ID) {
			continue
		}
		r.Add(&Peer{
			ID:         entry.ID,
			Addr:       &net.UDPAddr{IP: entry.IP, Port: int(entry.Port)},
			Mode:       entry.Mode,
			ModeDecode: DecodeMode(entry.Mode),
		})
		added = append(added, entry.ID)
	}
	for _, id := range r.IDs() {
		if !seen[id] {
			r.Remove(id)
			removed = append(removed, id)
		}
	}
	return
}

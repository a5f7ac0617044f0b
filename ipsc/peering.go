package ipsc

import (
	"fmt"
	"net"
)

// PeerState is the progress of a peer joining the IPSC.
type PeerState uint8

const (
	Unregistered PeerState = iota
	RegisteringWithMaster
	AwaitingPeerList
	SteadyState
)

var peerStateName = map[PeerState]string{
	Unregistered:          "unregistered",
	RegisteringWithMaster: "registering with master",
	AwaitingPeerList:      "awaiting peer list",
	SteadyState:           "steady state",
}

func (s PeerState) String() string {
	if name, ok := peerStateName[s]; ok {
		return name
	}
	return fmt.Sprintf("PeerState(%d)", s)
}

// State returns the peer role state, derived from the master status.
func (c *IPSC) State() PeerState {
	switch {
	case !c.master.Status.Connected && c.registering:
		return RegisteringWithMaster
	case !c.master.Status.Connected:
		return Unregistered
	case !c.master.Status.PeerList:
		return AwaitingPeerList
	default:
		return SteadyState
	}
}

// peerMaintenance runs on every tick while we are a peer.
func (c *IPSC) peerMaintenance() {
	log.Debugf("(%s) PEER connection maintenance loop started", c.Name)

	// If the master isn't connected, we have to do that before we can do
	// anything else.
	if !c.master.Status.Connected {
		log.Infof("(%s) registering with the master %s", c.Name, c.master.Addr)
		c.registering = true
		c.send(c.master.Addr, c.masterRegistrationRequest())
		return
	}

	if !c.keepAlive(&c.master.Status) {
		log.Errorf("(%s) maximum master keep-alives missed, de-registering the master %s", c.Name, c.master.ID)
		c.master.Status.PeerList = false
		c.registering = false
		c.Metrics.masterConnected(c.Name, false)
		return
	}
	if c.master.Status.KeepAliveMissed > 0 && c.master.Status.KeepAliveOutstanding > 1 {
		log.Infof("(%s) master keep-alive missed", c.Name)
	}
	c.send(c.master.Addr, c.masterAliveRequest())
	log.Debugf("(%s) keep-alive sent to the master", c.Name)

	if !c.master.Status.PeerList {
		log.Infof("(%s) no peer list, requesting one from the master", c.Name)
		c.send(c.master.Addr, newPacket(PeerListRequest, c.local.id))
		return
	}

	for _, peer := range c.peers.Peers() {
		// We show up in the peer list, but shouldn't talk to ourselves.
		if peer.ID == c.local.id {
			continue
		}

		if !peer.Status.Connected {
			log.Infof("(%s) registering with peer %s", c.Name, peer.ID)
			c.send(peer.Addr, newPacket(PeerRegistrationRequest, c.local.id, VersionInfo))
			continue
		}

		if !c.keepAlive(&peer.Status) {
			log.Warningf("(%s) maximum peer keep-alives missed, de-registering peer %s", c.Name, peer.ID)
			continue
		}
		c.send(peer.Addr, newPacket(PeerAliveRequest, c.local.id, c.local.tsFlags))
		log.Debugf("(%s) keep-alive sent to peer %s", c.Name, peer.ID)
	}
}

// onMasterRegistrationReply records the master we successfully registered
// with.
func (c *IPSC) onMasterRegistrationReply(addr *net.UDPAddr, h Header, data []byte) error {
	reg, err := DecodeRegistration(data)
	if err != nil {
		return err
	}
	numPeers, err := DecodeNumPeers(data)
	if err != nil {
		return err
	}

	c.master.ID = h.PeerID
	c.master.Mode = reg.Mode
	c.master.ModeDecode = reg.ModeDecode
	c.master.Flags = reg.Flags
	c.master.FlagsDecode = &reg.FlagsDecode
	c.master.NumPeers = numPeers
	c.master.Status.Connected = true
	c.master.Status.KeepAliveOutstanding = 0
	c.master.Status.KeepAliveRXTime = c.now()
	if numPeers == 0 {
		// We are the only peer, there is no list to ask for.
		c.master.Status.PeerList = true
	}
	c.registering = false
	c.Metrics.masterConnected(c.Name, true)

	log.Noticef("(%s) registration response from the master %s (%d peers)", c.Name, h.PeerID, numPeers)
	return nil
}

func (c *IPSC) onMasterAliveReply(addr *net.UDPAddr, h Header, data []byte) error {
	c.master.Status.KeepAliveReceived++
	c.master.Status.KeepAliveRXTime = c.now()
	log.Debugf("(%s) keep-alive reply received from the master %s", c.Name, h.PeerID)
	return nil
}

func (c *IPSC) onPeerListReply(addr *net.UDPAddr, h Header, data []byte) error {
	if !c.master.Status.Connected {
		log.Warningf("(%s) peer list from %s received before registration completed", c.Name, h.PeerID)
		return nil
	}

	entries, err := ParsePeerList(data[HeaderSize:])
	if err != nil {
		return err
	}
	c.master.Status.PeerList = true
	log.Infof("(%s) peer list received from master: %d peers in this IPSC", c.Name, len(entries))

	added, removed := c.peers.Reconcile(entries)
	for _, id := range added {
		log.Debugf("(%s) peer added: %s at %s", c.Name, id, c.peers.Get(id).Addr)
	}
	for _, id := range removed {
		log.Warningf("(%s) peer deleted (not in new peer list): %s", c.Name, id)
	}
	c.Metrics.peers(c.Name, c.peers.Len())
	return nil
}

func (c *IPSC) onPeerRegistrationRequest(addr *net.UDPAddr, h Header, data []byte) error {
	c.send(addr, newPacket(PeerRegistrationReply, c.local.id, VersionInfo))
	log.Infof("(%s) peer registration request from %s", c.Name, h.PeerID)
	return nil
}

func (c *IPSC) onPeerRegistrationReply(addr *net.UDPAddr, h Header, data []byte) error {
	peer := c.peers.Get(h.PeerID)
	peer.Status.Connected = true
	log.Infof("(%s) registration reply from peer %s", c.Name, h.PeerID)
	return nil
}

func (c *IPSC) onPeerAliveRequest(addr *net.UDPAddr, h Header, data []byte) error {
	reg, err := DecodeRegistration(data)
	if err != nil {
		return err
	}

	peer := c.peers.Get(h.PeerID)
	peer.Mode = reg.Mode
	peer.ModeDecode = reg.ModeDecode
	peer.Flags = reg.Flags
	peer.FlagsDecode = &reg.FlagsDecode

	c.send(addr, newPacket(PeerAliveReply, c.local.id, c.local.tsFlags))
	log.Debugf("(%s) keep-alive reply sent to peer %s", c.Name, h.PeerID)
	return nil
}

func (c *IPSC) onPeerAliveReply(addr *net.UDPAddr, h Header, data []byte) error {
	peer := c.peers.Get(h.PeerID)
	peer.Status.KeepAliveReceived++
	peer.Status.KeepAliveRXTime = c.now()
	log.Debugf("(%s) keep-alive reply received from peer %s", c.Name, h.PeerID)
	return nil
}

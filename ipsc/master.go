package ipsc

import (
	"encoding/binary"
	"net"
)

func (c *IPSC) onMasterRegistrationRequest(addr *net.UDPAddr, h Header, data []byte) error {
	reg, err := DecodeRegistration(data)
	if err != nil {
		return err
	}

	if !c.peers.Has(h.PeerID) {
		c.peers.Add(&Peer{
			ID:          h.PeerID,
			Addr:        &net.UDPAddr{IP: addr.IP, Port: addr.Port, Zone: addr.Zone},
			Mode:        reg.Mode,
			Flags:       reg.Flags,
			ModeDecode:  reg.ModeDecode,
			FlagsDecode: &reg.FlagsDecode,
			Status: Status{
				Connected:       true,
				KeepAliveRXTime: c.now(),
			},
		})
		c.Metrics.peers(c.Name, c.peers.Len())
		log.Infof("(%s) peer %s added to peer list from %s (IPSC now has %d peers)",
			c.Name, h.PeerID, addr, c.peers.Len())
	} else {
		log.Debugf("(%s) master registration request from known peer %s", c.Name, h.PeerID)
	}

	var numPeers = make([]byte, 2)
	binary.BigEndian.PutUint16(numPeers, uint16(c.peers.Len()-1))
	c.send(addr, newPacket(MasterRegistrationReply, c.local.id, c.local.tsFlags, numPeers, VersionInfo))
	return nil
}

func (c *IPSC) onMasterAliveRequest(addr *net.UDPAddr, h Header, data []byte) error {
	peer := c.peers.Get(h.PeerID)
	if peer == nil {
		log.Warningf("(%s) master keep-alive request received from *unregistered* peer %s", c.Name, h.PeerID)
		return nil
	}

	peer.Status.KeepAliveReceived++
	peer.Status.KeepAliveRXTime = c.now()
	c.send(addr, newPacket(MasterAliveReply, c.local.id, c.local.tsFlags, VersionInfo))
	log.Debugf("(%s) master keep-alive request received from peer %s", c.Name, h.PeerID)
	return nil
}

// onPeerListRequest answers by sending the peer list to the whole network, so
// every peer converges on the same view.
func (c *IPSC) onPeerListRequest(addr *net.UDPAddr, h Header, data []byte) error {
	if !c.peers.Has(h.PeerID) {
		log.Warningf("(%s) peer list request received from *unregistered* peer %s", c.Name, h.PeerID)
		return nil
	}

	log.Debugf("(%s) peer list request from peer %s", c.Name, h.PeerID)
	c.broadcast(c.peerListReply())
	return nil
}

// masterMaintenance removes peers we have not heard from in MasterPeerTimeout
// and tells the network about it.
func (c *IPSC) masterMaintenance() {
	log.Debugf("(%s) MASTER connection maintenance loop started", c.Name)

	var (
		now     = c.now()
		removed int
	)
	for _, peer := range c.peers.Peers() {
		delta := now.Sub(peer.Status.KeepAliveRXTime)
		log.Debugf("(%s) time since last keep-alive request from peer %s: %s", c.Name, peer.ID, delta)
		if delta > MasterPeerTimeout {
			c.peers.Remove(peer.ID)
			removed++
			log.Warningf("(%s) timeout exceeded for peer %s, de-registering", c.Name, peer.ID)
		}
	}

	if removed > 0 {
		c.Metrics.peers(c.Name, c.peers.Len())
		c.broadcast(c.peerListReply())
	}
}

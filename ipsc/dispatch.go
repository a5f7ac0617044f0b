package ipsc

import (
	"net"
	"os"

	"github.com/pkg/errors"
)

// tier is the sender validation a packet type requires.
type tier uint8

const (
	tierAnyPeer tier = iota // master or registered peer
	tierPeer                // registered peer
	tierMaster              // our master
	tierNone
)

// role restricts a packet type to one side of the protocol.
type role uint8

const (
	roleAny role = iota
	roleMaster
	rolePeer
)

type handleFunc func(c *IPSC, addr *net.UDPAddr, h Header, data []byte) error

type route struct {
	tier   tier
	role   role
	handle handleFunc
}

func (c *IPSC) buildRoutes() map[byte]route {
	return map[byte]route{
		// Sent by any valid peer or master
		GroupVoice:            {tierAnyPeer, roleAny, (*IPSC).onUserPacket},
		PVTVoice:              {tierAnyPeer, roleAny, (*IPSC).onUserPacket},
		GroupData:             {tierAnyPeer, roleAny, (*IPSC).onUserPacket},
		PVTData:               {tierAnyPeer, roleAny, (*IPSC).onUserPacket},
		CallMonStatus:         {tierAnyPeer, roleAny, (*IPSC).onCallMonStatus},
		CallMonRepeat:         {tierAnyPeer, roleAny, (*IPSC).onCallMonRepeat},
		CallMonNACK:           {tierAnyPeer, roleAny, (*IPSC).onCallMonNACK},
		XCMPXNLControl:        {tierAnyPeer, roleAny, (*IPSC).onXCMPXNL},
		RPTWakeUp:             {tierAnyPeer, roleAny, (*IPSC).onRepeaterWakeUp},
		DeregistrationRequest: {tierAnyPeer, roleAny, (*IPSC).onDeregistrationRequest},
		DeregistrationReply:   {tierAnyPeer, roleAny, (*IPSC).onDeregistrationReply},

		// Peer to peer maintenance, only while we are a peer
		PeerRegistrationRequest: {tierPeer, rolePeer, (*IPSC).onPeerRegistrationRequest},
		PeerRegistrationReply:   {tierPeer, rolePeer, (*IPSC).onPeerRegistrationReply},
		PeerAliveRequest:        {tierPeer, rolePeer, (*IPSC).onPeerAliveRequest},
		PeerAliveReply:          {tierPeer, rolePeer, (*IPSC).onPeerAliveReply},

		// Answers from our master
		MasterAliveReply:        {tierMaster, rolePeer, (*IPSC).onMasterAliveReply},
		PeerListReply:           {tierMaster, rolePeer, (*IPSC).onPeerListReply},
		MasterRegistrationReply: {tierNone, rolePeer, (*IPSC).onMasterRegistrationReply},

		// Requests to us as the master
		MasterRegistrationRequest: {tierNone, roleMaster, (*IPSC).onMasterRegistrationRequest},
		MasterAliveRequest:        {tierNone, roleMaster, (*IPSC).onMasterAliveRequest},
		PeerListRequest:           {tierNone, roleMaster, (*IPSC).onPeerListRequest},
	}
}

// handle processes one received datagram.
func (c *IPSC) handle(addr *net.UDPAddr, data []byte) {
	if c.Dump {
		Dump(os.Stdout, "received from", addr, data)
	}

	if !c.auth.Verify(data) {
		log.Warningf("(%s) %v: %d bytes from %s", c.Name, ErrAuthentication, len(data), addr)
		c.Metrics.received(c.Name, OutcomeAuthFailed)
		return
	}
	data = c.auth.Strip(data)

	h, err := DecodeHeader(data)
	if err != nil {
		log.Warningf("(%s) dropping packet from %s: %v", c.Name, addr, err)
		c.Metrics.received(c.Name, OutcomeMalformed)
		return
	}

	r, ok := c.routes[h.Type]
	if !ok {
		c.handler.UnknownMessage(c.Name, h.Type, h.PeerID, data)
		c.Metrics.received(c.Name, OutcomeUnknownType)
		return
	}
	if !c.hasRole(r.role) {
		log.Debugf("(%s) ignoring %s from %s, not applicable to our role", c.Name, TypeName(h.Type), h.PeerID)
		c.Metrics.received(c.Name, OutcomeWrongRole)
		return
	}
	if err := c.validSender(r.tier, h.PeerID); err != nil {
		log.Warningf("(%s) dropping %s: %v", c.Name, TypeName(h.Type), err)
		c.Metrics.received(c.Name, OutcomeUnknownSender)
		return
	}

	c.resetKeepAlive(h.PeerID)
	if err := r.handle(c, addr, h, data); err != nil {
		log.Warningf("(%s) dropping %s from %s: %v", c.Name, TypeName(h.Type), h.PeerID, err)
		c.Metrics.received(c.Name, OutcomeMalformed)
		return
	}
	c.Metrics.received(c.Name, OutcomeOK)
}

func (c *IPSC) hasRole(r role) bool {
	switch r {
	case roleMaster:
		return c.IsMaster()
	case rolePeer:
		return !c.IsMaster()
	default:
		return true
	}
}

func (c *IPSC) validMaster(id PeerID) bool {
	return !c.master.ID.IsZero() && c.master.ID == id
}

func (c *IPSC) validPeer(id PeerID) bool {
	return c.peers.Has(id)
}

func (c *IPSC) validSender(t tier, id PeerID) error {
	switch t {
	case tierAnyPeer:
		if !c.validMaster(id) && !c.validPeer(id) {
			return errors.Wrapf(ErrUnknownSender, "%s is not our master nor in the peer list", id)
		}
	case tierPeer:
		if !c.validPeer(id) {
			return errors.Wrapf(ErrUnknownSender, "peer %s not in peer list", id)
		}
	case tierMaster:
		if !c.validMaster(id) {
			return errors.Wrapf(ErrUnknownSender, "%s is not the master peer", id)
		}
	}
	return nil
}

func (c *IPSC) onUserPacket(addr *net.UDPAddr, h Header, data []byte) error {
	uh, err := DecodeUserHeader(data)
	if err != nil {
		return err
	}
	switch h.Type {
	case GroupVoice:
		c.handler.GroupVoice(c.Name, uh, data)
	case PVTVoice:
		c.handler.PrivateVoice(c.Name, uh, data)
	case GroupData:
		c.handler.GroupData(c.Name, uh, data)
	case PVTData:
		c.handler.PrivateData(c.Name, uh, data)
	}
	return nil
}

func (c *IPSC) onCallMonStatus(addr *net.UDPAddr, h Header, data []byte) error {
	c.handler.CallMonStatus(c.Name, h.PeerID, data)
	return nil
}

func (c *IPSC) onCallMonRepeat(addr *net.UDPAddr, h Header, data []byte) error {
	c.handler.CallMonRepeat(c.Name, h.PeerID, data)
	return nil
}

func (c *IPSC) onCallMonNACK(addr *net.UDPAddr, h Header, data []byte) error {
	c.handler.CallMonNACK(c.Name, h.PeerID, data)
	return nil
}

func (c *IPSC) onXCMPXNL(addr *net.UDPAddr, h Header, data []byte) error {
	c.handler.XCMPXNL(c.Name, h.PeerID, data)
	return nil
}

func (c *IPSC) onRepeaterWakeUp(addr *net.UDPAddr, h Header, data []byte) error {
	c.handler.RepeaterWakeUp(c.Name, h.PeerID, data)
	return nil
}

func (c *IPSC) onDeregistrationRequest(addr *net.UDPAddr, h Header, data []byte) error {
	if c.validMaster(h.PeerID) {
		log.Warningf("(%s) de-registration request from the master %s", c.Name, h.PeerID)
		c.master.Status.Connected = false
		c.master.Status.PeerList = false
		c.master.Status.KeepAliveOutstanding = 0
		c.Metrics.masterConnected(c.Name, false)
		return nil
	}

	c.peers.Remove(h.PeerID)
	c.Metrics.peers(c.Name, c.peers.Len())
	log.Warningf("(%s) peer de-registration request from %s", c.Name, h.PeerID)
	if c.IsMaster() {
		c.broadcast(c.peerListReply())
	}
	return nil
}

func (c *IPSC) onDeregistrationReply(addr *net.UDPAddr, h Header, data []byte) error {
	log.Warningf("(%s) peer de-registration reply from %s", c.Name, h.PeerID)
	return nil
}

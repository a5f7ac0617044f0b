package ipsc

import "encoding/hex"

// Handler receives the traffic an IPSC network does not handle itself. All
// data slices are the received packets with the signature stripped; they are
// only valid for the duration of the call.
//
// Handlers are called from the network's event loop and must not block.
type Handler interface {
	GroupVoice(network string, h *UserHeader, data []byte)
	PrivateVoice(network string, h *UserHeader, data []byte)
	GroupData(network string, h *UserHeader, data []byte)
	PrivateData(network string, h *UserHeader, data []byte)
	CallMonStatus(network string, peerID PeerID, data []byte)
	CallMonRepeat(network string, peerID PeerID, data []byte)
	CallMonNACK(network string, peerID PeerID, data []byte)
	XCMPXNL(network string, peerID PeerID, data []byte)
	RepeaterWakeUp(network string, peerID PeerID, data []byte)
	UnknownMessage(network string, packetType byte, peerID PeerID, data []byte)
}

// LogHandler logs every event. Embed it to override selected events only.
type LogHandler struct{}

func (LogHandler) GroupVoice(network string, h *UserHeader, data []byte) {
	log.Debugf("(%s) group voice packet received from %d, IPSC peer %s, destination %d", network, h.SrcID, h.PeerID, h.DstID)
}

func (LogHandler) PrivateVoice(network string, h *UserHeader, data []byte) {
	log.Debugf("(%s) private voice packet received from %d, IPSC peer %s, destination %d", network, h.SrcID, h.PeerID, h.DstID)
}

func (LogHandler) GroupData(network string, h *UserHeader, data []byte) {
	log.Debugf("(%s) group data packet received from %d, IPSC peer %s, destination %d", network, h.SrcID, h.PeerID, h.DstID)
}

func (LogHandler) PrivateData(network string, h *UserHeader, data []byte) {
	log.Debugf("(%s) private data packet received from %d, IPSC peer %s, destination %d", network, h.SrcID, h.PeerID, h.DstID)
}

func (LogHandler) CallMonStatus(network string, peerID PeerID, data []byte) {
	log.Debugf("(%s) repeater call monitor origin packet received from %s: %s", network, peerID, hex.EncodeToString(data))
}

func (LogHandler) CallMonRepeat(network string, peerID PeerID, data []byte) {
	log.Debugf("(%s) repeater call monitor repeating packet received from %s: %s", network, peerID, hex.EncodeToString(data))
}

func (LogHandler) CallMonNACK(network string, peerID PeerID, data []byte) {
	log.Debugf("(%s) repeater call monitor NACK packet received from %s: %s", network, peerID, hex.EncodeToString(data))
}

func (LogHandler) XCMPXNL(network string, peerID PeerID, data []byte) {
	log.Debugf("(%s) XCMP/XNL packet received from %s: %s", network, peerID, hex.EncodeToString(data))
}

func (LogHandler) RepeaterWakeUp(network string, peerID PeerID, data []byte) {
	log.Debugf("(%s) repeater wake-up packet received from %s: %s", network, peerID, hex.EncodeToString(data))
}

func (LogHandler) UnknownMessage(network string, packetType byte, peerID PeerID, data []byte) {
	log.Errorf("(%s) unknown message type 0x%02x from %s: %s", network, packetType, peerID, hex.EncodeToString(data))
}

package main

import (
	"fmt"

	"github.com/pd0mz/dmrlink/alias"
	"github.com/pd0mz/dmrlink/ipsc"
)

// monitor logs repeater call monitor events and finished calls with their
// aliases. Everything else is left to ipsc.LogHandler.
type monitor struct {
	ipsc.LogHandler
	book *alias.Book
}

func (m *monitor) target(id uint32, group bool) string {
	if group {
		return "TG " + m.book.Talkgroups.Lookup(id)
	}
	return m.book.Subscribers.Lookup(id)
}

func (m *monitor) describeStatus(info *ipsc.CallMonStatusInfo) string {
	return fmt.Sprintf("%s %s on %s (from %s), TS%d: %s -> %s",
		info.CallTypeName(), info.StatusName(),
		m.book.Peers.Lookup(info.Source.Uint32()),
		m.book.Peers.Lookup(info.IPSCSource.Uint32()),
		info.Timeslot+1,
		m.book.Subscribers.Lookup(info.RFSource),
		m.target(info.RFTarget, info.TargetIsGroup()))
}

func (m *monitor) describeCall(h *ipsc.UserHeader, group bool) string {
	return fmt.Sprintf("%s via %s, TS%d: %s -> %s",
		ipsc.TypeName(h.Type),
		m.book.Peers.Lookup(h.PeerID.Uint32()),
		h.Timeslot+1,
		m.book.Subscribers.Lookup(h.SrcID),
		m.target(h.DstID, group))
}

func (m *monitor) CallMonStatus(network string, peerID ipsc.PeerID, data []byte) {
	info, err := ipsc.DecodeCallMonStatus(data)
	if err != nil {
		log.Warningf("(%s) call monitor status from %s: %v", network, peerID, err)
		return
	}
	log.Infof("(%s) %s", network, m.describeStatus(info))
}

func (m *monitor) CallMonRepeat(network string, peerID ipsc.PeerID, data []byte) {
	info, err := ipsc.DecodeCallMonRepeat(data)
	if err != nil {
		log.Warningf("(%s) call monitor repeat from %s: %v", network, peerID, err)
		return
	}
	log.Infof("(%s) repeater %s: TS1 %s, TS2 %s", network,
		m.book.Peers.Lookup(info.Source.Uint32()), info.TS1StateName(), info.TS2StateName())
}

func (m *monitor) CallMonNACK(network string, peerID ipsc.PeerID, data []byte) {
	info, err := ipsc.DecodeCallMonNACK(data)
	if err != nil {
		log.Warningf("(%s) call monitor nack from %s: %v", network, peerID, err)
		return
	}
	log.Infof("(%s) repeater %s: %s", network, m.book.Peers.Lookup(info.Source.Uint32()), info.CauseName())
}

func (m *monitor) GroupVoice(network string, h *ipsc.UserHeader, data []byte) {
	if h.End {
		log.Infof("(%s) call ended: %s", network, m.describeCall(h, true))
	}
}

func (m *monitor) PrivateVoice(network string, h *ipsc.UserHeader, data []byte) {
	if h.End {
		log.Infof("(%s) call ended: %s", network, m.describeCall(h, false))
	}
}

package ipsc

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

// reporting runs on every ReportInterval tick.
func (c *IPSC) reporting() {
	log.Debugf("(%s) periodic reporting loop started", c.Name)
	if c.Report == nil {
		return
	}
	c.writeReport(c.Report)
}

// writeReport prints the master and peer tables. It reads protocol state, so
// it may only be called from the event loop.
func (c *IPSC) writeReport(w io.Writer) {
	fmt.Fprintf(w, "network %s, radio ID %s, ", c.Name, c.local.id)
	if c.IsMaster() {
		fmt.Fprintf(w, "master, %d peers\n", c.peers.Len())
	} else {
		fmt.Fprintf(w, "peer, %s\n", c.State())
	}

	var rows [][]string
	if !c.IsMaster() {
		rows = append(rows, c.reportRow("master", c.master.ID, c.master.Addr, c.master.ModeDecode, c.master.FlagsDecode, &c.master.Status))
	}
	for _, peer := range c.peers.Peers() {
		if peer.ID == c.local.id {
			continue
		}
		rows = append(rows, c.reportRow("peer", peer.ID, peer.Addr, peer.ModeDecode, peer.FlagsDecode, &peer.Status))
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"ROLE", "ID", "ADDRESS", "MODE", "FLAGS", "CONNECTED", "SENT", "RECEIVED", "MISSED", "LAST SEEN"})
	table.AppendBulk(rows)
	table.Render()
}

func (c *IPSC) reportRow(kind string, id PeerID, addr *net.UDPAddr, mode Mode, flags *Flags, status *Status) []string {
	var (
		address  = "-"
		lastSeen = "never"
	)
	if addr != nil {
		address = addr.String()
	}
	if !status.KeepAliveRXTime.IsZero() {
		lastSeen = c.now().Sub(status.KeepAliveRXTime).Truncate(time.Second).String() + " ago"
	}
	return []string{
		kind,
		id.String(),
		address,
		mode.String(),
		reportFlags(flags),
		strconv.FormatBool(status.Connected),
		strconv.Itoa(status.KeepAliveSent),
		strconv.Itoa(status.KeepAliveReceived),
		strconv.Itoa(status.KeepAliveMissed),
		lastSeen,
	}
}

// reportFlags lists the set service flags, or "-" if the remote never sent
// them.
func reportFlags(f *Flags) string {
	if f == nil {
		return "-"
	}
	var names []string
	for _, flag := range []struct {
		name string
		set  bool
	}{
		{"csbk", f.CSBK},
		{"rcm", f.RepeaterCallMonitor},
		{"con_app", f.ConsoleApplication},
		{"xnl", f.XNLConnected},
		{"xnl_master", f.XNLMaster},
		{"xnl_slave", f.XNLSlave},
		{"auth", f.PacketAuthenticated},
		{"data", f.DataCall},
		{"voice", f.VoiceCall},
		{"master", f.MasterPeer},
	} {
		if flag.set {
			names = append(names, flag.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

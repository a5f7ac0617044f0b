// Package ipsc implements the Motorola IP Site Connect link protocol, both as
// a peer registering with an IPSC master and as the master itself.
package ipsc

import (
	"context"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("dmr/ipsc")

const (
	// MasterPeerTimeout is how long a master keeps a silent peer registered.
	MasterPeerTimeout = time.Second * 120

	// ReportInterval is the period of the reporting loop.
	ReportInterval = time.Second * 10

	// maxPacketSize fits the largest UDP payload, peer lists grow by 11
	// bytes per peer.
	maxPacketSize = 65535
)

// Transport sends datagrams. It is satisfied by *net.UDPConn.
type Transport interface {
	WriteToUDP(b []byte, addr *net.UDPAddr) (int, error)
}

type datagram struct {
	addr *net.UDPAddr
	data []byte
}

// IPSC is a single IPSC network. All protocol state is owned by the event
// loop started with Run.
type IPSC struct {
	Name    string
	Network *Network

	// Dump prints every packet sent and received to stdout.
	Dump bool

	// Report receives the periodic status tables, if set.
	Report io.Writer

	// Metrics is optional.
	Metrics *Metrics

	handler Handler
	auth    Authenticator
	local   struct {
		addr    *net.UDPAddr
		id      PeerID
		mode    byte
		flags   []byte
		tsFlags []byte
	}
	master      Master
	peers       *Registry
	routes      map[byte]route
	registering bool
	conn        Transport
	now         func() time.Time
}

// New sets up an IPSC network. A nil handler logs all application traffic.
func New(name string, network *Network, handler Handler) (*IPSC, error) {
	if err := network.Validate(); err != nil {
		return nil, errors.Wrapf(err, "network %s", name)
	}
	if handler == nil {
		handler = LogHandler{}
	}

	c := &IPSC{
		Name:    name,
		Network: network,
		handler: handler,
		peers:   NewRegistry(),
		now:     time.Now,
	}

	key, err := ParseAuthKey(network.AuthKey)
	if err != nil {
		return nil, err
	}
	c.auth = NewAuthenticator(key)

	c.local.id = NewPeerID(network.RadioID)
	c.local.mode = network.Mode().Byte()
	c.local.flags = network.Flags().Bytes()
	c.local.tsFlags = append([]byte{c.local.mode}, c.local.flags...)
	if c.local.addr, err = net.ResolveUDPAddr("udp", network.Listen); err != nil {
		return nil, err
	}
	if !network.MasterPeer {
		if c.master.Addr, err = net.ResolveUDPAddr("udp", network.Master); err != nil {
			return nil, err
		}
	}
	c.routes = c.buildRoutes()

	log.Infof("(%s) IPSC instance created, radio ID %s, mode 0x%02x, flags %x",
		name, c.local.id, c.local.mode, c.local.flags)
	return c, nil
}

// ID returns the local radio ID.
func (c *IPSC) ID() PeerID {
	return c.local.id
}

// IsMaster reports whether this node is the IPSC master.
func (c *IPSC) IsMaster() bool {
	return c.Network.MasterPeer
}

// Run opens the socket and runs the event loop until ctx is cancelled. Before
// returning it sends a de-registration request to the master and all
// connected peers.
func (c *IPSC) Run(ctx context.Context) error {
	conn, err := net.ListenUDP("udp", c.local.addr)
	if err != nil {
		return err
	}
	c.conn = conn
	log.Infof("(%s) listening on %s", c.Name, conn.LocalAddr())

	var (
		queue = make(chan datagram, 64)
		done  = make(chan struct{})
		wg    sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.receive(conn, queue, done)
	}()

	c.serve(ctx, queue)

	close(done)
	err = conn.Close()
	wg.Wait()
	return err
}

func (c *IPSC) receive(conn *net.UDPConn, queue chan<- datagram, done <-chan struct{}) {
	var buf = make([]byte, maxPacketSize)
	for {
		n, peer, err := conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-done:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Errorf("(%s) error reading from %s: %v", c.Name, peer, err)
			continue
		}

		if n == len(buf) {
			log.Warningf("(%s) %d byte datagram from %s may be truncated", c.Name, n, peer)
		}

		data := make([]byte, n)
		copy(data, buf[:n])
		select {
		case queue <- datagram{peer, data}:
		case <-done:
			return
		}
	}
}

// serve is the event loop; it is the only place protocol state is touched.
func (c *IPSC) serve(ctx context.Context, queue <-chan datagram) {
	maintenance := time.NewTicker(c.Network.AliveTimer)
	defer maintenance.Stop()
	reporting := time.NewTicker(ReportInterval)
	defer reporting.Stop()

	c.maintenance()
	for {
		select {
		case <-ctx.Done():
			c.deregister()
			return
		case p := <-queue:
			c.handle(p.addr, p.data)
		case <-maintenance.C:
			c.maintenance()
		case <-reporting.C:
			c.reporting()
		}
	}
}

func (c *IPSC) maintenance() {
	if c.IsMaster() {
		c.masterMaintenance()
	} else {
		c.peerMaintenance()
	}
}

// deregister announces our departure. It is best effort, no reply is awaited.
func (c *IPSC) deregister() {
	log.Infof("(%s) de-registering from IPSC", c.Name)
	c.broadcast(newPacket(DeregistrationRequest, c.local.id))
}

// send signs and writes a packet.
func (c *IPSC) send(addr *net.UDPAddr, data []byte) {
	if addr == nil {
		log.Warningf("(%s) no address to send %s to", c.Name, TypeName(data[0]))
		return
	}
	if c.conn == nil {
		log.Warningf("(%s) not running, dropping %s to %s", c.Name, TypeName(data[0]), addr)
		return
	}

	signed := c.auth.Sign(data)
	if c.Dump {
		Dump(os.Stdout, "sent to", addr, signed)
	}
	if _, err := c.conn.WriteToUDP(signed, addr); err != nil {
		log.Errorf("(%s) error sending %s to %s: %v", c.Name, TypeName(data[0]), addr, err)
		return
	}
	c.Metrics.sent(c.Name, data[0])
}

// broadcast sends a packet to the master, if connected, and to every
// connected peer.
func (c *IPSC) broadcast(data []byte) {
	if c.master.Status.Connected {
		c.send(c.master.Addr, data)
	}
	for _, peer := range c.peers.Peers() {
		if peer.Status.Connected {
			c.send(peer.Addr, data)
		}
	}
}

// resetKeepAlive clears the outstanding keep-alives of a peer or master we
// just heard from. Repeaters do not answer keep-alives while transmitting, so
// any traffic counts.
func (c *IPSC) resetKeepAlive(id PeerID) {
	if peer := c.peers.Get(id); peer != nil {
		peer.Status.KeepAliveOutstanding = 0
		peer.Status.KeepAliveRXTime = c.now()
	}
	if !c.master.ID.IsZero() && c.master.ID == id {
		c.master.Status.KeepAliveOutstanding = 0
		c.master.Status.KeepAliveRXTime = c.now()
	}
}

// keepAlive accounts for a keep-alive about to be sent to a master or peer
// and reports whether it is still considered connected. When too many are
// outstanding the remote is marked disconnected and nothing should be sent.
func (c *IPSC) keepAlive(status *Status) bool {
	if status.KeepAliveOutstanding > 0 {
		status.KeepAliveMissed++
		c.Metrics.missed(c.Name)
	}
	if status.KeepAliveOutstanding >= c.Network.MaxMissed {
		status.Connected = false
		status.KeepAliveOutstanding = 0
		return false
	}
	status.KeepAliveSent++
	status.KeepAliveOutstanding++
	return true
}

func (c *IPSC) masterAliveRequest() []byte {
	return newPacket(MasterAliveRequest, c.local.id, c.local.tsFlags, VersionInfo)
}

func (c *IPSC) masterRegistrationRequest() []byte {
	return newPacket(MasterRegistrationRequest, c.local.id, c.local.tsFlags, VersionInfo)
}

func (c *IPSC) peerListReply() []byte {
	return newPacket(PeerListReply, c.local.id, BuildPeerList(c.peers.Entries()))
}

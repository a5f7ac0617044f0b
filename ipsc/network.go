package ipsc

import (
	"net"
	"time"

	"github.com/pkg/errors"
)

// Defaults applied by Network.Validate.
const (
	DefaultListen     = ":62030"
	DefaultAliveTimer = time.Second * 5
	DefaultMaxMissed  = 5
)

// Network is the configuration of one IPSC network.
type Network struct {
	Disabled bool   `yaml:"disabled"`
	RadioID  uint32 `yaml:"radio_id"`

	// Listen is the local UDP address, Master the address of the IPSC
	// master. Master is ignored if we are the master ourselves.
	Listen     string `yaml:"listen"`
	Master     string `yaml:"master"`
	MasterPeer bool   `yaml:"master_peer"`

	AliveTimer time.Duration `yaml:"alive_timer"`
	MaxMissed  int           `yaml:"max_missed"`

	// Mode byte
	IPSCMode         string `yaml:"ipsc_mode"`
	PeerOperDisabled bool   `yaml:"peer_oper_disabled"`
	TS1LinkDisabled  bool   `yaml:"ts1_link_disabled"`
	TS2LinkDisabled  bool   `yaml:"ts2_link_disabled"`

	// Flags field
	CSBKCall                   bool `yaml:"csbk_call"`
	RepeaterCallMonitoring     bool `yaml:"rcm"`
	ConsoleApplicationDisabled bool `yaml:"console_application_disabled"`
	XNLCall                    bool `yaml:"xnl_call"`
	XNLMaster                  bool `yaml:"xnl_master"`
	DataCall                   bool `yaml:"data_call"`
	VoiceCall                  bool `yaml:"voice_call"`

	// AuthKey enables packet authentication if set, hex encoded.
	AuthKey string `yaml:"auth_key"`
}

// Validate applies defaults and checks the configuration.
func (n *Network) Validate() error {
	if n.RadioID == 0 {
		return errors.New("missing radio_id")
	}
	if n.Listen == "" {
		n.Listen = DefaultListen
	}
	if n.AliveTimer <= 0 {
		n.AliveTimer = DefaultAliveTimer
	}
	if n.MaxMissed <= 0 {
		n.MaxMissed = DefaultMaxMissed
	}
	if !n.MasterPeer && n.Master == "" {
		return errors.New("no master address configured")
	}
	if _, err := ParsePeerMode(n.IPSCMode); err != nil {
		return err
	}
	if _, err := ParseAuthKey(n.AuthKey); err != nil {
		return err
	}
	if _, err := net.ResolveUDPAddr("udp", n.Listen); err != nil {
		return errors.Wrapf(err, "invalid listen address %q", n.Listen)
	}
	return nil
}

// Mode returns the local linking status.
func (n *Network) Mode() Mode {
	mode, _ := ParsePeerMode(n.IPSCMode)
	return Mode{
		PeerOperational: !n.PeerOperDisabled,
		PeerMode:        mode,
		TS1Linked:       !n.TS1LinkDisabled,
		TS2Linked:       !n.TS2LinkDisabled,
	}
}

// Flags returns the local service flags.
func (n *Network) Flags() Flags {
	return Flags{
		CSBK:                n.CSBKCall,
		RepeaterCallMonitor: n.RepeaterCallMonitoring,
		ConsoleApplication:  !n.ConsoleApplicationDisabled,
		XNLConnected:        n.XNLCall,
		XNLMaster:           n.XNLCall && n.XNLMaster,
		XNLSlave:            n.XNLCall && !n.XNLMaster,
		PacketAuthenticated: n.authenticated(),
		DataCall:            n.DataCall,
		VoiceCall:           n.VoiceCall,
		MasterPeer:          n.MasterPeer,
	}
}

// authenticated reports whether AuthKey holds a usable key, "0x" and blank
// keys disable authentication.
func (n *Network) authenticated() bool {
	key, err := ParseAuthKey(n.AuthKey)
	return err == nil && len(key) > 0
}

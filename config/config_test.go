package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pd0mz/dmrlink/ipsc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
log:
  level: debug
metrics: ":9100"
report: true
aliases:
  encoding: latin1
  subscribers: subscriber_ids.csv
networks:
  IPSC1:
    radio_id: 12345
    listen: ":50000"
    master: "192.0.2.1:50000"
    alive_timer: 10s
    ipsc_mode: digital
    ts2_link_disabled: true
    auth_key: "1A2B3C"
  IPSC2:
    radio_id: 12346
    master_peer: true
    voice_call: true
  OLD:
    disabled: true
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(testConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, ":9100", c.Metrics)
	assert.True(t, c.Report)
	assert.Equal(t, "latin1", c.Aliases.Encoding)
	assert.Equal(t, []string{"IPSC1", "IPSC2"}, c.Enabled())

	peer := c.Networks["IPSC1"]
	assert.Equal(t, uint32(12345), peer.RadioID)
	assert.Equal(t, time.Second*10, peer.AliveTimer)
	assert.Equal(t, ipsc.DefaultMaxMissed, peer.MaxMissed)
	assert.False(t, peer.Mode().TS2Linked)
	assert.True(t, peer.Flags().PacketAuthenticated)

	master := c.Networks["IPSC2"]
	assert.Equal(t, ipsc.DefaultListen, master.Listen)
	assert.Equal(t, ipsc.DefaultAliveTimer, master.AliveTimer)
	assert.True(t, master.Flags().MasterPeer)
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte("networks:\n  A:\n    radio_id: 1\n    master: 127.0.0.1:50000\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, c.Log.Level)
	assert.Empty(t, c.Metrics)
	assert.False(t, c.Report)
}

func TestParseInvalid(t *testing.T) {
	var tests = map[string]string{
		"no networks":    "log:\n  level: INFO\n",
		"all disabled":   "networks:\n  A:\n    disabled: true\n",
		"no radio id":    "networks:\n  A:\n    master: 127.0.0.1:50000\n",
		"no master":      "networks:\n  A:\n    radio_id: 1\n",
		"bad mode":       "networks:\n  A:\n    radio_id: 1\n    master_peer: true\n    ipsc_mode: dstar\n",
		"bad auth key":   "networks:\n  A:\n    radio_id: 1\n    master_peer: true\n    auth_key: xyz\n",
		"bad log level":  "log:\n  level: chatty\nnetworks:\n  A:\n    radio_id: 1\n    master_peer: true\n",
		"bad encoding":   "aliases:\n  encoding: ebcdic\nnetworks:\n  A:\n    radio_id: 1\n    master_peer: true\n",
		"unknown key":    "networks:\n  A:\n    radio_id: 1\n    master_peer: true\n    colour: blue\n",
		"invalid yaml":   "networks: [",
		"invalid listen": "networks:\n  A:\n    radio_id: 1\n    master_peer: true\n    listen: nowhere\n",
	}
	for name, doc := range tests {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dmrlink.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Networks, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

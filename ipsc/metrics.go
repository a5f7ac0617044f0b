package ipsc

import "github.com/prometheus/client_golang/prometheus"

const namespace = "ipsc"

// Label descriptions
const (
	labelNetwork = "network"
	labelOutcome = "outcome"
	labelType    = "type"
)

// Received packet outcomes
const (
	OutcomeOK            = "ok"
	OutcomeAuthFailed    = "auth_failed"
	OutcomeMalformed     = "malformed"
	OutcomeUnknownSender = "unknown_sender"
	OutcomeWrongRole     = "wrong_role"
	OutcomeUnknownType   = "unknown_type"
)

// Metrics are the Prometheus collectors shared by all networks of a process.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	PacketsReceived  *prometheus.CounterVec
	PacketsSent      *prometheus.CounterVec
	Peers            *prometheus.GaugeVec
	MasterConnected  *prometheus.GaugeVec
	KeepAlivesMissed *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PacketsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packets_received_total",
			Help:      "Total packets received, by processing outcome.",
		}, []string{labelNetwork, labelOutcome}),
		PacketsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packets_sent_total",
			Help:      "Total packets sent, by packet type.",
		}, []string{labelNetwork, labelType}),
		Peers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "peers",
			Help:      "Number of peers in the registry.",
		}, []string{labelNetwork}),
		MasterConnected: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "master_connected",
			Help:      "1 if registered with the master, 0 otherwise.",
		}, []string{labelNetwork}),
		KeepAlivesMissed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keepalives_missed_total",
			Help:      "Total keep-alives sent while a previous one was still outstanding.",
		}, []string{labelNetwork}),
	}
	if reg != nil {
		reg.MustRegister(m.PacketsReceived, m.PacketsSent, m.Peers, m.MasterConnected, m.KeepAlivesMissed)
	}
	return m
}

func (m *Metrics) received(network, outcome string) {
	if m == nil {
		return
	}
	m.PacketsReceived.WithLabelValues(network, outcome).Inc()
}

func (m *Metrics) sent(network string, packetType byte) {
	if m == nil {
		return
	}
	m.PacketsSent.WithLabelValues(network, TypeName(packetType)).Inc()
}

func (m *Metrics) peers(network string, n int) {
	if m == nil {
		return
	}
	m.Peers.WithLabelValues(network).Set(float64(n))
}

func (m *Metrics) masterConnected(network string, connected bool) {
	if m == nil {
		return
	}
	var v float64
	if connected {
		v = 1
	}
	m.MasterConnected.WithLabelValues(network).Set(v)
}

func (m *Metrics) missed(network string) {
	if m == nil {
		return
	}
	m.KeepAlivesMissed.WithLabelValues(network).Inc()
}

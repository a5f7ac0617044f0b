package main

import (
	"fmt"
	"io"
	"net"
	"os"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/gopacket/gopacket/pcapgo"
	"github.com/pd0mz/dmrlink/ipsc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var dumpFlags struct {
	authKey string
	port    uint16
}

var dumpCmd = &cobra.Command{
	Use:   "dump FILE.pcap",
	Short: "Decode the IPSC packets in a capture file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return dumpFile(cmd.OutOrStdout(), args[0], dumpFlags.authKey, dumpFlags.port)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVarP(&dumpFlags.authKey, "auth-key", "k", "",
		"Authentication key, packets are verified and stripped if set")
	dumpCmd.Flags().Uint16VarP(&dumpFlags.port, "port", "p", 0,
		"Only decode packets from or to this UDP port")
}

func dumpFile(w io.Writer, path, authKey string, port uint16) error {
	key, err := ipsc.ParseAuthKey(authKey)
	if err != nil {
		return err
	}
	auth := ipsc.NewAuthenticator(key)

	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	r, err := pcapgo.NewReader(f)
	if err != nil {
		return errors.Wrap(err, path)
	}

	source := gopacket.NewPacketSource(r, r.LinkType())
	for packet := range source.Packets() {
		udp, ok := packet.Layer(layers.LayerTypeUDP).(*layers.UDP)
		if !ok || len(udp.Payload) == 0 {
			continue
		}
		if port != 0 && uint16(udp.SrcPort) != port && uint16(udp.DstPort) != port {
			continue
		}

		var src = &net.UDPAddr{Port: int(udp.SrcPort)}
		if network := packet.NetworkLayer(); network != nil {
			src.IP = net.IP(network.NetworkFlow().Src().Raw())
		}

		data := udp.Payload
		if key != nil {
			if !auth.Verify(data) {
				fmt.Fprintf(w, "%d bytes from %s: %v\n", len(data), src, ipsc.ErrAuthentication)
				continue
			}
			data = auth.Strip(data)
		}
		ipsc.Dump(w, fmt.Sprintf("at %s from", packet.Metadata().Timestamp.UTC().Format("15:04:05.000")), src, data)
	}
	return nil
}

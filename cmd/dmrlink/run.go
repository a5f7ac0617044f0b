package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pd0mz/dmrlink"
	"github.com/pd0mz/dmrlink/alias"
	"github.com/pd0mz/dmrlink/config"
	"github.com/pd0mz/dmrlink/ipsc"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runFlags struct {
	config  string
	verbose bool
	dump    bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the configured IPSC networks",
	Long: `'run' registers with the master of every enabled network, or acts as the
master for networks with master_peer set, until interrupted. On shutdown a
de-registration request is sent to the master and all connected peers.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Do not output help message if we get this far.
		cmd.SilenceUsage = true

		c, err := config.Load(runFlags.config)
		if err != nil {
			return err
		}
		level := c.Log.Level
		if runFlags.verbose {
			level = "DEBUG"
		}
		if err := setupLogging(level); err != nil {
			return err
		}

		log.Noticef("%s starting", dmrlink.SoftwareID)
		book, err := alias.Load(c.Aliases)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		defer stop()
		return run(ctx, c, book)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runFlags.config, "config", "c", "dmrlink.yaml", "Configuration file")
	runCmd.Flags().BoolVarP(&runFlags.verbose, "verbose", "v", false, "Log at debug level")
	runCmd.Flags().BoolVar(&runFlags.dump, "dump", false, "Dump every packet sent and received")
}

func run(ctx context.Context, c *config.Config, book *alias.Book) error {
	var (
		metrics  = ipsc.NewMetrics(prometheus.DefaultRegisterer)
		networks []*ipsc.IPSC
	)
	for _, name := range c.Enabled() {
		network, err := ipsc.New(name, c.Networks[name], &monitor{book: book})
		if err != nil {
			return err
		}
		network.Dump = runFlags.dump
		network.Metrics = metrics
		if c.Report {
			network.Report = os.Stdout
		}
		networks = append(networks, network)
	}

	g, ctx := errgroup.WithContext(ctx)
	if c.Metrics != "" {
		g.Go(func() error { return serveMetrics(ctx, c.Metrics) })
	}
	for _, network := range networks {
		network := network
		g.Go(func() error {
			return errors.Wrapf(network.Run(ctx), "network %s", network.Name)
		})
	}
	err := g.Wait()
	log.Info("all networks stopped")
	return err
}

func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: time.Second * 5}
	log.Infof("exporting prometheus metrics on %s", addr)

	go func() {
		<-ctx.Done()
		server.Close()
	}()
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serving prometheus metrics")
	}
	return nil
}

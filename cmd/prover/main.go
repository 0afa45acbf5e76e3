// Command prover is the Prover side of the interactive zero-knowledge
// Hamiltonian-cycle proof: it accepts one connection from a Verifier,
// receives the graph, reads its own secret cycle from standard input,
// and runs k commit/challenge/decommit rounds.
//
// Structured the way the teacher's example/dkg command is: a single
// cobra.Command whose flags are bound through viper so an optional
// --config file can supply defaults that flags and the bare positional
// argument still override.
package main

import (
	"net"
	"os"
	"strconv"

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gtanzer/zk/config"
	"github.com/gtanzer/zk/entropy"
	"github.com/gtanzer/zk/graph"
	"github.com/gtanzer/zk/input"
	"github.com/gtanzer/zk/logger"
	"github.com/gtanzer/zk/metrics"
	"github.com/gtanzer/zk/protocol/prover"
	"github.com/gtanzer/zk/wire"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

// errCycleSizeMismatch is returned when the Prover's own stdin claims a
// different graph size than the one the Verifier sent over the wire.
var errCycleSizeMismatch = errors.New("prover: cycle size does not match negotiated graph size")

const defaultRounds = 64
const defaultSocket = "hamcycle.sock"

var rootCmd = &cobra.Command{
	Use:   "prover [rounds]",
	Short: "Hamiltonian-cycle zero-knowledge prover",
	Long:  `Proves knowledge of a secret Hamiltonian cycle in a graph supplied by a connecting Verifier, without revealing the cycle.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().Int("rounds", defaultRounds, "number of protocol rounds")
	rootCmd.Flags().String("socket", defaultSocket, "UNIX domain socket path to listen on")
	rootCmd.Flags().String("config", "", "optional YAML config file")
	rootCmd.Flags().String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
}

func main() {
	logger.SetLogger(log.New("component", "prover"))
	if err := rootCmd.Execute(); err != nil {
		log.Crit("prover failed", "err", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	rounds := viper.GetInt("rounds")
	socket := viper.GetString("socket")
	metricsAddr := viper.GetString("metrics-addr")

	if cfgPath := viper.GetString("config"); cfgPath != "" {
		cfg, err := config.ReadFile(cfgPath)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("rounds") && cfg.Rounds > 0 {
			rounds = cfg.Rounds
		}
		if !cmd.Flags().Changed("socket") && cfg.Socket != "" {
			socket = cfg.Socket
		}
		if !cmd.Flags().Changed("metrics-addr") && cfg.MetricsAddr != "" {
			metricsAddr = cfg.MetricsAddr
		}
	}

	// A bare positional argument overrides everything else, matching
	// spec.md §6's "single optional positional argument".
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		rounds = v
	}

	reg := prometheus.NewRegistry()
	m := metrics.NewProver(reg)
	if metricsAddr != "" {
		serveMetrics(metricsAddr, reg)
	}

	logger.Logger().Info("listening", "socket", socket, "rounds", rounds)
	os.Remove(socket)
	listener, err := net.Listen("unix", socket)
	if err != nil {
		return err
	}
	defer listener.Close()

	conn, err := listener.Accept()
	if err != nil {
		return err
	}
	defer conn.Close()

	n, err := wire.ReadUint64(conn)
	if err != nil {
		return err
	}
	raw, err := wire.ReadBytes(conn, int(n)*int(n))
	if err != nil {
		return err
	}
	g, err := graph.FromBytes(int(n), raw)
	if err != nil {
		return err
	}

	ownN, cycle, err := input.ReadCycle(os.Stdin)
	if err != nil {
		return err
	}
	if uint64(ownN) != n {
		return errCycleSizeMismatch
	}

	src, err := entropy.New(int(n) * int(n) * 32)
	if err != nil {
		return err
	}

	session, err := prover.New(conn, g, cycle, rounds, src, m)
	if err != nil {
		return err
	}

	if err := session.Run(); err != nil {
		return err
	}

	logger.Logger().Info("done", "rounds", rounds)
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Logger().Warn("metrics server stopped", "err", err)
		}
	}()
}

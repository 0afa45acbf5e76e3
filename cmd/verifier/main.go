// Command verifier is the Verifier side of the interactive
// zero-knowledge Hamiltonian-cycle proof: it reads an adjacency matrix
// from standard input, connects to a waiting Prover, sends the graph,
// and runs k commit/challenge/decommit rounds before printing its
// verdict.
package main

import (
	"fmt"
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
	"github.com/gtanzer/zk/protocol/verifier"
	"github.com/gtanzer/zk/wire"

	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultRounds = 64
const defaultSocket = "hamcycle.sock"

var rootCmd = &cobra.Command{
	Use:   "verifier [rounds]",
	Short: "Hamiltonian-cycle zero-knowledge verifier",
	Long:  `Connects to a Prover, sends a graph, and checks its claim of knowing a Hamiltonian cycle without learning the cycle.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().Int("rounds", defaultRounds, "number of protocol rounds")
	rootCmd.Flags().String("socket", defaultSocket, "UNIX domain socket path to connect to")
	rootCmd.Flags().String("config", "", "optional YAML config file")
	rootCmd.Flags().String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
}

func main() {
	logger.SetLogger(log.New("component", "verifier"))
	if err := rootCmd.Execute(); err != nil {
		log.Crit("verifier failed", "err", err)
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
	m := metrics.NewVerifier(reg)
	if metricsAddr != "" {
		serveMetrics(metricsAddr, reg)
	}

	g, err := input.ReadGraph(os.Stdin)
	if err != nil {
		return err
	}

	logger.Logger().Info("connecting", "socket", socket, "rounds", rounds)
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return err
	}
	defer conn.Close()

	n := g.N()
	if err := wire.WriteUint64(conn, uint64(n)); err != nil {
		return err
	}
	if err := wire.WriteBytes(conn, rowMajorBytes(g)); err != nil {
		return err
	}

	// spec.md §4.1: typical callers size the verifier's entropy source
	// to one fair-coin byte per round, since a bit is all it ever draws.
	src, err := entropy.New(rounds)
	if err != nil {
		return err
	}

	session := verifier.New(conn, g, rounds, src, m)
	verdict, err := session.Run()
	if err != nil {
		return err
	}

	logger.Logger().Info("verdict", "accept", verdict)
	if verdict {
		fmt.Println("1")
	} else {
		fmt.Println("0")
	}
	return nil
}

// rowMajorBytes flattens g's adjacency matrix back into the same
// row-major byte layout graph.FromBytes expects on the Prover's side.
func rowMajorBytes(g *graph.Graph) []byte {
	n := g.N()
	out := make([]byte, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i*n+j] = g.Edge(i, j)
		}
	}
	return out
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

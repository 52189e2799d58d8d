// Command lsrsim simulates link-state routing on a network described by a
// cost matrix file.
package main

import (
	"fmt"
	"os"

	"github.com/rhartert/lsrsim/sim"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagTopology string
	flagVerbose  bool
	flagVerify   bool
)

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "lsrsim",
	Short: "Link state routing simulator",
	Long: `lsrsim builds a network from a cost matrix file and simulates link state
routing on it: connection tables, shortest paths, router failures and
broadcast router selection.

A cost matrix file holds one row per line; a negative cost means there is no
link between the two routers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !flagVerbose {
			return nil
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("error creating logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagTopology, "topology", "t", "", "Path to the cost matrix file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log simulation events to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagVerify, "verify", false, "Check every routing table against a reference shortest path implementation")

	rootCmd.AddCommand(
		matrixCmd,
		linksCmd,
		tableCmd,
		pathCmd,
		failCmd,
		broadcastCmd,
		runCmd,
		shellCmd,
	)
}

// openSession returns a session loaded with the topology given by the
// --topology flag.
func openSession() (*sim.Session, error) {
	if flagTopology == "" {
		return nil, fmt.Errorf("missing topology file (--topology)")
	}
	s := newSession()
	if err := s.LoadFile(flagTopology); err != nil {
		return nil, fmt.Errorf("error reading topology file: %w", err)
	}
	return s, nil
}

func newSession() *sim.Session {
	s := sim.NewSession(logger)
	s.Verify = flagVerify
	return s
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

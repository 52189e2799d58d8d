package main

import (
	"fmt"
	"strconv"

	"github.com/rhartert/lsrsim/sim"
	"github.com/spf13/cobra"
)

var (
	flagSource int
	flagDest   int
	flagFailed []int
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the cost matrix",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		return sim.NewPrinter(cmd.OutOrStdout()).Matrix(s.Matrix())
	},
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List the links of the network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		edges, err := s.Links()
		if err != nil {
			return err
		}
		sim.NewPrinter(cmd.OutOrStdout()).Links(edges)
		return nil
	},
}

var tableCmd = &cobra.Command{
	Use:   "table SOURCE",
	Short: "Build the connection table of a router",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseRouters(args)
		if err != nil {
			return err
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		if err := failRouters(s, flagFailed); err != nil {
			return err
		}
		r, err := s.Table(ids[0])
		if err != nil {
			return err
		}
		sim.NewPrinter(cmd.OutOrStdout()).Table(r)
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path SOURCE DEST",
	Short: "Find the shortest path between two routers",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseRouters(args)
		if err != nil {
			return err
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		if err := failRouters(s, flagFailed); err != nil {
			return err
		}
		r, err := s.Path(ids[0], ids[1])
		if err != nil {
			return err
		}
		sim.NewPrinter(cmd.OutOrStdout()).Path(r)
		return nil
	},
}

var failCmd = &cobra.Command{
	Use:   "fail ROUTER...",
	Short: "Remove routers from the network",
	Long: `Remove routers from the network, in order, and print the connection table of
the --source router and its shortest path to the --dest router after the last
failure.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseRouters(args)
		if err != nil {
			return err
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		if err := failRouters(s, ids[:len(ids)-1]); err != nil {
			return err
		}
		if flagSource > 0 {
			s.Source = flagSource
		}
		if flagDest > 0 {
			s.Dest = flagDest
		}
		r, err := s.Fail(ids[len(ids)-1])
		if err != nil {
			return err
		}
		sim.NewPrinter(cmd.OutOrStdout()).Fail(r)
		return nil
	},
}

var broadcastCmd = &cobra.Command{
	Use:   "broadcast",
	Short: "Find the best router to originate a broadcast",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		if err := failRouters(s, flagFailed); err != nil {
			return err
		}
		r, err := s.Broadcast()
		if err != nil {
			return err
		}
		sim.NewPrinter(cmd.OutOrStdout()).Broadcast(r)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run SCENARIO",
	Short: "Run a YAML scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := sim.LoadScenario(args[0])
		if err != nil {
			return err
		}
		return sc.Run(newSession(), sim.NewPrinter(cmd.OutOrStdout()))
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive simulator",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		if flagTopology != "" {
			if err := s.LoadFile(flagTopology); err != nil {
				return err
			}
		}
		return sim.NewShell(s, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
	},
}

func init() {
	for _, c := range []*cobra.Command{tableCmd, pathCmd, broadcastCmd} {
		c.Flags().IntSliceVar(&flagFailed, "fail", nil, "Routers to remove before running the command")
	}
	failCmd.Flags().IntVar(&flagSource, "source", 0, "Router whose connection table is printed")
	failCmd.Flags().IntVar(&flagDest, "dest", 0, "Destination of the printed shortest path (requires --source)")
}

func parseRouters(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid router %q", a)
		}
		ids[i] = id
	}
	return ids, nil
}

func failRouters(s *sim.Session, ids []int) error {
	for _, id := range ids {
		if err := s.Network().FailRouter(id); err != nil {
			return fmt.Errorf("error failing router %d: %w", id, err)
		}
	}
	return nil
}
